/*
 * @author: sun977
 * @date: 2025.12.20
 * @description: 角色响应整形器(扁平关联行重组为嵌套权限树)
 * @func:
 * 1.按分组名聚合角色的模块权限关联
 * 2.分组与模块按 sequence 升序排列
 * 3.剥离特殊角色的时间戳字段
 */

package auth

import (
	"sort"

	"neoauth/internal/model"
)

// FormatRoleResponse 将角色及其扁平关联行整形为嵌套权限树响应
// 关联按分组名聚合，分组元信息取自组内首条关联指向的分组记录；
// 未分组的模块落入名称为空的桶。分组与组内模块均按 sequence 升序。
func FormatRoleResponse(role *model.Role) *model.RoleDetailResponse {
	if role == nil {
		return nil
	}

	resp := &model.RoleDetailResponse{
		ID:                role.ID,
		Name:              role.Name,
		Platform:          role.Platform,
		Status:            role.Status,
		ModulePermissions: []model.ModuleGroupResponse{},
	}

	// 按分组名聚合
	buckets := make(map[string]*model.ModuleGroupResponse)
	order := make([]string, 0)

	for _, link := range role.ModulePermissions {
		module := link.Module
		if module == nil {
			continue // 预加载缺失的悬挂关联，跳过
		}

		groupName := ""
		if module.Group != nil {
			groupName = module.Group.Name
		}

		bucket, exists := buckets[groupName]
		if !exists {
			bucket = &model.ModuleGroupResponse{
				Name:    groupName,
				Modules: []model.ModuleItemResponse{},
			}
			// 分组元信息取自组内首条关联
			if module.Group != nil {
				bucket.ID = module.Group.ID
				bucket.Platform = module.Group.Platform
				bucket.Sequence = module.Group.Sequence
			}
			buckets[groupName] = bucket
			order = append(order, groupName)
		}

		bucket.Modules = append(bucket.Modules, model.ModuleItemResponse{
			ID:                module.ID,
			Code:              module.Code,
			Name:              module.Name,
			GroupID:           module.GroupID,
			Platform:          module.Platform,
			Sequence:          module.Sequence,
			Permissions:       module.Permissions,
			ActivePermissions: link.ActivePermissions,
		})
	}

	// 组内模块按 sequence 升序
	for _, name := range order {
		bucket := buckets[name]
		sort.SliceStable(bucket.Modules, func(i, j int) bool {
			return bucket.Modules[i].Sequence < bucket.Modules[j].Sequence
		})
		resp.ModulePermissions = append(resp.ModulePermissions, *bucket)
	}

	// 分组按 sequence 升序
	sort.SliceStable(resp.ModulePermissions, func(i, j int) bool {
		return resp.ModulePermissions[i].Sequence < resp.ModulePermissions[j].Sequence
	})

	// 特殊角色剥离时间戳字段后附带
	if role.SpecialRole != nil {
		resp.SpecialRole = &model.SpecialRoleResponse{
			ID:       role.SpecialRole.ID,
			Code:     role.SpecialRole.Code,
			Name:     role.SpecialRole.Name,
			Platform: role.SpecialRole.Platform,
			RoleID:   role.SpecialRole.RoleID,
		}
	}

	return resp
}
