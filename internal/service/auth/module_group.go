/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 模块分组业务逻辑
 * @func:
 * 1.创建分组(平台内名称唯一)
 * 2.更新分组
 * 3.删除分组(组内有模块时拒绝)
 * 4.分组分页查询
 */

package auth

import (
	"context"
	"fmt"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"
	"neoauth/internal/pkg/utils"
	mysqlrepo "neoauth/internal/repository/mysql"
)

// ModuleGroupService 模块分组服务
type ModuleGroupService struct {
	groupRepo *mysqlrepo.ModuleGroupRepository // 模块分组数据仓库
}

// NewModuleGroupService 创建模块分组服务实例
func NewModuleGroupService(groupRepo *mysqlrepo.ModuleGroupRepository) *ModuleGroupService {
	return &ModuleGroupService{
		groupRepo: groupRepo,
	}
}

// CreateModuleGroup 创建模块分组
// 分组名在平台内唯一
func (s *ModuleGroupService) CreateModuleGroup(ctx context.Context, req *model.CreateModuleGroupRequest) (*model.ModuleGroup, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "create module group request must not be empty")
	}

	platform, ok := model.ParsePlatform(req.Platform)
	if !ok {
		return nil, model.NewValidationError("platform", req.Platform, "platform is not a valid enum value")
	}

	existing, err := s.groupRepo.GetModuleGroupByNameAndPlatform(ctx, req.Name, platform)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if existing != nil {
		return nil, model.NewConflictError("name", req.Name, fmt.Sprintf("module group %s already exists", req.Name))
	}

	group := &model.ModuleGroup{
		Name:     req.Name,
		Platform: platform,
		Sequence: req.Sequence,
	}

	if err := s.groupRepo.CreateModuleGroup(ctx, group); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("create_module_group", "", "", clientIP, "", "success", "module group created", map[string]interface{}{
		"group_id": group.ID,
		"name":     group.Name,
		"platform": group.Platform,
	})

	return group, nil
}

// GetModuleGroupByID 根据ID获取模块分组
func (s *ModuleGroupService) GetModuleGroupByID(ctx context.Context, id string) (*model.ModuleGroup, error) {
	group, err := s.groupRepo.GetModuleGroupByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if group == nil {
		return nil, model.NewNotFoundError("module_group", id)
	}
	return group, nil
}

// ListModuleGroups 分页获取模块分组列表
func (s *ModuleGroupService) ListModuleGroups(ctx context.Context, filter *model.QueryFilter) (*model.PaginatedList, error) {
	page, limit := 1, 10
	if filter != nil {
		page, limit = utils.NormalizePage(filter.Page, filter.Limit)
	}
	offset := utils.PageOffset(page, limit)

	if filter != nil && filter.Platform != "" {
		if _, ok := model.ParsePlatform(filter.Platform); !ok {
			return nil, model.NewValidationError("platform", filter.Platform, "platform is not a valid enum value")
		}
	}

	groups, total, err := s.groupRepo.ListModuleGroups(ctx, filter, offset, limit)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	return &model.PaginatedList{
		CurrentPage: page,
		TotalItem:   total,
		Limit:       limit,
		Items:       groups,
	}, nil
}

// UpdateModuleGroupByID 更新模块分组
func (s *ModuleGroupService) UpdateModuleGroupByID(ctx context.Context, id string, req *model.UpdateModuleGroupRequest) (*model.ModuleGroup, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "update module group request must not be empty")
	}

	group, err := s.groupRepo.GetModuleGroupByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if group == nil {
		return nil, model.NewNotFoundError("module_group", id)
	}

	fields := make(map[string]interface{})
	targetName := group.Name
	targetPlatform := group.Platform

	if req.Name != "" {
		fields["name"] = req.Name
		targetName = req.Name
	}
	if req.Platform != "" {
		platform, ok := model.ParsePlatform(req.Platform)
		if !ok {
			return nil, model.NewValidationError("platform", req.Platform, "platform is not a valid enum value")
		}
		fields["platform"] = platform
		targetPlatform = platform
	}
	if req.Sequence != nil {
		fields["sequence"] = *req.Sequence
	}

	if len(fields) == 0 {
		return group, nil
	}

	// 重名检查（排除自身）
	existing, err := s.groupRepo.GetModuleGroupByNameAndPlatform(ctx, targetName, targetPlatform)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if existing != nil && existing.ID != id {
		return nil, model.NewConflictError("name", targetName, fmt.Sprintf("module group %s already exists", targetName))
	}

	if err := s.groupRepo.UpdateModuleGroup(ctx, id, fields); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("update_module_group", "", "", clientIP, "", "success", "module group updated", map[string]interface{}{
		"group_id": id,
	})

	return s.groupRepo.GetModuleGroupByID(ctx, id)
}

// DeleteModuleGroup 删除模块分组
// 组内仍有模块时拒绝删除
func (s *ModuleGroupService) DeleteModuleGroup(ctx context.Context, id string) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	group, err := s.groupRepo.GetModuleGroupByID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if group == nil {
		return model.NewNotFoundError("module_group", id)
	}

	count, err := s.groupRepo.CountModulesByGroupID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if count > 0 {
		return model.NewConflictError("module_group", id,
			fmt.Sprintf("module group %s still contains %d modules and cannot be deleted", group.Name, count))
	}

	if err := s.groupRepo.SoftDeleteModuleGroup(ctx, id); err != nil {
		return model.NewStorageError(err)
	}

	logger.LogBusinessOperation("delete_module_group", "", "", clientIP, "", "success", "module group deleted", map[string]interface{}{
		"group_id": id,
		"name":     group.Name,
	})

	return nil
}
