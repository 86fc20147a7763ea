/*
 * @author: sun977
 * @date: 2025.12.20
 * @description: 角色模块权限联动校验(权限交集校验)
 * @func:
 * 1.整表加载权限注册表
 * 2.逐项校验请求的激活权限是否为模块权限全集的子集
 * 3.产出可落库的角色模块关联行
 */

package auth

import (
	"context"
	"fmt"
	"strings"

	"neoauth/internal/model"
	mysqlrepo "neoauth/internal/repository/mysql"
)

// PermissionLinker 角色模块权限联动校验器
// 角色创建/更新时把请求中的 (module_id, permissions) 列表
// 对照权限注册表整体校验，全部通过才产出关联行
type PermissionLinker struct {
	moduleRepo *mysqlrepo.ModulePermissionRepository // 权限模块仓库
}

// NewPermissionLinker 创建权限联动校验器实例
func NewPermissionLinker(moduleRepo *mysqlrepo.ModulePermissionRepository) *PermissionLinker {
	return &PermissionLinker{
		moduleRepo: moduleRepo,
	}
}

// ParseModulePermissions 校验请求的模块权限列表并产出关联行
// 注册表整表加载一次，避免逐条查询
// 校验失败返回字段级错误，指明越界权限和模块编码
func (l *PermissionLinker) ParseModulePermissions(ctx context.Context, items []model.ModulePermissionItem) ([]model.RoleModule, error) {
	if len(items) == 0 {
		return nil, model.NewValidationError("module_permissions", "", "module_permissions must not be empty")
	}

	// 整表加载权限注册表
	registry, err := l.moduleRepo.GetAllModulePermissions(ctx)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	registryByID := make(map[string]*model.ModulePermission, len(registry))
	for _, m := range registry {
		registryByID[m.ID] = m
	}

	links := make([]model.RoleModule, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		// 未登记的模块直接拒绝
		module, ok := registryByID[item.ModuleID]
		if !ok {
			return nil, model.NewValidationError("module_id", item.ModuleID,
				fmt.Sprintf("module %s is not registered", item.ModuleID))
		}

		// 同一模块在请求中出现多次视为非法输入
		if seen[item.ModuleID] {
			return nil, model.NewValidationError("module_id", item.ModuleID,
				fmt.Sprintf("module %s appears more than once", module.Code))
		}
		seen[item.ModuleID] = true

		// 权限交集校验：请求的激活权限必须全部落在模块权限全集内
		if outer := module.Permissions.Outer(item.Permissions); len(outer) > 0 {
			return nil, model.NewValidationError("permissions", strings.Join(outer, ","),
				fmt.Sprintf("permissions [%s] does NOT exist in module %s", strings.Join(outer, ","), module.Code))
		}

		links = append(links, model.RoleModule{
			ModuleID:          item.ModuleID,
			ActivePermissions: item.Permissions,
		})
	}

	return links, nil
}
