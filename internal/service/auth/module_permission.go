/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 权限模块业务逻辑(权限注册表维护)
 * @func:
 * 1.登记权限模块(平台内编码唯一,分组必须已存在)
 * 2.更新权限模块
 * 3.删除权限模块(被角色引用时拒绝)
 * 4.权限模块分页查询
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

// ModulePermissionService 权限模块服务
// 维护权限注册表：每个模块可授予的权限字符串全集
type ModulePermissionService struct {
	moduleRepo *mysqlrepo.ModulePermissionRepository // 权限模块数据仓库
	groupRepo  *mysqlrepo.ModuleGroupRepository      // 模块分组数据仓库
}

// NewModulePermissionService 创建权限模块服务实例
func NewModulePermissionService(moduleRepo *mysqlrepo.ModulePermissionRepository, groupRepo *mysqlrepo.ModuleGroupRepository) *ModulePermissionService {
	return &ModulePermissionService{
		moduleRepo: moduleRepo,
		groupRepo:  groupRepo,
	}
}

// CreateModulePermission 登记权限模块
// 模块编码在平台内唯一；分组可以为空，指定了分组则分组必须已存在
func (s *ModulePermissionService) CreateModulePermission(ctx context.Context, req *model.CreateModulePermissionRequest) (*model.ModulePermission, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "create module permission request must not be empty")
	}

	platform, ok := model.ParsePlatform(req.Platform)
	if !ok {
		return nil, model.NewValidationError("platform", req.Platform, "platform is not a valid enum value")
	}

	// 分组可以为空，指定了分组则必须已存在
	var groupID *string
	if req.GroupID != "" {
		group, err := s.groupRepo.GetModuleGroupByID(ctx, req.GroupID)
		if err != nil {
			return nil, model.NewStorageError(err)
		}
		if group == nil {
			return nil, model.NewNotFoundError("group_id", req.GroupID)
		}
		id := req.GroupID
		groupID = &id
	}

	// 编码唯一性检查
	if req.Code != "" {
		existing, err := s.moduleRepo.GetModulePermissionByCodeAndPlatform(ctx, req.Code, platform)
		if err != nil {
			return nil, model.NewStorageError(err)
		}
		if existing != nil {
			return nil, model.NewConflictError("code", req.Code, fmt.Sprintf("module %s already exists", req.Code))
		}
	}

	module := &model.ModulePermission{
		Code:        req.Code,
		Name:        req.Name,
		GroupID:     groupID,
		Platform:    platform,
		Sequence:    req.Sequence,
		Permissions: req.Permissions,
	}

	if err := s.moduleRepo.CreateModulePermission(ctx, module); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("create_module_permission", "", "", clientIP, "", "success", "module permission created", map[string]interface{}{
		"module_id": module.ID,
		"code":      module.Code,
		"platform":  module.Platform,
	})

	return module, nil
}

// GetModulePermissionByID 根据ID获取权限模块
func (s *ModulePermissionService) GetModulePermissionByID(ctx context.Context, id string) (*model.ModulePermission, error) {
	module, err := s.moduleRepo.GetModulePermissionByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if module == nil {
		return nil, model.NewNotFoundError("module", id)
	}
	return module, nil
}

// ListModulePermissions 分页获取权限模块列表
func (s *ModulePermissionService) ListModulePermissions(ctx context.Context, filter *model.QueryFilter) (*model.PaginatedList, error) {
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

	modules, total, err := s.moduleRepo.ListModulePermissions(ctx, filter, offset, limit)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	return &model.PaginatedList{
		CurrentPage: page,
		TotalItem:   total,
		Limit:       limit,
		Items:       modules,
	}, nil
}

// UpdateModulePermissionByID 更新权限模块
// 缩减 permissions 全集不会级联收缩既有角色的激活权限，
// 历史关联行保持原样，只在下一次角色更新时按新全集校验
func (s *ModulePermissionService) UpdateModulePermissionByID(ctx context.Context, id string, req *model.UpdateModulePermissionRequest) (*model.ModulePermission, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "update module permission request must not be empty")
	}

	module, err := s.moduleRepo.GetModulePermissionByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if module == nil {
		return nil, model.NewNotFoundError("module", id)
	}

	fields := make(map[string]interface{})
	targetCode := module.Code
	targetPlatform := module.Platform

	if req.GroupID != "" {
		group, err := s.groupRepo.GetModuleGroupByID(ctx, req.GroupID)
		if err != nil {
			return nil, model.NewStorageError(err)
		}
		if group == nil {
			return nil, model.NewNotFoundError("group_id", req.GroupID)
		}
		fields["group_id"] = req.GroupID
	}
	if req.Code != "" {
		fields["code"] = req.Code
		targetCode = req.Code
	}
	if req.Name != "" {
		fields["name"] = req.Name
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
	if req.Permissions != nil {
		fields["permissions"] = model.StringList(req.Permissions)
	}

	if len(fields) == 0 {
		return module, nil
	}

	// 编码唯一性检查（排除自身）
	existing, err := s.moduleRepo.GetModulePermissionByCodeAndPlatform(ctx, targetCode, targetPlatform)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if existing != nil && existing.ID != id {
		return nil, model.NewConflictError("code", targetCode, fmt.Sprintf("module %s already exists", targetCode))
	}

	if err := s.moduleRepo.UpdateModulePermission(ctx, id, fields); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("update_module_permission", "", "", clientIP, "", "success", "module permission updated", map[string]interface{}{
		"module_id": id,
	})

	return s.moduleRepo.GetModulePermissionByID(ctx, id)
}

// DeleteModulePermission 删除权限模块
// 仍被角色关联引用的模块拒绝删除
func (s *ModulePermissionService) DeleteModulePermission(ctx context.Context, id string) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	module, err := s.moduleRepo.GetModulePermissionByID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if module == nil {
		return model.NewNotFoundError("module", id)
	}

	count, err := s.moduleRepo.CountRoleLinksByModuleID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if count > 0 {
		return model.NewConflictError("module", id,
			fmt.Sprintf("module %s is referenced by %d roles and cannot be deleted", module.Code, count))
	}

	if err := s.moduleRepo.SoftDeleteModulePermission(ctx, id); err != nil {
		return model.NewStorageError(err)
	}

	logger.LogBusinessOperation("delete_module_permission", "", "", clientIP, "", "success", "module permission deleted", map[string]interface{}{
		"module_id": id,
		"code":      module.Code,
	})

	return nil
}
