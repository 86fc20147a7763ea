/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 角色业务逻辑(角色自身的增删改查)
 * @func:
 * 1.创建角色(含模块权限校验与关联落库)
 * 2.更新角色(关联整体替换:先删后建,保留角色ID)
 * 3.删除角色(特殊角色占用保护)
 * 4.角色分页查询(两阶段:先分页取ID,再取明细)
 */

//  角色管理:
//  	CreateRole - 创建角色（包含模块权限校验）
//  	GetRoleByID - 根据ID获取角色详情树
//  	ListRoles - 分页获取角色列表
//  	UpdateRoleByID - 更新角色信息（关联整体替换）
//  	DeleteRole - 删除角色（特殊角色占用保护）

package auth

import (
	"context"
	"errors"
	"fmt"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"
	"neoauth/internal/pkg/utils"
	mysqlrepo "neoauth/internal/repository/mysql"
)

// RoleService 角色服务
// 负责角色相关的业务逻辑，包括角色创建、更新、删除和查询
type RoleService struct {
	roleRepo    *mysqlrepo.RoleRepository        // 角色数据仓库
	specialRepo *mysqlrepo.SpecialRoleRepository // 特殊角色数据仓库
	linker      *PermissionLinker                // 模块权限联动校验器
}

// NewRoleService 创建新的角色服务实例
func NewRoleService(roleRepo *mysqlrepo.RoleRepository, specialRepo *mysqlrepo.SpecialRoleRepository, linker *PermissionLinker) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		specialRepo: specialRepo,
		linker:      linker,
	}
}

// CreateRole 创建角色
// 处理角色创建的完整流程：参数验证、重名检查、模块权限校验、事务落库
func (s *RoleService) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.RoleDetailResponse, error) {
	// 从标准上下文中 context 获取必要的信息[已在中间件中做过标准化处理]
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "create role request must not be empty")
	}

	platform, ok := model.ParsePlatform(req.Platform)
	if !ok {
		return nil, model.NewValidationError("platform", req.Platform, "platform is not a valid enum value")
	}

	status := model.RoleStatusInactive
	if req.Status != "" {
		parsed, ok := model.ParseRoleStatus(req.Status)
		if !ok {
			return nil, model.NewValidationError("status", req.Status, "status is not a valid enum value")
		}
		status = parsed
	}

	// 检查角色名在平台内是否已存在
	existing, err := s.roleRepo.GetRoleByNameAndPlatform(ctx, req.Name, platform)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if existing != nil {
		logger.LogError(errors.New("role name already exists"), "", "", clientIP, "role_create", "POST", map[string]interface{}{
			"operation":        "create_role",
			"name":             req.Name,
			"existing_role_id": existing.ID,
			"timestamp":        logger.NowFormatted(),
		})
		return nil, model.NewConflictError("name", req.Name, fmt.Sprintf("role %s already exists", req.Name))
	}

	// 模块权限校验，全部通过才产出关联行
	links, err := s.linker.ParseModulePermissions(ctx, req.ModulePermissions)
	if err != nil {
		return nil, err
	}

	role := &model.Role{
		Name:              req.Name,
		Platform:          platform,
		Status:            status,
		ModulePermissions: links,
	}

	// 事务落库：角色与关联行一起写入
	tx := s.roleRepo.BeginTx(ctx)
	if tx.Error != nil {
		return nil, model.NewStorageError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.LogError(fmt.Errorf("panic during role create: %v", r), "", "", clientIP, "role_create", "POST", map[string]interface{}{
				"operation": "panic_recovery",
				"timestamp": logger.NowFormatted(),
			})
		}
	}()

	if err := s.roleRepo.CreateRoleWithTx(ctx, tx, role); err != nil {
		tx.Rollback()
		return nil, model.NewStorageError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("create_role", "", "", clientIP, "", "success", "role created", map[string]interface{}{
		"role_id":  role.ID,
		"name":     role.Name,
		"platform": role.Platform,
	})

	// 重新加载明细，走统一的响应整形
	return s.GetRoleByID(ctx, role.ID)
}

// GetRoleByID 根据ID获取角色详情树
func (s *RoleService) GetRoleByID(ctx context.Context, id string) (*model.RoleDetailResponse, error) {
	role, err := s.roleRepo.GetRoleDetailByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if role == nil {
		return nil, model.NewNotFoundError("role", id)
	}
	return FormatRoleResponse(role), nil
}

// ListRoles 分页获取角色列表
// 两阶段查询：先只在角色表上过滤分页取ID，再按ID集合取带关联的明细，
// 避免关联行膨胀导致的分页错位
func (s *RoleService) ListRoles(ctx context.Context, filter *model.QueryFilter) (*model.PaginatedList, error) {
	page, limit := 1, 10
	if filter != nil {
		page, limit = utils.NormalizePage(filter.Page, filter.Limit)
	}
	offset := utils.PageOffset(page, limit)

	if filter != nil && filter.Status != "" {
		if _, ok := model.ParseRoleStatus(filter.Status); !ok {
			return nil, model.NewValidationError("status", filter.Status, "status is not a valid enum value")
		}
	}
	if filter != nil && filter.Platform != "" {
		if _, ok := model.ParsePlatform(filter.Platform); !ok {
			return nil, model.NewValidationError("platform", filter.Platform, "platform is not a valid enum value")
		}
	}

	ids, total, err := s.roleRepo.ListRoleIDs(ctx, filter, offset, limit)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	roles, err := s.roleRepo.GetRolesByIDs(ctx, ids)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	items := make([]*model.RoleDetailResponse, 0, len(roles))
	for _, role := range roles {
		items = append(items, FormatRoleResponse(role))
	}

	return &model.PaginatedList{
		CurrentPage: page,
		TotalItem:   total,
		Limit:       limit,
		Items:       items,
	}, nil
}

// UpdateRoleByID 更新角色信息
// 关联整体替换语义：在同一事务中硬删除旧关联后按请求重建，角色ID保持不变。
// 并发更新不做乐观锁，后写覆盖先写。
func (s *RoleService) UpdateRoleByID(ctx context.Context, id string, req *model.UpdateRoleRequest) (*model.RoleDetailResponse, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "update role request must not be empty")
	}

	role, err := s.roleRepo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if role == nil {
		return nil, model.NewNotFoundError("role", id)
	}

	// 应用更新
	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Platform != "" {
		platform, ok := model.ParsePlatform(req.Platform)
		if !ok {
			return nil, model.NewValidationError("platform", req.Platform, "platform is not a valid enum value")
		}
		role.Platform = platform
	}
	// 状态缺省回落为 inactive，与创建时的缺省语义一致
	role.Status = model.RoleStatusInactive
	if req.Status != "" {
		status, ok := model.ParseRoleStatus(req.Status)
		if !ok {
			return nil, model.NewValidationError("status", req.Status, "status is not a valid enum value")
		}
		role.Status = status
	}

	// 重名检查（排除自身）
	existing, err := s.roleRepo.GetRoleByNameAndPlatform(ctx, role.Name, role.Platform)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if existing != nil && existing.ID != role.ID {
		return nil, model.NewConflictError("name", role.Name, fmt.Sprintf("role %s already exists", role.Name))
	}

	// 模块权限校验
	links, err := s.linker.ParseModulePermissions(ctx, req.ModulePermissions)
	if err != nil {
		return nil, err
	}
	for i := range links {
		links[i].RoleID = role.ID
	}

	// 事务：先整批删除旧关联，再更新角色字段并重建关联
	tx := s.roleRepo.BeginTx(ctx)
	if tx.Error != nil {
		return nil, model.NewStorageError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.LogError(fmt.Errorf("panic during role update: %v", r), "", "", clientIP, "role_update", "PUT", map[string]interface{}{
				"operation": "panic_recovery",
				"role_id":   role.ID,
				"timestamp": logger.NowFormatted(),
			})
		}
	}()

	if err := s.roleRepo.DeleteRoleModulesByRoleID(ctx, tx, role.ID); err != nil {
		tx.Rollback()
		return nil, model.NewStorageError(err)
	}

	if err := s.roleRepo.UpdateRoleWithTx(ctx, tx, role); err != nil {
		tx.Rollback()
		return nil, model.NewStorageError(err)
	}

	if err := s.roleRepo.CreateRoleModulesWithTx(ctx, tx, links); err != nil {
		tx.Rollback()
		return nil, model.NewStorageError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("update_role", "", "", clientIP, "", "success", "role updated", map[string]interface{}{
		"role_id":  role.ID,
		"name":     role.Name,
		"platform": role.Platform,
	})

	return s.GetRoleByID(ctx, role.ID)
}

// DeleteRole 删除角色
// 被特殊角色引用的角色受占用保护，不允许删除；
// 软删除角色本身，历史关联行保留
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	clientIP := utils.GetClientIPFromContext(ctx)

	role, err := s.roleRepo.GetRoleByID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if role == nil {
		return model.NewNotFoundError("role", id)
	}

	// 特殊角色占用检查
	special, err := s.specialRepo.GetSpecialRoleByRoleID(ctx, id)
	if err != nil {
		return model.NewStorageError(err)
	}
	if special != nil {
		logger.LogError(errors.New("role is bound to special role"), "", "", clientIP, "role_delete", "DELETE", map[string]interface{}{
			"operation":    "delete_role",
			"role_id":      id,
			"special_code": special.Code,
			"timestamp":    logger.NowFormatted(),
		})
		return model.NewConflictError("role", id,
			fmt.Sprintf("role is bound to special role %s and cannot be deleted", special.Code))
	}

	if err := s.roleRepo.SoftDeleteRole(ctx, id); err != nil {
		return model.NewStorageError(err)
	}

	logger.LogBusinessOperation("delete_role", "", "", clientIP, "", "success", "role deleted", map[string]interface{}{
		"role_id": id,
		"name":    role.Name,
	})

	return nil
}
