/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 特殊角色业务逻辑
 * @func:
 * 1.特殊角色列表与查询
 * 2.特殊角色绑定角色(重绑定)
 * @note: 特殊角色槽位由系统预置，业务侧只允许改变其指向的角色
 */

package auth

import (
	"context"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"
	"neoauth/internal/pkg/utils"
	mysqlrepo "neoauth/internal/repository/mysql"
)

// SpecialRoleService 特殊角色服务
type SpecialRoleService struct {
	specialRepo *mysqlrepo.SpecialRoleRepository // 特殊角色数据仓库
	roleRepo    *mysqlrepo.RoleRepository        // 角色数据仓库
}

// NewSpecialRoleService 创建特殊角色服务实例
func NewSpecialRoleService(specialRepo *mysqlrepo.SpecialRoleRepository, roleRepo *mysqlrepo.RoleRepository) *SpecialRoleService {
	return &SpecialRoleService{
		specialRepo: specialRepo,
		roleRepo:    roleRepo,
	}
}

// ListSpecialRoles 获取全部特殊角色
func (s *SpecialRoleService) ListSpecialRoles(ctx context.Context) ([]*model.SpecialRole, error) {
	specials, err := s.specialRepo.ListSpecialRoles(ctx)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	return specials, nil
}

// GetSpecialRoleByID 根据ID获取特殊角色
func (s *SpecialRoleService) GetSpecialRoleByID(ctx context.Context, id string) (*model.SpecialRole, error) {
	special, err := s.specialRepo.GetSpecialRoleByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if special == nil {
		return nil, model.NewNotFoundError("special_role", id)
	}
	return special, nil
}

// GetSpecialRoleByCode 根据编码获取特殊角色
func (s *SpecialRoleService) GetSpecialRoleByCode(ctx context.Context, code string) (*model.SpecialRole, error) {
	special, err := s.specialRepo.GetSpecialRoleByCode(ctx, code)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if special == nil {
		return nil, model.NewNotFoundError("special_role", code)
	}
	return special, nil
}

// UpdateSpecialRoleBinding 更新特殊角色绑定的角色
// 目标角色必须存在；同一个角色可以被重绑定到不同的槽位，但槽位间互不影响
func (s *SpecialRoleService) UpdateSpecialRoleBinding(ctx context.Context, id string, req *model.UpdateSpecialRoleRequest) (*model.SpecialRole, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil || req.RoleID == "" {
		return nil, model.NewValidationError("role_id", "", "role_id must not be empty")
	}

	special, err := s.specialRepo.GetSpecialRoleByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if special == nil {
		return nil, model.NewNotFoundError("special_role", id)
	}

	role, err := s.roleRepo.GetRoleByID(ctx, req.RoleID)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if role == nil {
		return nil, model.NewNotFoundError("role", req.RoleID)
	}

	roleID := req.RoleID
	if err := s.specialRepo.UpdateSpecialRoleBinding(ctx, id, &roleID); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("bind_special_role", "", "", clientIP, "", "success", "special role rebound", map[string]interface{}{
		"special_role_id": id,
		"code":            special.Code,
		"role_id":         req.RoleID,
	})

	return s.specialRepo.GetSpecialRoleByID(ctx, id)
}
