/*
 * 角色仓库层:角色数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.创建角色
 * 2.更新角色
 * 3.删除角色
 * 4.角色及其模块权限的关联查询
 */

//  基础CRUD操作:
//  	CreateRole - 创建角色（含角色模块关联，事务版本）
//  	GetRoleByID - 根据ID获取角色
//  	GetRoleByNameAndPlatform - 根据角色名和平台获取角色
//  	UpdateRoleWithTx - 事务更新角色信息
//  	SoftDeleteRole - 软删除角色
//  高级查询功能:
//  	GetRoleDetailByID - 获取角色及其模块权限明细（有序预加载）
//  	ListRoleIDs - 分页获取角色ID列表（第一阶段）
//  	GetRolesByIDs - 根据ID集合获取角色明细（第二阶段）
//  事务支持:
//  	BeginTx - 开始事务
//  	DeleteRoleModulesByRoleID - 事务硬删除角色模块关联
//  	CreateRoleModulesWithTx - 事务批量创建角色模块关联

package mysql

import (
	"context"
	"fmt"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"

	"gorm.io/gorm"
)

// RoleRepository 角色仓库结构体
// 负责处理角色相关的数据访问，不包含业务逻辑
type RoleRepository struct {
	db *gorm.DB // 数据库连接
}

// NewRoleRepository 创建角色仓库实例
// 注入数据库连接，专注于数据访问操作
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// BeginTx 开始事务
func (r *RoleRepository) BeginTx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Begin()
}

// CreateRoleWithTx 使用事务创建角色及其模块权限关联
// FullSaveAssociations 保证关联行与角色一起写入
func (r *RoleRepository) CreateRoleWithTx(ctx context.Context, tx *gorm.DB, role *model.Role) error {
	err := tx.WithContext(ctx).Create(role).Error
	if err != nil {
		logger.LogError(err, "", role.ID, "", "role_create", "POST", map[string]interface{}{
			"operation": "create_role",
			"name":      role.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetRoleByID 根据ID获取角色（不带关联）
func (r *RoleRepository) GetRoleByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", id, "", "role_get", "GET", map[string]interface{}{
			"operation": "get_role_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// GetRoleByNameAndPlatform 根据角色名和平台获取角色
// 角色名在平台内唯一
func (r *RoleRepository) GetRoleByNameAndPlatform(ctx context.Context, name string, platform model.Platform) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("name = ? AND platform = ?", name, platform).
		First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "role_get", "GET", map[string]interface{}{
			"operation": "get_role_by_name_and_platform",
			"name":      name,
			"platform":  platform,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// GetRoleDetailByID 获取角色及其模块权限明细
// 预加载角色模块关联、模块、模块分组和特殊角色引用
// 关联按模块 sequence 升序排列，保证响应中的模块顺序稳定
func (r *RoleRepository) GetRoleDetailByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.detailQuery(ctx).Where("auth_users_roles.id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", id, "", "role_detail", "GET", map[string]interface{}{
			"operation": "get_role_detail_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// ListRoleIDs 分页获取角色ID列表和总数（两阶段查询的第一阶段）
// 只在角色表上做过滤和分页，避免关联行导致分页错位
func (r *RoleRepository) ListRoleIDs(ctx context.Context, filter *model.QueryFilter, offset, limit int) ([]string, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Role{})

	if filter != nil {
		if filter.Search != "" {
			query = query.Where("name LIKE ?", "%"+filter.Search+"%")
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Platform != "" {
			query = query.Where("platform = ?", filter.Platform)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.LogError(err, "", "", "", "role_list", "GET", map[string]interface{}{
			"operation": "count_roles",
			"timestamp": logger.NowFormatted(),
		})
		return nil, 0, err
	}

	var ids []string
	err := query.Order("name ASC").Offset(offset).Limit(limit).Pluck("id", &ids).Error
	if err != nil {
		logger.LogError(err, "", "", "", "role_list", "GET", map[string]interface{}{
			"operation": "list_role_ids",
			"timestamp": logger.NowFormatted(),
		})
		return nil, 0, err
	}

	return ids, total, nil
}

// GetRolesByIDs 根据ID集合获取角色明细（两阶段查询的第二阶段）
// 保持 name 升序，与第一阶段的分页顺序一致
func (r *RoleRepository) GetRolesByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	if len(ids) == 0 {
		return []*model.Role{}, nil
	}

	var roles []*model.Role
	err := r.detailQuery(ctx).
		Where("auth_users_roles.id IN ?", ids).
		Order("auth_users_roles.name ASC").
		Find(&roles).Error
	if err != nil {
		logger.LogError(err, "", "", "", "role_list", "GET", map[string]interface{}{
			"operation": "get_roles_by_ids",
			"count":     len(ids),
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return roles, nil
}

// detailQuery 带明细预加载的角色查询
func (r *RoleRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Role{}).
		Preload("ModulePermissions", func(db *gorm.DB) *gorm.DB {
			return db.Joins("JOIN auth_module_permissions amp ON amp.id = auth_modules_modules_roles.module_id").
				Order("amp.sequence ASC")
		}).
		Preload("ModulePermissions.Module").
		Preload("ModulePermissions.Module.Group").
		Preload("SpecialRole")
}

// UpdateRoleWithTx 使用事务更新角色信息
func (r *RoleRepository) UpdateRoleWithTx(ctx context.Context, tx *gorm.DB, role *model.Role) error {
	err := tx.WithContext(ctx).Model(&model.Role{}).
		Where("id = ?", role.ID).
		Updates(map[string]interface{}{
			"name":     role.Name,
			"platform": role.Platform,
			"status":   role.Status,
		}).Error
	if err != nil {
		logger.LogError(err, "", role.ID, "", "role_update", "PUT", map[string]interface{}{
			"operation": "update_role_with_transaction",
			"name":      role.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// DeleteRoleModulesByRoleID 删除角色的所有模块权限关联（事务版本）
// 物理删除，角色更新时整体重建关联
func (r *RoleRepository) DeleteRoleModulesByRoleID(ctx context.Context, tx *gorm.DB, roleID string) error {
	result := tx.WithContext(ctx).Where("role_id = ?", roleID).Delete(&model.RoleModule{})
	if result.Error != nil {
		logger.LogError(result.Error, "", roleID, "", "delete_role_modules", "DELETE", map[string]interface{}{
			"operation": "delete_role_modules_by_role_id",
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// CreateRoleModulesWithTx 批量创建角色模块权限关联（事务版本）
func (r *RoleRepository) CreateRoleModulesWithTx(ctx context.Context, tx *gorm.DB, links []model.RoleModule) error {
	if len(links) == 0 {
		return nil
	}
	err := tx.WithContext(ctx).Create(&links).Error
	if err != nil {
		logger.LogError(err, "", "", "", "create_role_modules", "POST", map[string]interface{}{
			"operation": "create_role_modules_with_transaction",
			"count":     len(links),
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SoftDeleteRole 软删除角色
// 删除操作具有幂等性，即使没有找到记录也不返回错误
func (r *RoleRepository) SoftDeleteRole(ctx context.Context, roleID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", roleID).Delete(&model.Role{})
	if result.Error != nil {
		logger.LogError(result.Error, "", roleID, "", "role_delete", "DELETE", map[string]interface{}{
			"operation": "soft_delete_role",
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// RoleExistsByID 根据ID判断角色是否存在
func (r *RoleRepository) RoleExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Role{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return count > 0, nil
}
