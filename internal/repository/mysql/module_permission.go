/*
 * 模块权限仓库层:模块权限注册表数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @func:
 * 1.创建模块权限
 * 2.更新模块权限
 * 3.删除模块权限
 * 4.模块权限注册表查询
 */

package mysql

import (
	"context"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"

	"gorm.io/gorm"
)

// ModulePermissionRepository 模块权限仓库结构体
type ModulePermissionRepository struct {
	db *gorm.DB // 数据库连接
}

// NewModulePermissionRepository 创建模块权限仓库实例
func NewModulePermissionRepository(db *gorm.DB) *ModulePermissionRepository {
	return &ModulePermissionRepository{
		db: db,
	}
}

// CreateModulePermission 创建模块权限
func (r *ModulePermissionRepository) CreateModulePermission(ctx context.Context, module *model.ModulePermission) error {
	err := r.db.WithContext(ctx).Create(module).Error
	if err != nil {
		logger.LogError(err, "", "", "", "module_permission_create", "POST", map[string]interface{}{
			"operation": "create_module_permission",
			"code":      module.Code,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetModulePermissionByID 根据ID获取模块权限
func (r *ModulePermissionRepository) GetModulePermissionByID(ctx context.Context, id string) (*model.ModulePermission, error) {
	var module model.ModulePermission
	err := r.db.WithContext(ctx).Preload("Group").Where("id = ?", id).First(&module).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", id, "", "module_permission_get", "GET", map[string]interface{}{
			"operation": "get_module_permission_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &module, nil
}

// GetModulePermissionByCodeAndPlatform 根据模块编码和平台获取模块权限
// 模块编码在平台内唯一
func (r *ModulePermissionRepository) GetModulePermissionByCodeAndPlatform(ctx context.Context, code string, platform model.Platform) (*model.ModulePermission, error) {
	var module model.ModulePermission
	err := r.db.WithContext(ctx).
		Where("code = ? AND platform = ?", code, platform).
		First(&module).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "module_permission_get", "GET", map[string]interface{}{
			"operation": "get_module_permission_by_code_and_platform",
			"code":      code,
			"platform":  platform,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &module, nil
}

// GetAllModulePermissions 获取全部模块权限注册表
// 角色校验时整表加载一次，避免逐条查询
func (r *ModulePermissionRepository) GetAllModulePermissions(ctx context.Context) ([]*model.ModulePermission, error) {
	var modules []*model.ModulePermission
	err := r.db.WithContext(ctx).Order("sequence ASC").Find(&modules).Error
	if err != nil {
		logger.LogError(err, "", "", "", "module_permission_list", "GET", map[string]interface{}{
			"operation": "get_all_module_permissions",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return modules, nil
}

// ListModulePermissions 分页获取模块权限列表
func (r *ModulePermissionRepository) ListModulePermissions(ctx context.Context, filter *model.QueryFilter, offset, limit int) ([]*model.ModulePermission, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ModulePermission{})

	if filter != nil {
		if filter.Search != "" {
			query = query.Where("name LIKE ? OR code LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
		}
		if filter.Platform != "" {
			query = query.Where("platform = ?", filter.Platform)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modules []*model.ModulePermission
	err := query.Preload("Group").
		Order("sequence ASC").
		Offset(offset).Limit(limit).
		Find(&modules).Error
	if err != nil {
		logger.LogError(err, "", "", "", "module_permission_list", "GET", map[string]interface{}{
			"operation": "list_module_permissions",
			"timestamp": logger.NowFormatted(),
		})
		return nil, 0, err
	}

	return modules, total, nil
}

// UpdateModulePermission 更新模块权限字段
func (r *ModulePermissionRepository) UpdateModulePermission(ctx context.Context, id string, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.ModulePermission{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		logger.LogError(err, "", id, "", "module_permission_update", "PUT", map[string]interface{}{
			"operation": "update_module_permission",
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SoftDeleteModulePermission 软删除模块权限
func (r *ModulePermissionRepository) SoftDeleteModulePermission(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ModulePermission{})
	if result.Error != nil {
		logger.LogError(result.Error, "", id, "", "module_permission_delete", "DELETE", map[string]interface{}{
			"operation": "soft_delete_module_permission",
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// CountRoleLinksByModuleID 统计引用某模块的角色关联数
// 模块删除前的占用检查
func (r *ModulePermissionRepository) CountRoleLinksByModuleID(ctx context.Context, moduleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RoleModule{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}
