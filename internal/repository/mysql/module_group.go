/*
 * 模块分组仓库层:模块分组数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 */

package mysql

import (
	"context"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"

	"gorm.io/gorm"
)

// ModuleGroupRepository 模块分组仓库结构体
type ModuleGroupRepository struct {
	db *gorm.DB // 数据库连接
}

// NewModuleGroupRepository 创建模块分组仓库实例
func NewModuleGroupRepository(db *gorm.DB) *ModuleGroupRepository {
	return &ModuleGroupRepository{
		db: db,
	}
}

// CreateModuleGroup 创建模块分组
func (r *ModuleGroupRepository) CreateModuleGroup(ctx context.Context, group *model.ModuleGroup) error {
	err := r.db.WithContext(ctx).Create(group).Error
	if err != nil {
		logger.LogError(err, "", "", "", "module_group_create", "POST", map[string]interface{}{
			"operation": "create_module_group",
			"name":      group.Name,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetModuleGroupByID 根据ID获取模块分组
func (r *ModuleGroupRepository) GetModuleGroupByID(ctx context.Context, id string) (*model.ModuleGroup, error) {
	var group model.ModuleGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", id, "", "module_group_get", "GET", map[string]interface{}{
			"operation": "get_module_group_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &group, nil
}

// GetModuleGroupByNameAndPlatform 根据分组名和平台获取模块分组
// 分组名在平台内唯一
func (r *ModuleGroupRepository) GetModuleGroupByNameAndPlatform(ctx context.Context, name string, platform model.Platform) (*model.ModuleGroup, error) {
	var group model.ModuleGroup
	err := r.db.WithContext(ctx).
		Where("name = ? AND platform = ?", name, platform).
		First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "module_group_get", "GET", map[string]interface{}{
			"operation": "get_module_group_by_name_and_platform",
			"name":      name,
			"platform":  platform,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &group, nil
}

// ListModuleGroups 分页获取模块分组列表，分组下的模块按 sequence 升序预加载
func (r *ModuleGroupRepository) ListModuleGroups(ctx context.Context, filter *model.QueryFilter, offset, limit int) ([]*model.ModuleGroup, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ModuleGroup{})

	if filter != nil {
		if filter.Search != "" {
			query = query.Where("name LIKE ?", "%"+filter.Search+"%")
		}
		if filter.Platform != "" {
			query = query.Where("platform = ?", filter.Platform)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*model.ModuleGroup
	err := query.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).
		Order("sequence ASC").
		Offset(offset).Limit(limit).
		Find(&groups).Error
	if err != nil {
		logger.LogError(err, "", "", "", "module_group_list", "GET", map[string]interface{}{
			"operation": "list_module_groups",
			"timestamp": logger.NowFormatted(),
		})
		return nil, 0, err
	}

	return groups, total, nil
}

// UpdateModuleGroup 更新模块分组字段
func (r *ModuleGroupRepository) UpdateModuleGroup(ctx context.Context, id string, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.ModuleGroup{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		logger.LogError(err, "", id, "", "module_group_update", "PUT", map[string]interface{}{
			"operation": "update_module_group",
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SoftDeleteModuleGroup 软删除模块分组
func (r *ModuleGroupRepository) SoftDeleteModuleGroup(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ModuleGroup{})
	if result.Error != nil {
		logger.LogError(result.Error, "", id, "", "module_group_delete", "DELETE", map[string]interface{}{
			"operation": "soft_delete_module_group",
			"timestamp": logger.NowFormatted(),
		})
		return result.Error
	}
	return nil
}

// CountModulesByGroupID 统计分组下的模块数
// 分组删除前的占用检查
func (r *ModuleGroupRepository) CountModulesByGroupID(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ModulePermission{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
