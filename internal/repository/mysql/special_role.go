/*
 * 特殊角色仓库层:特殊角色数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @note: 特殊角色是固定编码的系统内建角色槽位，只允许重绑定指向的角色
 */

package mysql

import (
	"context"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"

	"gorm.io/gorm"
)

// SpecialRoleRepository 特殊角色仓库结构体
type SpecialRoleRepository struct {
	db *gorm.DB // 数据库连接
}

// NewSpecialRoleRepository 创建特殊角色仓库实例
func NewSpecialRoleRepository(db *gorm.DB) *SpecialRoleRepository {
	return &SpecialRoleRepository{
		db: db,
	}
}

// GetSpecialRoleByID 根据ID获取特殊角色
func (r *SpecialRoleRepository) GetSpecialRoleByID(ctx context.Context, id string) (*model.SpecialRole, error) {
	var special model.SpecialRole
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&special).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", id, "", "special_role_get", "GET", map[string]interface{}{
			"operation": "get_special_role_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &special, nil
}

// GetSpecialRoleByCode 根据编码获取特殊角色
func (r *SpecialRoleRepository) GetSpecialRoleByCode(ctx context.Context, code string) (*model.SpecialRole, error) {
	var special model.SpecialRole
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&special).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "special_role_get", "GET", map[string]interface{}{
			"operation": "get_special_role_by_code",
			"code":      code,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &special, nil
}

// GetSpecialRoleByRoleID 根据绑定的角色ID获取特殊角色
// 角色删除前的占用检查使用该查询
func (r *SpecialRoleRepository) GetSpecialRoleByRoleID(ctx context.Context, roleID string) (*model.SpecialRole, error) {
	var special model.SpecialRole
	err := r.db.WithContext(ctx).Where("role_id = ?", roleID).First(&special).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.LogError(err, "", "", "", "special_role_get", "GET", map[string]interface{}{
			"operation": "get_special_role_by_role_id",
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &special, nil
}

// ListSpecialRoles 获取全部特殊角色，带绑定角色预加载
func (r *SpecialRoleRepository) ListSpecialRoles(ctx context.Context) ([]*model.SpecialRole, error) {
	var specials []*model.SpecialRole
	err := r.db.WithContext(ctx).Preload("Role").Order("code ASC").Find(&specials).Error
	if err != nil {
		logger.LogError(err, "", "", "", "special_role_list", "GET", map[string]interface{}{
			"operation": "list_special_roles",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return specials, nil
}

// UpdateSpecialRoleBinding 更新特殊角色绑定的角色
func (r *SpecialRoleRepository) UpdateSpecialRoleBinding(ctx context.Context, id string, roleID *string) error {
	err := r.db.WithContext(ctx).Model(&model.SpecialRole{}).
		Where("id = ?", id).
		Update("role_id", roleID).Error
	if err != nil {
		logger.LogError(err, "", id, "", "special_role_update", "PUT", map[string]interface{}{
			"operation": "update_special_role_binding",
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}
