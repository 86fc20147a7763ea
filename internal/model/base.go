/**
 * 模型:基础模型
 * @author: sun977
 * @date: 2025.12.20
 * @description: 统一的基础字段定义,所有业务实体共用
 * @func: BaseModel 结构体及UUID主键钩子
 */
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 提供统一的基础字段：ID、CreatedAt、UpdatedAt、DeletedAt。
// 约定与特性：
//  1. ID 为 uuid 字符串主键(char(36))，在 BeforeCreate 钩子中自动生成。
//  2. CreatedAt/UpdatedAt 由 GORM 自动维护时间戳。
//  3. DeletedAt 使用 gorm.DeletedAt 实现软删除，默认查询自动排除已删除记录。
type BaseModel struct {
	ID        string         `json:"id" gorm:"type:char(36);primaryKey;comment:主键UUID"`
	CreatedAt time.Time      `json:"-" gorm:"autoCreateTime;comment:创建时间"`
	UpdatedAt time.Time      `json:"-" gorm:"autoUpdateTime;comment:更新时间"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// BeforeCreate GORM钩子,插入前自动生成UUID主键
// 允许调用方预设ID(例如角色更新时保留原ID重建记录)
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
