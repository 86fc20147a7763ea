/**
 * 模型:角色模型
 * @author: sun977
 * @date: 2025.12.20
 * @description: 角色数据模型,包含角色基本信息、状态管理和模块权限关联
 * @func: Role/RoleModule 结构体及相关方法
 */
package model

import (
	"time"

	"gorm.io/gorm"
)

// Role 角色模型
// (name, platform) 在未删除记录中唯一；status 缺省为 inactive
type Role struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:100;index:idx_role_name_platform;comment:角色名称"`                      // 角色名称
	Platform Platform   `json:"platform" gorm:"type:varchar(20);default:NONE;index:idx_role_name_platform;comment:所属平台"` // 所属平台
	Status   RoleStatus `json:"status" gorm:"type:varchar(20);default:inactive;comment:角色状态"`                        // 角色状态，默认 inactive

	// 关联关系
	ModulePermissions []RoleModule `json:"module_permissions,omitempty" gorm:"foreignKey:RoleID"` // 角色持有的模块权限关联，由角色全量拥有
	SpecialRole       *SpecialRole `json:"special_role,omitempty" gorm:"foreignKey:RoleID"`       // 绑定到此角色的特殊角色(一对一)
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "auth_users_roles"
}

// IsActive 检查角色是否处于启用状态
func (r *Role) IsActive() bool {
	return r.Status == RoleStatusActive
}

// RoleModule 角色-权限模块关联表
// 联合主键 (role_id, module_id)；active_permissions 必须是所引用模块
// permissions 全集的子集，该不变量在业务层校验后才允许落库。
// 关联行完全由角色拥有：角色更新时整批硬删除后重建，不做差量合并。
type RoleModule struct {
	RoleID            string     `json:"role_id" gorm:"type:char(36);primaryKey;comment:角色ID"`    // 角色ID，联合主键
	ModuleID          string     `json:"module_id" gorm:"type:char(36);primaryKey;comment:模块ID"`  // 模块ID，联合主键
	ActivePermissions StringList `json:"active_permissions" gorm:"type:json;serializer:json;comment:已激活权限子集"` // 已激活权限子集
	CreatedAt         time.Time  `json:"-" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"-" gorm:"autoUpdateTime"`

	// 关联关系
	Role   *Role             `json:"-" gorm:"foreignKey:RoleID"`
	Module *ModulePermission `json:"module,omitempty" gorm:"foreignKey:ModuleID"`
}

// TableName 指定角色模块关联表名
func (RoleModule) TableName() string {
	return "auth_modules_modules_roles"
}

// BeforeCreate 关联表不生成UUID,主键由外部实体提供
func (rm *RoleModule) BeforeCreate(tx *gorm.DB) error {
	return nil
}
