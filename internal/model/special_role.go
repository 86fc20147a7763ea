/**
 * 模型:特殊角色
 * @author: sun977
 * @date: 2025.12.20
 * @description: 平台预定义的特殊角色(如超管/收银员),可选绑定到一个普通角色
 * @func: SpecialRole 结构体及相关方法
 */
package model

// SpecialRole 特殊角色模型
// 与 Role 是可选的一对一关系；一个 Role 至多被一个 SpecialRole 引用。
// 被引用的 Role 不允许删除(引用保护，非级联)。
type SpecialRole struct {
	BaseModel
	Code     string   `json:"code" gorm:"size:100;index;comment:特殊角色编码"`               // 特殊角色编码
	Name     string   `json:"name" gorm:"size:100;comment:特殊角色名称"`                     // 特殊角色名称
	Platform Platform `json:"platform" gorm:"type:varchar(20);default:NONE;comment:所属平台"` // 所属平台
	RoleID   *string  `json:"role_id,omitempty" gorm:"type:char(36);index;comment:绑定角色ID"` // 绑定的角色ID，可为空

	// 关联关系
	Role *Role `json:"role,omitempty" gorm:"foreignKey:RoleID"` // 绑定的角色
}

// TableName 指定特殊角色表名
func (SpecialRole) TableName() string {
	return "auth_special_roles"
}
