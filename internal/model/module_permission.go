/**
 * 模型:权限模块
 * @author: sun977
 * @date: 2025.12.20
 * @description: 权限模块模型,登记每个模块可授予的权限全集(权限注册表)
 * @func: ModulePermission 结构体及相关方法
 */
package model

// ModulePermission 权限模块模型
// permissions 字段是该模块可授予权限字符串的权威全集，
// 角色关联时的 active_permissions 必须是它的子集(由业务层校验)
type ModulePermission struct {
	BaseModel
	Code        string   `json:"code" gorm:"size:100;index:idx_module_code_platform;comment:模块编码"`             // 模块编码，(code, platform) 组合唯一
	Name        string   `json:"name" gorm:"size:100;comment:模块名称"`                                            // 模块名称
	GroupID     *string  `json:"group_id,omitempty" gorm:"type:char(36);index;comment:所属分组ID"`                  // 所属分组，创建时可为空
	Permissions StringList `json:"permissions" gorm:"type:json;serializer:json;comment:可授予权限全集"`               // 可授予权限全集
	Platform    Platform `json:"platform" gorm:"type:varchar(20);default:NONE;index:idx_module_code_platform;comment:所属平台"` // 所属平台
	Sequence    int      `json:"sequence" gorm:"comment:展示顺序"`                                                 // 展示顺序

	// 关联关系
	Group *ModuleGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`  // 所属分组
	Roles []RoleModule `json:"roles,omitempty" gorm:"foreignKey:ModuleID"` // 引用此模块的角色关联
}

// TableName 指定权限模块表名
func (ModulePermission) TableName() string {
	return "auth_module_permissions"
}

// StringList 字符串集合,序列化为JSON数组存储
type StringList []string

// Contains 检查集合中是否包含指定权限字符串
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Outer 计算 other 相对于 l 的差集(other 中不属于 l 的元素)
// 用于权限交集校验：返回非空即存在未登记的权限
func (l StringList) Outer(other []string) []string {
	var outer []string
	for _, v := range other {
		if !l.Contains(v) {
			outer = append(outer, v)
		}
	}
	return outer
}
