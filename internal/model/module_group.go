/**
 * 模型:权限模块分组
 * @author: sun977
 * @date: 2025.12.20
 * @description: 权限模块分组模型,按平台组织权限模块并定义展示顺序
 * @func: ModuleGroup 结构体及相关方法
 */
package model

// ModuleGroup 权限模块分组模型
// 一个分组下挂多个权限模块(一对多)，sequence 决定同平台内的稳定展示顺序
type ModuleGroup struct {
	BaseModel
	Name     string   `json:"name" gorm:"size:100;comment:分组名称"`                       // 分组名称
	Platform Platform `json:"platform" gorm:"type:varchar(20);default:NONE;comment:所属平台"` // 所属平台
	Sequence int      `json:"sequence" gorm:"comment:展示顺序"`                            // 展示顺序，平台内升序排列

	// 关联关系
	Modules []ModulePermission `json:"modules,omitempty" gorm:"foreignKey:GroupID"` // 分组下的权限模块
}

// TableName 指定模块分组表名
func (ModuleGroup) TableName() string {
	return "auth_module_groups"
}
