/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.12.20
 * @description: API请求数据模型,包含各种业务操作的请求结构体
 * @func: 各种Request结构体定义
 */
package model

// ModulePermissionItem 角色请求中的模块权限项
// module_id 指向已登记的权限模块，permissions 为期望激活的权限子集
type ModulePermissionItem struct {
	ModuleID    string   `json:"module_id" binding:"required"`   // 模块ID，必填
	Permissions []string `json:"permissions" binding:"required"` // 期望激活的权限列表，必填
}

// CreateRoleRequest 创建角色请求结构
type CreateRoleRequest struct {
	Name              string                 `json:"name" binding:"required"`     // 角色名称，必填
	Platform          string                 `json:"platform" binding:"required"` // 所属平台，必填
	Status            string                 `json:"status"`                      // 角色状态，可选，缺省 inactive
	ModulePermissions []ModulePermissionItem `json:"module_permissions" binding:"required"` // 模块权限列表，必填
}

// UpdateRoleRequest 更新角色请求结构
// 角色更新采用整体替换语义：module_permissions 全量覆盖旧的关联
type UpdateRoleRequest struct {
	Name              string                 `json:"name"`               // 角色名称
	Platform          string                 `json:"platform"`           // 所属平台
	Status            string                 `json:"status"`             // 角色状态，缺省 inactive
	ModulePermissions []ModulePermissionItem `json:"module_permissions"` // 模块权限列表，全量替换
}

// CreateModulePermissionRequest 创建权限模块请求结构
type CreateModulePermissionRequest struct {
	GroupID     string   `json:"group_id"`                    // 所属分组ID，可选，未分组模块在响应中落入空分组
	Code        string   `json:"code"`                        // 模块编码，可选
	Name        string   `json:"name"`                        // 模块名称，可选
	Platform    string   `json:"platform" binding:"required"` // 所属平台，必填
	Sequence    int      `json:"sequence"`                    // 展示顺序，可选
	Permissions []string `json:"permissions"`                 // 可授予权限全集，可选
}

// UpdateModulePermissionRequest 更新权限模块请求结构
type UpdateModulePermissionRequest struct {
	GroupID     string   `json:"group_id"`    // 所属分组ID
	Code        string   `json:"code"`        // 模块编码
	Name        string   `json:"name"`        // 模块名称
	Platform    string   `json:"platform"`    // 所属平台
	Sequence    *int     `json:"sequence"`    // 展示顺序，指针区分零值与未设置
	Permissions []string `json:"permissions"` // 可授予权限全集
}

// CreateModuleGroupRequest 创建模块分组请求结构
type CreateModuleGroupRequest struct {
	Name     string `json:"name" binding:"required"`     // 分组名称，必填
	Platform string `json:"platform" binding:"required"` // 所属平台，必填
	Sequence int    `json:"sequence"`                    // 展示顺序，可选
}

// UpdateModuleGroupRequest 更新模块分组请求结构
type UpdateModuleGroupRequest struct {
	Name     string `json:"name"`     // 分组名称
	Platform string `json:"platform"` // 所属平台
	Sequence *int   `json:"sequence"` // 展示顺序，指针区分零值与未设置
}

// UpdateSpecialRoleRequest 更新特殊角色请求结构(绑定角色)
type UpdateSpecialRoleRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"` // 绑定的角色ID，必填
}

// QueryFilter 列表查询过滤条件
// page 为1起始页码；platform 缺省匹配全部平台(含NONE)；status 缺省匹配全部状态
type QueryFilter struct {
	Page     int    `form:"page"`     // 页码，1起始
	Limit    int    `form:"limit"`    // 每页数量
	Search   string `form:"search"`   // 名称子串匹配，大小写不敏感
	Status   string `form:"status"`   // 角色状态过滤
	Platform string `form:"platform"` // 平台过滤
}

// RequestOtpRequest 发送验证码请求结构
type RequestOtpRequest struct {
	Phone        string `json:"phone"`         // 手机号，与 email 二选一
	Email        string `json:"email"`         // 邮箱，与 phone 二选一
	Name         string `json:"name"`          // 用户名称，可选，透传给通知服务
	ReferralCode string `json:"referral_code"` // 推荐码，可选
	AppsID       string `json:"apps_id"`       // 应用ID，可选
	GroupID      string `json:"group_id"`      // 分组ID，可选
}

// ValidateOtpRequest 校验验证码请求结构
type ValidateOtpRequest struct {
	Phone   string `json:"phone"`                      // 手机号，与 email 二选一
	Email   string `json:"email"`                      // 邮箱，与 phone 二选一
	OtpCode string `json:"otp_code" binding:"required"` // 验证码，必填
}

// RefreshTokenRequest 刷新令牌请求结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌，必填
}
