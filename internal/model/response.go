/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.12.20
 * @description: API响应数据模型,包含角色详情树、分页列表等响应结构体
 * @func: 各种Response结构体定义
 */
package model

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int          `json:"code,omitempty"`   // 响应状态码，可选
	Status  string       `json:"status"`           // 响应状态："success" 或 "error"
	Message string       `json:"message"`          // 响应消息
	Data    interface{}  `json:"data,omitempty"`   // 响应数据，可选
	Errors  []FieldError `json:"errors,omitempty"` // 字段级错误列表，可选
}

// PaginatedList 分页列表响应结构
// 与前端约定的 current_page/total_item/limit/items 四字段契约
type PaginatedList struct {
	CurrentPage int         `json:"current_page"` // 当前页码，1起始
	TotalItem   int64       `json:"total_item"`   // 匹配总条数
	Limit       int         `json:"limit"`        // 每页数量
	Items       interface{} `json:"items"`        // 当前页数据
}

// ModuleItemResponse 角色详情树中的模块节点
// 同时携带模块登记的权限全集与角色实际激活的权限子集
type ModuleItemResponse struct {
	ID                string     `json:"id"`                 // 模块ID
	Code              string     `json:"code"`               // 模块编码
	Name              string     `json:"name"`               // 模块名称
	GroupID           *string    `json:"group_id"`           // 所属分组ID
	Platform          Platform   `json:"platform"`           // 所属平台
	Sequence          int        `json:"sequence"`           // 展示顺序
	Permissions       StringList `json:"permissions"`        // 模块登记的权限全集
	ActivePermissions StringList `json:"active_permissions"` // 角色激活的权限子集
}

// ModuleGroupResponse 角色详情树中的分组节点
type ModuleGroupResponse struct {
	ID       string               `json:"id"`       // 分组ID
	Name     string               `json:"name"`     // 分组名称
	Platform Platform             `json:"platform"` // 所属平台
	Sequence int                  `json:"sequence"` // 展示顺序
	Modules  []ModuleItemResponse `json:"modules"`  // 分组下的模块列表
}

// SpecialRoleResponse 角色详情中附带的特殊角色(剥离时间戳字段)
type SpecialRoleResponse struct {
	ID       string   `json:"id"`                // 特殊角色ID
	Code     string   `json:"code"`              // 特殊角色编码
	Name     string   `json:"name"`              // 特殊角色名称
	Platform Platform `json:"platform"`          // 所属平台
	RoleID   *string  `json:"role_id,omitempty"` // 绑定的角色ID
}

// RoleDetailResponse 角色详情响应
// 将扁平的关联查询结果重组为 分组 -> 模块 的嵌套树
type RoleDetailResponse struct {
	ID                string                `json:"id"`                     // 角色ID
	Name              string                `json:"name"`                   // 角色名称
	Platform          Platform              `json:"platform"`               // 所属平台
	Status            RoleStatus            `json:"status"`                 // 角色状态
	ModulePermissions []ModuleGroupResponse `json:"module_permissions"`     // 嵌套的分组权限树
	SpecialRole       *SpecialRoleResponse  `json:"special_role,omitempty"` // 绑定的特殊角色
}

// OtpResponse 验证码下发响应
// otp_code 明文仅在此响应中出现，供通知协作服务下发
type OtpResponse struct {
	ID        string      `json:"id"`              // 验证码记录ID
	Phone     string      `json:"phone,omitempty"` // 手机号
	Email     string      `json:"email,omitempty"` // 邮箱
	OtpCode   string      `json:"otp_code"`        // 验证码明文
	UserType  OtpUserType `json:"user_type"`       // 流程类型
	ExpiresIn int64       `json:"expires_in"`      // 有效期(秒)
}

// TokenPairResponse 令牌对响应
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`  // 访问令牌
	RefreshToken string `json:"refresh_token"` // 刷新令牌
	ExpiresIn    int64  `json:"expires_in"`    // 访问令牌有效期(秒)
	TokenType    string `json:"token_type"`    // 令牌类型，固定 Bearer
}
