/**
 * 模型:平台与状态枚举
 * @author: sun977
 * @date: 2025.12.20
 * @description: 平台租户标识与角色状态枚举定义
 * @func: Platform/RoleStatus 枚举及解析方法
 */
package model

// Platform 平台标识枚举
// 用于区分角色与权限所属的应用面(租户)
type Platform string

const (
	PlatformNone       Platform = "NONE"       // 未指定平台
	PlatformSuperadmin Platform = "SUPERADMIN" // 超级管理后台
	PlatformStores     Platform = "STORES"     // 商户端
	PlatformCustomer   Platform = "CUSTOMER"   // 用户端
)

// ValidPlatforms 所有可分配的平台值(不含NONE)
var ValidPlatforms = []Platform{PlatformSuperadmin, PlatformStores, PlatformCustomer}

// ParsePlatform 解析平台字符串
// 空字符串返回 (PlatformNone, false) 表示"不过滤"，非法值返回 (PlatformNone, false)
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformSuperadmin, PlatformStores, PlatformCustomer, PlatformNone:
		if s == "" {
			return PlatformNone, false
		}
		return Platform(s), true
	default:
		return PlatformNone, false
	}
}

// IsAssignable 检查平台值是否可用于角色/权限分配
func (p Platform) IsAssignable() bool {
	for _, v := range ValidPlatforms {
		if p == v {
			return true
		}
	}
	return false
}

// RoleStatus 角色状态枚举
type RoleStatus string

const (
	RoleStatusActive   RoleStatus = "active"   // 启用状态
	RoleStatusInactive RoleStatus = "inactive" // 禁用状态,创建时的默认值
)

// ParseRoleStatus 解析角色状态字符串
func ParseRoleStatus(s string) (RoleStatus, bool) {
	switch RoleStatus(s) {
	case RoleStatusActive, RoleStatusInactive:
		return RoleStatus(s), true
	default:
		return "", false
	}
}

// AllRoleStatuses 状态过滤缺省时使用的全量状态集合
var AllRoleStatuses = []RoleStatus{RoleStatusActive, RoleStatusInactive}
