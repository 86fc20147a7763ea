/**
 * 路由:系统管理路由
 * @author: sun977
 * @date: 2025.10.10
 * @description: 角色/权限模块/模块分组/特殊角色管理路由,需要JWT认证
 * @func:
 */

package router

import (
	"github.com/gin-gonic/gin"
)

// setupSystemRoutes 设置系统管理路由（需要 JWT 认证）
func (r *Router) setupSystemRoutes(v1 *gin.RouterGroup) {
	system := v1.Group("/system")
	system.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		// 角色管理
		roles := system.Group("/roles")
		{
			roles.POST("", r.roleHandler.CreateRole)
			roles.GET("", r.roleHandler.ListRoles)
			roles.GET("/:id", r.roleHandler.GetRole)
			roles.PUT("/:id", r.roleHandler.UpdateRole)
			roles.DELETE("/:id", r.roleHandler.DeleteRole)
		}

		// 权限模块管理
		modules := system.Group("/modules")
		{
			modules.POST("", r.moduleHandler.CreateModulePermission)
			modules.GET("", r.moduleHandler.ListModulePermissions)
			modules.GET("/:id", r.moduleHandler.GetModulePermission)
			modules.PUT("/:id", r.moduleHandler.UpdateModulePermission)
			modules.DELETE("/:id", r.moduleHandler.DeleteModulePermission)
		}

		// 模块分组管理
		groups := system.Group("/module-groups")
		{
			groups.POST("", r.groupHandler.CreateModuleGroup)
			groups.GET("", r.groupHandler.ListModuleGroups)
			groups.GET("/:id", r.groupHandler.GetModuleGroup)
			groups.PUT("/:id", r.groupHandler.UpdateModuleGroup)
			groups.DELETE("/:id", r.groupHandler.DeleteModuleGroup)
		}

		// 特殊角色管理
		specials := system.Group("/special-roles")
		{
			specials.GET("", r.specialHandler.ListSpecialRoles)
			specials.GET("/:id", r.specialHandler.GetSpecialRole)
			specials.PUT("/:id", r.specialHandler.UpdateSpecialRoleBinding)
		}
	}
}
