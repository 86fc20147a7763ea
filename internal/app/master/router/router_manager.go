/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2025.10.10
 * @description: 路由管理器，包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"neoauth/internal/app/master/middleware"
	"neoauth/internal/config"
	authHandler "neoauth/internal/handler/auth"
	systemHandler "neoauth/internal/handler/system"
	authPkg "neoauth/internal/pkg/auth"
	"neoauth/internal/pkg/logger"
	redisRepo "neoauth/internal/repo/redis"
	mysqlRepo "neoauth/internal/repository/mysql"
	authService "neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	roleHandler       *systemHandler.RoleHandler
	moduleHandler     *systemHandler.ModulePermissionHandler
	groupHandler      *systemHandler.ModuleGroupHandler
	specialHandler    *systemHandler.SpecialRoleHandler
	otpHandler        *authHandler.OtpHandler
	tokenHandler      *authHandler.TokenHandler
}

// NewRouter 创建路由管理器实例
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	jwtCfg := &cfg.Security.JWT
	securityConfig := &cfg.Security

	// 初始化工具包
	jwtManager := authPkg.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessTokenExpire, jwtCfg.RefreshTokenExpire)
	passwordManager := authPkg.NewPasswordManager(authPkg.DefaultPasswordConfig)

	// 初始化仓库层
	roleRepo := mysqlRepo.NewRoleRepository(db)
	moduleRepo := mysqlRepo.NewModulePermissionRepository(db)
	groupRepo := mysqlRepo.NewModuleGroupRepository(db)
	specialRepo := mysqlRepo.NewSpecialRoleRepository(db)
	otpRepo := mysqlRepo.NewOtpRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// 初始化服务层(控制器是服务集合,先初始化服务,然后服务装填成控制器)
	linker := authService.NewPermissionLinker(moduleRepo)
	roleService := authService.NewRoleService(roleRepo, specialRepo, linker)
	moduleService := authService.NewModulePermissionService(moduleRepo, groupRepo)
	groupService := authService.NewModuleGroupService(groupRepo)
	specialService := authService.NewSpecialRoleService(specialRepo, roleRepo)
	otpService := authService.NewOtpService(otpRepo, passwordManager, &cfg.Otp)
	tokenService := authService.NewTokenService(jwtManager, tokenRepo, jwtCfg)

	// 初始化中间件管理器
	middlewareManager := middleware.NewMiddlewareManager(tokenService, securityConfig)

	// 初始化处理器
	roleHandler := systemHandler.NewRoleHandler(roleService)
	moduleHandler := systemHandler.NewModulePermissionHandler(moduleService)
	groupHandler := systemHandler.NewModuleGroupHandler(groupService)
	specialHandler := systemHandler.NewSpecialRoleHandler(specialService)
	otpHandler := authHandler.NewOtpHandler(otpService)
	tokenHandler := authHandler.NewTokenHandler(tokenService)

	// 创建Gin引擎
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	return &Router{
		config:            cfg,
		engine:            engine,
		middlewareManager: middlewareManager,
		roleHandler:       roleHandler,
		moduleHandler:     moduleHandler,
		groupHandler:      groupHandler,
		specialHandler:    specialHandler,
		otpHandler:        otpHandler,
		tokenHandler:      tokenHandler,
	}
}

// SetupRoutes 设置全局中间件和路由
func (r *Router) SetupRoutes() {
	// 1) 先注册全局中间件；2) 再注册各模块路由。
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// registerGlobalMiddleware 注册全局中间件
// 将全局中间件的挂载集中在一个方法中，便于统一管理与测试
func (r *Router) registerGlobalMiddleware() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("开始注册全局中间件")

	// 系统恢复中间件，防止 panic 直接导致进程崩溃
	r.engine.Use(gin.Recovery())

	if r.middlewareManager != nil {
		// 请求ID中间件
		r.engine.Use(r.middlewareManager.GinRequestIDMiddleware())
		// CORS 中间件
		r.engine.Use(r.middlewareManager.GinCORSMiddleware())
		// 安全响应头中间件
		r.engine.Use(r.middlewareManager.GinSecurityHeadersMiddleware())
		// 统一日志中间件
		r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
		// 限流中间件
		r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())
	}

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("全局中间件注册完成")
}

// registerRoutes 注册路由
// 将中间件注册和各模块路由注册分离，提升可维护性与可测试性
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	// API 版本路由组：/api/v1
	api := r.engine.Group("/api")
	v1 := api.Group("/v1")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(v1)
	// 系统管理路由（需要 JWT 认证）
	r.setupSystemRoutes(v1)
	// 健康检查路由
	r.setupHealthRoutes(api)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("路由注册完成")
}
