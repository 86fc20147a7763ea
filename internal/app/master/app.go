/*
 * @author: sun977
 * @date: 2025.09.05
 * @description: 应用程序装配
 * @func: 加载配置、初始化日志/数据库/Redis、装配路由
 */
package master

import (
	"fmt"

	"neoauth/internal/app/master/router"
	"neoauth/internal/config"
	"neoauth/internal/pkg/database"
	"neoauth/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config      *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	router      *router.Router
}

// NewApp 创建新的应用程序实例
// 初始化顺序: 配置 -> 日志 -> MySQL -> Redis -> 路由
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}

	redisClient, err := database.NewRedisConnection(&cfg.Database.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	r := router.NewRouter(db, redisClient, cfg)
	r.SetupRoutes()

	logger.LogSystemEvent("app", "startup", "application initialized", logrus.InfoLevel, map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	return &App{
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		router:      r,
	}, nil
}

// GetConfig 获取配置实例
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// Close 释放应用持有的资源
func (a *App) Close() error {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			return err
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
