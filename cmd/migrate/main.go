/*
*
  - 数据库迁移工具
  - @author: Sun977
  - @date: 2025.10.15
  - @description: 数据库模型迁移和基础数据初始化工具
  - @usage: go run main.go -env=test -seed=true -drop=true
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (test, dev, prod) (default "test")
    -seed
    是否填充基础数据 (default true)
    -verbose
    是否显示详细日志

示例:
main.exe -env=test -seed=true    # 测试环境迁移并填充数据
main.exe -env=prod -seed=false   # 生产环境仅迁移表结构
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"neoauth/internal/config"
	"neoauth/internal/model"
	"neoauth/internal/pkg/database"
	"neoauth/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	Environment string // 环境标识: test, dev, prod
	SeedData    bool   // 是否填充基础数据
	DropFirst   bool   // 是否先删除表（危险操作）
	Verbose     bool   // 是否显示详细日志
}

func main() {
	// 解析命令行参数
	opts := parseFlags()

	// 加载配置
	cfg, err := config.LoadConfig("", opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化日志管理器
	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":        "cmd/migrate/main.go",
		"operation":   "database_migration",
		"option":      "migrate.start",
		"func_name":   "main",
		"environment": opts.Environment,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	// 初始化数据库连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_connection",
			"option":    "database.NewMySQLConnection",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库连接失败")
	}

	// 执行迁移
	if err := performMigration(db, opts, logManager); err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_migration",
			"option":    "performMigration",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "database_migration",
		"option":    "migrate.complete",
		"func_name": "main",
	}).Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.Environment, "env", "test", "环境标识 (test, dev, prod)")
	flag.BoolVar(&opts.SeedData, "seed", true, "是否填充基础数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")
	flag.BoolVar(&opts.Verbose, "verbose", false, "是否显示详细日志")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "NeoAuth 数据库迁移工具\n\n")
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  %s -env=test -seed=true    # 测试环境迁移并填充数据\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -env=prod -seed=false   # 生产环境仅迁移表结构\n", os.Args[0])
	}

	flag.Parse()
	return opts
}

// performMigration 执行数据库迁移
func performMigration(db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	// 1. 删除表（如果指定）
	if opts.DropFirst {
		if err := dropTables(db, logManager); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	// 2. 执行模型迁移
	if err := migrateModels(db, logManager); err != nil {
		return fmt.Errorf("模型迁移失败: %w", err)
	}

	// 3. 填充基础数据（如果指定）
	if opts.SeedData {
		if err := seedBaseData(db, logManager); err != nil {
			return fmt.Errorf("数据填充失败: %w", err)
		}
	}

	return nil
}

// dropTables 删除所有表
// 危险操作，仅用于开发环境重置
func dropTables(db *gorm.DB, logManager *logger.LoggerManager) error {
	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "drop_tables",
		"option":    "dropTables",
		"func_name": "dropTables",
	}).Warn("开始删除数据库表")

	// 按依赖关系逆序：关联表先删除
	models := []interface{}{
		&model.RoleModule{},
		&model.SpecialRole{},
		&model.Role{},
		&model.ModulePermission{},
		&model.ModuleGroup{},
		&model.Otp{},
	}

	for _, m := range models {
		if err := db.Migrator().DropTable(m); err != nil {
			return err
		}
	}

	return nil
}

// migrateModels 执行模型迁移
func migrateModels(db *gorm.DB, logManager *logger.LoggerManager) error {
	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "migrate_models",
		"option":    "migrateModels",
		"func_name": "migrateModels",
	}).Info("开始迁移数据模型")

	// 主表先建，关联表后建
	return db.AutoMigrate(
		&model.ModuleGroup{},
		&model.ModulePermission{},
		&model.Role{},
		&model.RoleModule{},
		&model.SpecialRole{},
		&model.Otp{},
	)
}

// seedBaseData 填充基础数据
// 特殊角色槽位是系统内建数据，缺失时补齐，已存在时不覆盖
func seedBaseData(db *gorm.DB, logManager *logger.LoggerManager) error {
	specials := []model.SpecialRole{
		{Code: "super_admin", Name: "超级管理员", Platform: model.PlatformSuperadmin},
		{Code: "store_owner", Name: "商户管理员", Platform: model.PlatformStores},
		{Code: "cashier", Name: "收银员", Platform: model.PlatformStores},
	}

	for i := range specials {
		var count int64
		if err := db.Model(&model.SpecialRole{}).
			Where("code = ?", specials[i].Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&specials[i]).Error; err != nil {
			return err
		}
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "seed_base_data",
			"option":    "seedBaseData",
			"func_name": "seedBaseData",
			"code":      specials[i].Code,
		}).Info("特殊角色槽位已创建")
	}

	return nil
}
