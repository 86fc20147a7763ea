package auth

import (
	"context"
	"testing"

	"neoauth/internal/model"
	mysqlrepo "neoauth/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB 创建基于 sqlmock 的 gorm 连接
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock failed: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm failed: %v", err)
	}
	return db, mock
}

// expectRegistry 模拟权限注册表整表查询
func expectRegistry(mock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"id", "code", "name", "permissions", "platform", "sequence"}).
		AddRow("mod-orders", "orders", "订单", `["read","write","export"]`, "STORES", 1).
		AddRow("mod-staff", "staff", "员工", `["read","write"]`, "STORES", 2)
	mock.ExpectQuery("SELECT \\* FROM `auth_module_permissions`").WillReturnRows(rows)
}

func TestParseModulePermissions_Success(t *testing.T) {
	db, mock := newMockDB(t)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))
	expectRegistry(mock)

	links, err := linker.ParseModulePermissions(context.Background(), []model.ModulePermissionItem{
		{ModuleID: "mod-orders", Permissions: []string{"read", "export"}},
		{ModuleID: "mod-staff", Permissions: []string{"read"}},
	})

	assert.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, "mod-orders", links[0].ModuleID)
	assert.Equal(t, model.StringList{"read", "export"}, links[0].ActivePermissions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseModulePermissions_EmptyItems(t *testing.T) {
	db, _ := newMockDB(t)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))

	_, err := linker.ParseModulePermissions(context.Background(), nil)

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestParseModulePermissions_UnknownModule(t *testing.T) {
	db, mock := newMockDB(t)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))
	expectRegistry(mock)

	_, err := linker.ParseModulePermissions(context.Background(), []model.ModulePermissionItem{
		{ModuleID: "mod-missing", Permissions: []string{"read"}},
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
	assert.Contains(t, err.Error(), "mod-missing")
}

func TestParseModulePermissions_DuplicateModule(t *testing.T) {
	db, mock := newMockDB(t)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))
	expectRegistry(mock)

	_, err := linker.ParseModulePermissions(context.Background(), []model.ModulePermissionItem{
		{ModuleID: "mod-orders", Permissions: []string{"read"}},
		{ModuleID: "mod-orders", Permissions: []string{"write"}},
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
	assert.Contains(t, err.Error(), "appears more than once")
}

func TestParseModulePermissions_PermissionOutsideRegistry(t *testing.T) {
	db, mock := newMockDB(t)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))
	expectRegistry(mock)

	_, err := linker.ParseModulePermissions(context.Background(), []model.ModulePermissionItem{
		{ModuleID: "mod-staff", Permissions: []string{"read", "delete"}},
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
	assert.Contains(t, err.Error(), "delete")
	assert.Contains(t, err.Error(), "does NOT exist in module staff")

	var appErr *model.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Fields, 1)
	assert.Equal(t, "permissions", appErr.Fields[0].Property)
}
