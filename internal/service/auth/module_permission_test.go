package auth

import (
	"context"
	"testing"

	"neoauth/internal/model"
	mysqlrepo "neoauth/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newModulePermissionService(t *testing.T) (*ModulePermissionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)

	moduleRepo := mysqlrepo.NewModulePermissionRepository(db)
	groupRepo := mysqlrepo.NewModuleGroupRepository(db)
	return NewModulePermissionService(moduleRepo, groupRepo), mock
}

func TestCreateModulePermission_WithoutGroup(t *testing.T) {
	svc, mock := newModulePermissionService(t)

	// 未指定分组时跳过分组存在性检查，直接查重并落库
	mock.ExpectQuery("SELECT \\* FROM `auth_module_permissions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `auth_module_permissions`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	module, err := svc.CreateModulePermission(context.Background(), &model.CreateModulePermissionRequest{
		Code:        "orders",
		Name:        "订单",
		Platform:    "STORES",
		Permissions: []string{"read", "write"},
	})

	assert.NoError(t, err)
	assert.Nil(t, module.GroupID)
	assert.Equal(t, "orders", module.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateModulePermission_UnknownGroup(t *testing.T) {
	svc, mock := newModulePermissionService(t)

	mock.ExpectQuery("SELECT \\* FROM `auth_module_groups`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateModulePermission(context.Background(), &model.CreateModulePermissionRequest{
		GroupID:  "group-missing",
		Code:     "orders",
		Platform: "STORES",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindNotFound))
}

func TestCreateModulePermission_DuplicateCode(t *testing.T) {
	svc, mock := newModulePermissionService(t)

	rows := sqlmock.NewRows([]string{"id", "code", "platform"}).
		AddRow("mod-1", "orders", "STORES")
	mock.ExpectQuery("SELECT \\* FROM `auth_module_permissions`").WillReturnRows(rows)

	_, err := svc.CreateModulePermission(context.Background(), &model.CreateModulePermissionRequest{
		Code:     "orders",
		Platform: "STORES",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindConflict))
}
