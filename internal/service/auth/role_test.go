package auth

import (
	"context"
	"testing"
	"time"

	"neoauth/internal/model"
	mysqlrepo "neoauth/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newRoleService(t *testing.T) (*RoleService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)

	roleRepo := mysqlrepo.NewRoleRepository(db)
	specialRepo := mysqlrepo.NewSpecialRoleRepository(db)
	linker := NewPermissionLinker(mysqlrepo.NewModulePermissionRepository(db))
	return NewRoleService(roleRepo, specialRepo, linker), mock
}

func TestCreateRole_InvalidPlatform(t *testing.T) {
	svc, _ := newRoleService(t)

	_, err := svc.CreateRole(context.Background(), &model.CreateRoleRequest{
		Name:     "店长",
		Platform: "MARS",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestCreateRole_DuplicateName(t *testing.T) {
	svc, mock := newRoleService(t)

	rows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-1", "店长", "STORES", "active")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(rows)

	_, err := svc.CreateRole(context.Background(), &model.CreateRoleRequest{
		Name:     "店长",
		Platform: "STORES",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindConflict))
}

func TestUpdateRoleByID_ReplacesLinksInTransaction(t *testing.T) {
	svc, mock := newRoleService(t)

	roleRows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-1", "店长", "STORES", "inactive")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(roleRows)

	// 重名检查，无冲突
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	expectRegistry(mock)

	// 同一事务内先整批删除旧关联再重建
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `auth_modules_modules_roles`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `auth_users_roles`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `auth_modules_modules_roles`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 更新后的明细回查
	detailRows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-1", "店长", "STORES", "active")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(detailRows)
	linkRows := sqlmock.NewRows([]string{"role_id", "module_id", "active_permissions"}).
		AddRow("role-1", "mod-orders", `["read"]`)
	mock.ExpectQuery("FROM `auth_modules_modules_roles`").WillReturnRows(linkRows)
	moduleRows := sqlmock.NewRows([]string{"id", "code", "name", "group_id", "permissions", "platform", "sequence"}).
		AddRow("mod-orders", "orders", "订单", nil, `["read","write","export"]`, "STORES", 1)
	mock.ExpectQuery("SELECT \\* FROM `auth_module_permissions`").WillReturnRows(moduleRows)
	mock.ExpectQuery("SELECT \\* FROM `auth_special_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := svc.UpdateRoleByID(context.Background(), "role-1", &model.UpdateRoleRequest{
		Status: "active",
		ModulePermissions: []model.ModulePermissionItem{
			{ModuleID: "mod-orders", Permissions: []string{"read"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "role-1", resp.ID)
	assert.Equal(t, model.RoleStatusActive, resp.Status)
	assert.Len(t, resp.ModulePermissions, 1)
	assert.Equal(t, model.StringList{"read"}, resp.ModulePermissions[0].Modules[0].ActivePermissions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRoles_ClampsPageAndKeepsTotal(t *testing.T) {
	svc, mock := newRoleService(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(37))
	// 页码非法时回落到第一页，不带 OFFSET
	mock.ExpectQuery("ORDER BY name ASC LIMIT \\?$").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("role-a").AddRow("role-b"))

	detailRows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-a", "仓管", "STORES", "active").
		AddRow("role-b", "店长", "STORES", "active")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(detailRows)
	mock.ExpectQuery("FROM `auth_modules_modules_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"role_id"}))
	mock.ExpectQuery("SELECT \\* FROM `auth_special_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := svc.ListRoles(context.Background(), &model.QueryFilter{Page: -3, Limit: 5})

	assert.NoError(t, err)
	assert.Equal(t, 1, list.CurrentPage)
	assert.Equal(t, 5, list.Limit)
	assert.Equal(t, int64(37), list.TotalItem)
	assert.Len(t, list.Items.([]*model.RoleDetailResponse), 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRole_NotFound(t *testing.T) {
	svc, mock := newRoleService(t)

	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.DeleteRole(context.Background(), "missing")
	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindNotFound))
}

func TestDeleteRole_BoundToSpecialRole(t *testing.T) {
	svc, mock := newRoleService(t)

	roleRows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-1", "超管", "SUPERADMIN", "active")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(roleRows)

	specialRows := sqlmock.NewRows([]string{"id", "code", "name", "platform", "role_id", "created_at"}).
		AddRow("sp-1", "super_admin", "超级管理员", "SUPERADMIN", "role-1", time.Now())
	mock.ExpectQuery("SELECT \\* FROM `auth_special_roles`").WillReturnRows(specialRows)

	err := svc.DeleteRole(context.Background(), "role-1")
	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindConflict))
	assert.Contains(t, err.Error(), "super_admin")
}

func TestDeleteRole_Success(t *testing.T) {
	svc, mock := newRoleService(t)

	roleRows := sqlmock.NewRows([]string{"id", "name", "platform", "status"}).
		AddRow("role-1", "店长", "STORES", "active")
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(roleRows)
	mock.ExpectQuery("SELECT \\* FROM `auth_special_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE `auth_users_roles`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.DeleteRole(context.Background(), "role-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
