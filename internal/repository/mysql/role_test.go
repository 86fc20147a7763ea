package mysql

import (
	"context"
	"testing"
	"time"

	"neoauth/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return db, mock
}

func TestGetRoleByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "platform", "status", "created_at", "updated_at"}).
		AddRow("role-1", "店长", "STORES", "active", time.Now(), time.Now())
	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").WillReturnRows(rows)

	role, err := repo.GetRoleByID(context.Background(), "role-1")
	assert.NoError(t, err)
	assert.Equal(t, "role-1", role.ID)
	assert.Equal(t, model.PlatformStores, role.Platform)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoleByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `auth_users_roles`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	role, err := repo.GetRoleByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, role)
}

func TestRoleExistsByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.RoleExistsByID(context.Background(), "role-1")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestSoftDeleteRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectExec("UPDATE `auth_users_roles`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDeleteRole(context.Background(), "role-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
