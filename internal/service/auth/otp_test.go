package auth

import (
	"context"
	"testing"
	"time"

	"neoauth/internal/config"
	"neoauth/internal/model"
	pkgauth "neoauth/internal/pkg/auth"
	mysqlrepo "neoauth/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// newOtpService 创建基于 sqlmock 的验证码服务
func newOtpService(t *testing.T) (*OtpService, sqlmock.Sqlmock, *pkgauth.PasswordManager) {
	t.Helper()
	db, mock := newMockDB(t)

	pm := pkgauth.NewPasswordManager(nil)
	cfg := &config.OtpConfig{
		CodeLength:   4,
		ExpireWindow: 5 * time.Minute,
	}
	svc := NewOtpService(mysqlrepo.NewOtpRepository(db), pm, cfg)
	return svc, mock, pm
}

func TestIssueOtp_PhoneFlow(t *testing.T) {
	svc, mock, _ := newOtpService(t)

	// 旧验证码作废 + 新验证码落库
	mock.ExpectExec("UPDATE `auth_otp`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `auth_otp`").WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.IssueOtp(context.Background(), model.OtpUserTypeLoginPhone, &model.RequestOtpRequest{
		Phone: "13800138000",
	})

	assert.NoError(t, err)
	assert.Equal(t, "13800138000", resp.Phone)
	assert.Len(t, resp.OtpCode, 4)
	assert.Equal(t, int64(300), resp.ExpiresIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueOtp_PhoneFlowRequiresPhone(t *testing.T) {
	svc, _, _ := newOtpService(t)

	_, err := svc.IssueOtp(context.Background(), model.OtpUserTypeLoginPhone, &model.RequestOtpRequest{
		Email: "someone@example.com",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestIssueOtp_EmailFlowRequiresEmail(t *testing.T) {
	svc, _, _ := newOtpService(t)

	_, err := svc.IssueOtp(context.Background(), model.OtpUserTypeForgetPassword, &model.RequestOtpRequest{
		Phone: "13800138000",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestIssueOtp_UnknownUserType(t *testing.T) {
	svc, _, _ := newOtpService(t)

	_, err := svc.IssueOtp(context.Background(), model.OtpUserType("unknown"), &model.RequestOtpRequest{
		Phone: "13800138000",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestValidateOtp_Success(t *testing.T) {
	svc, mock, pm := newOtpService(t)

	codeHash, err := pm.HashPassword("4321")
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "phone", "code_hash", "user_type", "validated", "created_at"}).
		AddRow("otp-1", "13800138000", codeHash, "login_phone", false, time.Now())
	mock.ExpectQuery("SELECT \\* FROM `auth_otp`").WillReturnRows(rows)
	mock.ExpectExec("UPDATE `auth_otp`").WillReturnResult(sqlmock.NewResult(0, 1))

	otp, err := svc.ValidateOtp(context.Background(), model.OtpUserTypeLoginPhone, &model.ValidateOtpRequest{
		Phone:   "13800138000",
		OtpCode: "4321",
	})

	assert.NoError(t, err)
	assert.Equal(t, "otp-1", otp.ID)
	assert.True(t, otp.Validated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOtp_WrongCode(t *testing.T) {
	svc, mock, pm := newOtpService(t)

	codeHash, err := pm.HashPassword("4321")
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "phone", "code_hash", "user_type", "validated", "created_at"}).
		AddRow("otp-1", "13800138000", codeHash, "login_phone", false, time.Now())
	mock.ExpectQuery("SELECT \\* FROM `auth_otp`").WillReturnRows(rows)

	_, err = svc.ValidateOtp(context.Background(), model.OtpUserTypeLoginPhone, &model.ValidateOtpRequest{
		Phone:   "13800138000",
		OtpCode: "0000",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestValidateOtp_NoPendingCode(t *testing.T) {
	svc, mock, _ := newOtpService(t)

	mock.ExpectQuery("SELECT \\* FROM `auth_otp`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.ValidateOtp(context.Background(), model.OtpUserTypeLoginPhone, &model.ValidateOtpRequest{
		Phone:   "13800138000",
		OtpCode: "1234",
	})

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}
