/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 验证码业务逻辑
 * @func:
 * 1.签发验证码(重发作废旧码,明文只出现在签发响应)
 * 2.校验验证码(有效期窗口内最新一条,一次性消费)
 */

package auth

import (
	"context"
	"time"

	"neoauth/internal/config"
	"neoauth/internal/model"
	"neoauth/internal/pkg/auth"
	"neoauth/internal/pkg/logger"
	"neoauth/internal/pkg/utils"
	mysqlrepo "neoauth/internal/repository/mysql"
)

// OtpService 验证码服务
type OtpService struct {
	otpRepo         *mysqlrepo.OtpRepository // 验证码数据仓库
	passwordManager *auth.PasswordManager    // 密码哈希管理器，验证码哈希同样使用argon2id
	cfg             *config.OtpConfig        // 验证码配置
}

// NewOtpService 创建验证码服务实例
func NewOtpService(otpRepo *mysqlrepo.OtpRepository, passwordManager *auth.PasswordManager, cfg *config.OtpConfig) *OtpService {
	return &OtpService{
		otpRepo:         otpRepo,
		passwordManager: passwordManager,
		cfg:             cfg,
	}
}

// phoneUserTypes 必须携带手机号的流程
var phoneUserTypes = map[model.OtpUserType]bool{
	model.OtpUserTypeLoginPhone:   true,
	model.OtpUserTypeRegistration: true,
	model.OtpUserTypePhoneChange:  true,
}

// emailUserTypes 必须携带邮箱的流程
var emailUserTypes = map[model.OtpUserType]bool{
	model.OtpUserTypeLoginEmail:     true,
	model.OtpUserTypeForgetPassword: true,
	model.OtpUserTypeCorporate:      true,
}

// validateTarget 校验流程类型与下发目标是否匹配
func validateTarget(userType model.OtpUserType, phone, email string) error {
	switch {
	case phoneUserTypes[userType]:
		if phone == "" {
			return model.NewValidationError("phone", "", "phone must not be empty for user type "+string(userType))
		}
	case emailUserTypes[userType]:
		if email == "" {
			return model.NewValidationError("email", "", "email must not be empty for user type "+string(userType))
		}
	default:
		return model.NewValidationError("user_type", string(userType), "user_type is not a valid enum value")
	}
	return nil
}

// IssueOtp 签发验证码
// 同一目标+流程重新发码时旧验证码立即作废，返回的明文只在本次响应中出现
func (s *OtpService) IssueOtp(ctx context.Context, userType model.OtpUserType, req *model.RequestOtpRequest) (*model.OtpResponse, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil {
		return nil, model.NewValidationError("request", "", "otp request must not be empty")
	}
	if err := validateTarget(userType, req.Phone, req.Email); err != nil {
		return nil, err
	}

	// 旧的未使用验证码立即作废
	if err := s.otpRepo.InvalidatePendingOtps(ctx, req.Phone, req.Email, string(userType)); err != nil {
		return nil, model.NewStorageError(err)
	}

	code, err := auth.GenerateNumericCode(s.cfg.CodeLength)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	codeHash, err := s.passwordManager.HashPassword(code)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	otp := &model.Otp{
		Phone:        req.Phone,
		Email:        req.Email,
		ReferralCode: req.ReferralCode,
		CodeHash:     codeHash,
		AppsID:       req.AppsID,
		GroupID:      req.GroupID,
		UserType:     userType,
		Validated:    false,
	}
	if err := s.otpRepo.CreateOtp(ctx, otp); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("issue_otp", "", "", clientIP, "", "success", "otp issued", map[string]interface{}{
		"otp_id":    otp.ID,
		"user_type": userType,
		"target":    otp.Target(),
	})

	return &model.OtpResponse{
		ID:        otp.ID,
		Phone:     otp.Phone,
		Email:     otp.Email,
		OtpCode:   code,
		UserType:  userType,
		ExpiresIn: int64(s.cfg.ExpireWindow.Seconds()),
	}, nil
}

// ValidateOtp 校验验证码
// 只认有效期窗口内最新一条未使用的验证码，校验通过后立即消费
func (s *OtpService) ValidateOtp(ctx context.Context, userType model.OtpUserType, req *model.ValidateOtpRequest) (*model.Otp, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	if req == nil || req.OtpCode == "" {
		return nil, model.NewValidationError("otp_code", "", "otp_code must not be empty")
	}
	if err := validateTarget(userType, req.Phone, req.Email); err != nil {
		return nil, err
	}

	issuedAfter := time.Now().Add(-s.cfg.ExpireWindow)
	otp, err := s.otpRepo.GetLatestOtp(ctx, req.Phone, req.Email, string(userType), issuedAfter)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if otp == nil {
		return nil, model.NewValidationError("otp_code", "", "otp code is invalid or expired")
	}

	match, err := s.passwordManager.VerifyPassword(req.OtpCode, otp.CodeHash)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if !match {
		logger.LogBusinessOperation("validate_otp", "", "", clientIP, "", "failed", "otp code mismatch", map[string]interface{}{
			"otp_id":    otp.ID,
			"user_type": userType,
		})
		return nil, model.NewValidationError("otp_code", "", "otp code is invalid or expired")
	}

	if err := s.otpRepo.MarkOtpValidated(ctx, otp.ID); err != nil {
		return nil, model.NewStorageError(err)
	}
	otp.Validated = true

	logger.LogBusinessOperation("validate_otp", "", "", clientIP, "", "success", "otp validated", map[string]interface{}{
		"otp_id":    otp.ID,
		"user_type": userType,
		"target":    otp.Target(),
	})

	return otp, nil
}
