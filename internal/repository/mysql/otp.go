/*
 * 验证码仓库层:一次性验证码数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 * @note: 验证码以哈希形式落库，明文只出现在签发响应中
 */

package mysql

import (
	"context"
	"time"

	"neoauth/internal/model"
	"neoauth/internal/pkg/logger"

	"gorm.io/gorm"
)

// OtpRepository 验证码仓库结构体
type OtpRepository struct {
	db *gorm.DB // 数据库连接
}

// NewOtpRepository 创建验证码仓库实例
func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{
		db: db,
	}
}

// CreateOtp 创建验证码记录
func (r *OtpRepository) CreateOtp(ctx context.Context, otp *model.Otp) error {
	err := r.db.WithContext(ctx).Create(otp).Error
	if err != nil {
		logger.LogError(err, "", "", "", "otp_create", "POST", map[string]interface{}{
			"operation": "create_otp",
			"user_type": otp.UserType,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// GetLatestOtp 获取目标（手机号或邮箱）在指定场景下最新的未使用验证码
// issuedAfter 之前签发的验证码视为过期，不参与校验
func (r *OtpRepository) GetLatestOtp(ctx context.Context, phone, email, userType string, issuedAfter time.Time) (*model.Otp, error) {
	query := r.db.WithContext(ctx).Model(&model.Otp{}).
		Where("user_type = ? AND validated = ?", userType, false).
		Where("created_at > ?", issuedAfter)

	if phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if email != "" {
		query = query.Where("email = ?", email)
	}

	var otp model.Otp
	err := query.Order("created_at DESC").First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", "", "", "otp_get", "GET", map[string]interface{}{
			"operation": "get_latest_otp",
			"user_type": userType,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &otp, nil
}

// MarkOtpValidated 标记验证码为已使用
func (r *OtpRepository) MarkOtpValidated(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&model.Otp{}).
		Where("id = ?", id).
		Update("validated", true).Error
	if err != nil {
		logger.LogError(err, "", id, "", "otp_update", "PUT", map[string]interface{}{
			"operation": "mark_otp_validated",
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// InvalidatePendingOtps 作废目标在指定场景下所有未使用的验证码
// 重新签发时旧验证码立即失效
func (r *OtpRepository) InvalidatePendingOtps(ctx context.Context, phone, email, userType string) error {
	query := r.db.WithContext(ctx).Model(&model.Otp{}).
		Where("user_type = ? AND validated = ?", userType, false)

	if phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if email != "" {
		query = query.Where("email = ?", email)
	}

	err := query.Update("validated", true).Error
	if err != nil {
		logger.LogError(err, "", "", "", "otp_update", "PUT", map[string]interface{}{
			"operation": "invalidate_pending_otps",
			"user_type": userType,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}
