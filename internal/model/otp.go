/**
 * 模型:一次性验证码
 * @author: sun977
 * @date: 2025.12.21
 * @description: OTP数据模型,支撑登录/注册/重置密码/换绑手机等验证码流程
 * @func: Otp 结构体、OtpUserType 枚举及相关方法
 */
package model

// OtpUserType 验证码所属流程类型
type OtpUserType string

const (
	OtpUserTypeLoginPhone     OtpUserType = "login_phone"     // 手机号登录
	OtpUserTypeLoginEmail     OtpUserType = "login_email"     // 邮箱登录
	OtpUserTypeRegistration   OtpUserType = "registration"    // 注册
	OtpUserTypeForgetPassword OtpUserType = "forget_password" // 重置密码
	OtpUserTypePhoneChange    OtpUserType = "phone_change"    // 换绑手机
	OtpUserTypeCorporate      OtpUserType = "corporate"       // 企业入驻
)

// Otp 一次性验证码模型
// code_hash 存储 argon2id 哈希后的验证码，明文只出现在下发响应中。
// 同一目标+流程重新发码时，旧记录被软删除后新建。
type Otp struct {
	BaseModel
	Phone        string      `json:"phone,omitempty" gorm:"size:15;index;comment:手机号"`          // 手机号
	Email        string      `json:"email,omitempty" gorm:"size:255;index;comment:邮箱"`          // 邮箱
	ReferralCode string      `json:"referral_code,omitempty" gorm:"size:50;comment:推荐码"`        // 推荐码
	CodeHash     string      `json:"-" gorm:"size:255;comment:验证码哈希"`                           // 验证码 argon2id 哈希
	AppsID       string      `json:"apps_id,omitempty" gorm:"type:char(36);comment:应用ID"`       // 应用ID
	GroupID      string      `json:"group_id,omitempty" gorm:"type:char(36);comment:分组ID"`      // 分组ID
	UserType     OtpUserType `json:"user_type" gorm:"type:varchar(30);index;comment:流程类型"`      // 流程类型
	Validated    bool        `json:"validated" gorm:"default:false;comment:是否已通过校验"`            // 是否已通过校验
}

// TableName 指定OTP表名
func (Otp) TableName() string {
	return "auth_otp"
}

// Target 返回验证码的下发目标(手机号优先)
func (o *Otp) Target() string {
	if o.Phone != "" {
		return o.Phone
	}
	return o.Email
}
