// 验证码接口
package auth

import (
	"net/http"

	"neoauth/internal/model"
	authsvc "neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// OtpHandler 验证码接口处理器
type OtpHandler struct {
	otpService *authsvc.OtpService
}

// NewOtpHandler 创建验证码处理器实例
func NewOtpHandler(otpService *authsvc.OtpService) *OtpHandler {
	return &OtpHandler{
		otpService: otpService,
	}
}

// RequestOtp 发送验证码
// @Summary 发送验证码
// @Description 为指定流程签发验证码,重发时旧验证码立即作废,明文只出现在本响应中
// @Tags 验证码
// @Accept json
// @Produce json
// @Param user_type path string true "流程类型" Enums(login_phone,login_email,registration,forget_password,phone_change,corporate)
// @Param request body model.RequestOtpRequest true "发送验证码请求"
// @Success 201 {object} model.APIResponse{data=model.OtpResponse} "签发成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Router /api/v1/auth/otp/{user_type}/request [post]
func (h *OtpHandler) RequestOtp(c *gin.Context) {
	var req model.RequestOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	userType := model.OtpUserType(c.Param("user_type"))
	resp, err := h.otpService.IssueOtp(c.Request.Context(), userType, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, "otp issued", resp)
}

// ValidateOtp 校验验证码
// @Summary 校验验证码
// @Description 校验有效期窗口内最新的未使用验证码,校验通过后立即消费
// @Tags 验证码
// @Accept json
// @Produce json
// @Param user_type path string true "流程类型" Enums(login_phone,login_email,registration,forget_password,phone_change,corporate)
// @Param request body model.ValidateOtpRequest true "校验验证码请求"
// @Success 200 {object} model.APIResponse "校验成功"
// @Failure 400 {object} model.APIResponse "验证码无效或已过期"
// @Router /api/v1/auth/otp/{user_type}/validate [post]
func (h *OtpHandler) ValidateOtp(c *gin.Context) {
	var req model.ValidateOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	userType := model.OtpUserType(c.Param("user_type"))
	otp, err := h.otpService.ValidateOtp(c.Request.Context(), userType, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "otp validated", gin.H{
		"id":        otp.ID,
		"user_type": otp.UserType,
		"validated": otp.Validated,
	})
}
