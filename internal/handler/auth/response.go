// 认证接口公共响应辅助
package auth

import (
	"net/http"

	"neoauth/internal/model"

	"github.com/gin-gonic/gin"
)

// writeSuccess 写入成功响应
func writeSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, model.APIResponse{
		Code:    statusCode,
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// writeError 写入错误响应
func writeError(c *gin.Context, err error) {
	appErr := model.AsAppError(err)
	c.JSON(appErr.HTTPStatus(), model.APIResponse{
		Code:    appErr.HTTPStatus(),
		Status:  "error",
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// writeBindError 写入请求体解析错误响应
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.APIResponse{
		Code:    http.StatusBadRequest,
		Status:  "error",
		Message: "invalid request body: " + err.Error(),
	})
}
