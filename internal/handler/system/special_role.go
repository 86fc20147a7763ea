// 特殊角色管理接口
package system

import (
	"net/http"

	"neoauth/internal/model"
	"neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// SpecialRoleHandler 特殊角色管理处理器
type SpecialRoleHandler struct {
	specialService *auth.SpecialRoleService
}

// NewSpecialRoleHandler 创建特殊角色管理处理器
func NewSpecialRoleHandler(specialService *auth.SpecialRoleService) *SpecialRoleHandler {
	return &SpecialRoleHandler{
		specialService: specialService,
	}
}

// ListSpecialRoles 获取特殊角色列表
// @Summary 获取特殊角色列表
// @Description 返回全部系统预置的特殊角色槽位及其绑定的角色
// @Tags 特殊角色管理
// @Produce json
// @Success 200 {object} model.APIResponse{data=[]model.SpecialRole} "查询成功"
// @Router /api/v1/system/special-roles [get]
func (h *SpecialRoleHandler) ListSpecialRoles(c *gin.Context) {
	specials, err := h.specialService.ListSpecialRoles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "special roles retrieved", specials)
}

// GetSpecialRole 获取特殊角色详情
// @Summary 获取特殊角色详情
// @Tags 特殊角色管理
// @Produce json
// @Param id path string true "特殊角色ID"
// @Success 200 {object} model.APIResponse{data=model.SpecialRole} "查询成功"
// @Failure 404 {object} model.APIResponse "特殊角色不存在"
// @Router /api/v1/system/special-roles/{id} [get]
func (h *SpecialRoleHandler) GetSpecialRole(c *gin.Context) {
	special, err := h.specialService.GetSpecialRoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "special role retrieved", special)
}

// UpdateSpecialRoleBinding 更新特殊角色绑定
// @Summary 更新特殊角色绑定
// @Description 将特殊角色槽位重绑定到指定角色,目标角色必须存在
// @Tags 特殊角色管理
// @Accept json
// @Produce json
// @Param id path string true "特殊角色ID"
// @Param request body model.UpdateSpecialRoleRequest true "绑定请求"
// @Success 200 {object} model.APIResponse{data=model.SpecialRole} "绑定成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 404 {object} model.APIResponse "特殊角色或目标角色不存在"
// @Router /api/v1/system/special-roles/{id} [put]
func (h *SpecialRoleHandler) UpdateSpecialRoleBinding(c *gin.Context) {
	var req model.UpdateSpecialRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	special, err := h.specialService.UpdateSpecialRoleBinding(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "special role binding updated", special)
}
