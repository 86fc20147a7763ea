// 权限模块管理接口
package system

import (
	"net/http"

	"neoauth/internal/model"
	"neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// ModulePermissionHandler 权限模块管理处理器
type ModulePermissionHandler struct {
	moduleService *auth.ModulePermissionService
}

// NewModulePermissionHandler 创建权限模块管理处理器
func NewModulePermissionHandler(moduleService *auth.ModulePermissionService) *ModulePermissionHandler {
	return &ModulePermissionHandler{
		moduleService: moduleService,
	}
}

// CreateModulePermission 登记权限模块
// @Summary 登记权限模块
// @Description 登记权限模块及其可授予权限全集,编码平台内唯一
// @Tags 权限模块管理
// @Accept json
// @Produce json
// @Param request body model.CreateModulePermissionRequest true "创建权限模块请求"
// @Success 201 {object} model.APIResponse{data=model.ModulePermission} "创建成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 404 {object} model.APIResponse "所属分组不存在"
// @Failure 409 {object} model.APIResponse "模块编码冲突"
// @Router /api/v1/system/modules [post]
func (h *ModulePermissionHandler) CreateModulePermission(c *gin.Context) {
	var req model.CreateModulePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	module, err := h.moduleService.CreateModulePermission(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, "module permission created", module)
}

// GetModulePermission 获取权限模块详情
// @Summary 获取权限模块详情
// @Tags 权限模块管理
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} model.APIResponse{data=model.ModulePermission} "查询成功"
// @Failure 404 {object} model.APIResponse "模块不存在"
// @Router /api/v1/system/modules/{id} [get]
func (h *ModulePermissionHandler) GetModulePermission(c *gin.Context) {
	module, err := h.moduleService.GetModulePermissionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module permission retrieved", module)
}

// ListModulePermissions 获取权限模块列表
// @Summary 获取权限模块列表
// @Tags 权限模块管理
// @Produce json
// @Param page query int false "页码,1起始"
// @Param limit query int false "每页数量"
// @Param search query string false "名称或编码子串匹配"
// @Param platform query string false "平台过滤"
// @Success 200 {object} model.APIResponse{data=model.PaginatedList} "查询成功"
// @Router /api/v1/system/modules [get]
func (h *ModulePermissionHandler) ListModulePermissions(c *gin.Context) {
	var filter model.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.moduleService.ListModulePermissions(c.Request.Context(), &filter)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module permissions retrieved", resp)
}

// UpdateModulePermission 更新权限模块
// @Summary 更新权限模块
// @Description 更新模块属性与权限全集,缩减全集不级联收缩既有角色
// @Tags 权限模块管理
// @Accept json
// @Produce json
// @Param id path string true "模块ID"
// @Param request body model.UpdateModulePermissionRequest true "更新权限模块请求"
// @Success 200 {object} model.APIResponse{data=model.ModulePermission} "更新成功"
// @Failure 404 {object} model.APIResponse "模块不存在"
// @Failure 409 {object} model.APIResponse "模块编码冲突"
// @Router /api/v1/system/modules/{id} [put]
func (h *ModulePermissionHandler) UpdateModulePermission(c *gin.Context) {
	var req model.UpdateModulePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	module, err := h.moduleService.UpdateModulePermissionByID(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module permission updated", module)
}

// DeleteModulePermission 删除权限模块
// @Summary 删除权限模块
// @Description 软删除权限模块,仍被角色引用的模块拒绝删除
// @Tags 权限模块管理
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} model.APIResponse "删除成功"
// @Failure 404 {object} model.APIResponse "模块不存在"
// @Failure 409 {object} model.APIResponse "模块仍被角色引用"
// @Router /api/v1/system/modules/{id} [delete]
func (h *ModulePermissionHandler) DeleteModulePermission(c *gin.Context) {
	if err := h.moduleService.DeleteModulePermission(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module permission deleted", nil)
}
