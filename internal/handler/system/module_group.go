// 模块分组管理接口
package system

import (
	"net/http"

	"neoauth/internal/model"
	"neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// ModuleGroupHandler 模块分组管理处理器
type ModuleGroupHandler struct {
	groupService *auth.ModuleGroupService
}

// NewModuleGroupHandler 创建模块分组管理处理器
func NewModuleGroupHandler(groupService *auth.ModuleGroupService) *ModuleGroupHandler {
	return &ModuleGroupHandler{
		groupService: groupService,
	}
}

// CreateModuleGroup 创建模块分组
// @Summary 创建模块分组
// @Description 创建模块分组,名称平台内唯一
// @Tags 模块分组管理
// @Accept json
// @Produce json
// @Param request body model.CreateModuleGroupRequest true "创建分组请求"
// @Success 201 {object} model.APIResponse{data=model.ModuleGroup} "创建成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 409 {object} model.APIResponse "分组名称冲突"
// @Router /api/v1/system/module-groups [post]
func (h *ModuleGroupHandler) CreateModuleGroup(c *gin.Context) {
	var req model.CreateModuleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	group, err := h.groupService.CreateModuleGroup(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, "module group created", group)
}

// GetModuleGroup 获取模块分组详情
// @Summary 获取模块分组详情
// @Tags 模块分组管理
// @Produce json
// @Param id path string true "分组ID"
// @Success 200 {object} model.APIResponse{data=model.ModuleGroup} "查询成功"
// @Failure 404 {object} model.APIResponse "分组不存在"
// @Router /api/v1/system/module-groups/{id} [get]
func (h *ModuleGroupHandler) GetModuleGroup(c *gin.Context) {
	group, err := h.groupService.GetModuleGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module group retrieved", group)
}

// ListModuleGroups 获取模块分组列表
// @Summary 获取模块分组列表
// @Tags 模块分组管理
// @Produce json
// @Param page query int false "页码,1起始"
// @Param limit query int false "每页数量"
// @Param search query string false "名称子串匹配"
// @Param platform query string false "平台过滤"
// @Success 200 {object} model.APIResponse{data=model.PaginatedList} "查询成功"
// @Router /api/v1/system/module-groups [get]
func (h *ModuleGroupHandler) ListModuleGroups(c *gin.Context) {
	var filter model.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.groupService.ListModuleGroups(c.Request.Context(), &filter)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module groups retrieved", resp)
}

// UpdateModuleGroup 更新模块分组
// @Summary 更新模块分组
// @Tags 模块分组管理
// @Accept json
// @Produce json
// @Param id path string true "分组ID"
// @Param request body model.UpdateModuleGroupRequest true "更新分组请求"
// @Success 200 {object} model.APIResponse{data=model.ModuleGroup} "更新成功"
// @Failure 404 {object} model.APIResponse "分组不存在"
// @Failure 409 {object} model.APIResponse "分组名称冲突"
// @Router /api/v1/system/module-groups/{id} [put]
func (h *ModuleGroupHandler) UpdateModuleGroup(c *gin.Context) {
	var req model.UpdateModuleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	group, err := h.groupService.UpdateModuleGroupByID(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module group updated", group)
}

// DeleteModuleGroup 删除模块分组
// @Summary 删除模块分组
// @Description 软删除模块分组,仍包含模块的分组拒绝删除
// @Tags 模块分组管理
// @Produce json
// @Param id path string true "分组ID"
// @Success 200 {object} model.APIResponse "删除成功"
// @Failure 404 {object} model.APIResponse "分组不存在"
// @Failure 409 {object} model.APIResponse "分组仍包含模块"
// @Router /api/v1/system/module-groups/{id} [delete]
func (h *ModuleGroupHandler) DeleteModuleGroup(c *gin.Context) {
	if err := h.groupService.DeleteModuleGroup(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "module group deleted", nil)
}
