// 角色管理接口
package system

import (
	"net/http"

	"neoauth/internal/model"
	"neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// RoleHandler 角色管理处理器
type RoleHandler struct {
	roleService *auth.RoleService
}

// NewRoleHandler 创建角色管理处理器
func NewRoleHandler(roleService *auth.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// CreateRole 创建角色
// @Summary 创建角色
// @Description 创建角色并原子地建立模块权限关联,激活权限必须是模块登记全集的子集
// @Tags 角色管理
// @Accept json
// @Produce json
// @Param request body model.CreateRoleRequest true "创建角色请求"
// @Success 201 {object} model.APIResponse{data=model.RoleDetailResponse} "创建成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 404 {object} model.APIResponse "关联的权限模块不存在"
// @Failure 409 {object} model.APIResponse "角色名称冲突"
// @Router /api/v1/system/roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req model.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.roleService.CreateRole(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, "role created", resp)
}

// GetRole 获取角色详情
// @Summary 获取角色详情
// @Description 返回 分组->模块 嵌套树形式的角色权限详情
// @Tags 角色管理
// @Produce json
// @Param id path string true "角色ID"
// @Success 200 {object} model.APIResponse{data=model.RoleDetailResponse} "查询成功"
// @Failure 404 {object} model.APIResponse "角色不存在"
// @Router /api/v1/system/roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	resp, err := h.roleService.GetRoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "role retrieved", resp)
}

// ListRoles 获取角色列表
// @Summary 获取角色列表
// @Description 支持名称搜索、状态和平台过滤的分页角色列表
// @Tags 角色管理
// @Produce json
// @Param page query int false "页码,1起始"
// @Param limit query int false "每页数量"
// @Param search query string false "名称子串匹配"
// @Param status query string false "角色状态过滤"
// @Param platform query string false "平台过滤"
// @Success 200 {object} model.APIResponse{data=model.PaginatedList} "查询成功"
// @Router /api/v1/system/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	var filter model.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.roleService.ListRoles(c.Request.Context(), &filter)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "roles retrieved", resp)
}

// UpdateRole 更新角色
// @Summary 更新角色
// @Description 整体替换语义:旧的模块权限关联被删除后按请求重建
// @Tags 角色管理
// @Accept json
// @Produce json
// @Param id path string true "角色ID"
// @Param request body model.UpdateRoleRequest true "更新角色请求"
// @Success 200 {object} model.APIResponse{data=model.RoleDetailResponse} "更新成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 404 {object} model.APIResponse "角色不存在"
// @Failure 409 {object} model.APIResponse "角色名称冲突"
// @Router /api/v1/system/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.roleService.UpdateRoleByID(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "role updated", resp)
}

// DeleteRole 删除角色
// @Summary 删除角色
// @Description 软删除角色,被特殊角色绑定的角色拒绝删除
// @Tags 角色管理
// @Produce json
// @Param id path string true "角色ID"
// @Success 200 {object} model.APIResponse "删除成功"
// @Failure 404 {object} model.APIResponse "角色不存在"
// @Failure 409 {object} model.APIResponse "角色被特殊角色绑定"
// @Router /api/v1/system/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "role deleted", nil)
}
