package auth

import (
	"testing"

	"neoauth/internal/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func buildRoleWithLinks() *model.Role {
	groupA := &model.ModuleGroup{
		BaseModel: model.BaseModel{ID: "group-a"},
		Name:      "订单管理",
		Platform:  model.PlatformStores,
		Sequence:  2,
	}
	groupB := &model.ModuleGroup{
		BaseModel: model.BaseModel{ID: "group-b"},
		Name:      "门店管理",
		Platform:  model.PlatformStores,
		Sequence:  1,
	}

	role := &model.Role{
		BaseModel: model.BaseModel{ID: "role-1"},
		Name:      "店长",
		Platform:  model.PlatformStores,
		Status:    model.RoleStatusActive,
		ModulePermissions: []model.RoleModule{
			{
				RoleID:            "role-1",
				ModuleID:          "mod-orders",
				ActivePermissions: model.StringList{"read"},
				Module: &model.ModulePermission{
					BaseModel:   model.BaseModel{ID: "mod-orders"},
					Code:        "orders",
					Name:        "订单",
					GroupID:     strPtr("group-a"),
					Permissions: model.StringList{"read", "write"},
					Platform:    model.PlatformStores,
					Sequence:    1,
					Group:       groupA,
				},
			},
			{
				RoleID:            "role-1",
				ModuleID:          "mod-staff",
				ActivePermissions: model.StringList{"read", "write"},
				Module: &model.ModulePermission{
					BaseModel:   model.BaseModel{ID: "mod-staff"},
					Code:        "staff",
					Name:        "员工",
					GroupID:     strPtr("group-b"),
					Permissions: model.StringList{"read", "write"},
					Platform:    model.PlatformStores,
					Sequence:    2,
					Group:       groupB,
				},
			},
			{
				RoleID:            "role-1",
				ModuleID:          "mod-store",
				ActivePermissions: model.StringList{"read"},
				Module: &model.ModulePermission{
					BaseModel:   model.BaseModel{ID: "mod-store"},
					Code:        "store",
					Name:        "门店",
					GroupID:     strPtr("group-b"),
					Permissions: model.StringList{"read"},
					Platform:    model.PlatformStores,
					Sequence:    1,
					Group:       groupB,
				},
			},
		},
	}
	return role
}

func TestFormatRoleResponse_GroupsAndOrders(t *testing.T) {
	role := buildRoleWithLinks()

	resp := FormatRoleResponse(role)

	assert.NotNil(t, resp)
	assert.Equal(t, "role-1", resp.ID)
	assert.Equal(t, model.RoleStatusActive, resp.Status)

	// 两个分组，按 sequence 升序：门店管理(1) 在 订单管理(2) 前
	assert.Len(t, resp.ModulePermissions, 2)
	assert.Equal(t, "门店管理", resp.ModulePermissions[0].Name)
	assert.Equal(t, "订单管理", resp.ModulePermissions[1].Name)

	// 组内模块按 sequence 升序：门店(1) 在 员工(2) 前
	storeGroup := resp.ModulePermissions[0]
	assert.Len(t, storeGroup.Modules, 2)
	assert.Equal(t, "store", storeGroup.Modules[0].Code)
	assert.Equal(t, "staff", storeGroup.Modules[1].Code)

	// 模块节点同时携带权限全集与激活子集
	orders := resp.ModulePermissions[1].Modules[0]
	assert.Equal(t, model.StringList{"read", "write"}, orders.Permissions)
	assert.Equal(t, model.StringList{"read"}, orders.ActivePermissions)
}

func TestFormatRoleResponse_UngroupedModulesFallIntoEmptyBucket(t *testing.T) {
	role := &model.Role{
		BaseModel: model.BaseModel{ID: "role-2"},
		Name:      "巡检员",
		Platform:  model.PlatformStores,
		Status:    model.RoleStatusInactive,
		ModulePermissions: []model.RoleModule{
			{
				RoleID:            "role-2",
				ModuleID:          "mod-free",
				ActivePermissions: model.StringList{"read"},
				Module: &model.ModulePermission{
					BaseModel:   model.BaseModel{ID: "mod-free"},
					Code:        "free",
					Permissions: model.StringList{"read"},
					Platform:    model.PlatformStores,
				},
			},
		},
	}

	resp := FormatRoleResponse(role)

	assert.Len(t, resp.ModulePermissions, 1)
	assert.Equal(t, "", resp.ModulePermissions[0].Name)
	assert.Equal(t, "", resp.ModulePermissions[0].ID)
	assert.Len(t, resp.ModulePermissions[0].Modules, 1)
}

func TestFormatRoleResponse_SkipsDanglingLinks(t *testing.T) {
	role := &model.Role{
		BaseModel: model.BaseModel{ID: "role-3"},
		ModulePermissions: []model.RoleModule{
			{RoleID: "role-3", ModuleID: "gone", ActivePermissions: model.StringList{"read"}},
		},
	}

	resp := FormatRoleResponse(role)

	assert.Empty(t, resp.ModulePermissions)
}

func TestFormatRoleResponse_SpecialRoleStripped(t *testing.T) {
	roleID := "role-4"
	role := &model.Role{
		BaseModel: model.BaseModel{ID: roleID},
		Name:      "超管",
		SpecialRole: &model.SpecialRole{
			BaseModel: model.BaseModel{ID: "special-1"},
			Code:      "super_admin",
			Name:      "超级管理员",
			Platform:  model.PlatformSuperadmin,
			RoleID:    &roleID,
		},
	}

	resp := FormatRoleResponse(role)

	assert.NotNil(t, resp.SpecialRole)
	assert.Equal(t, "super_admin", resp.SpecialRole.Code)
	assert.Equal(t, &roleID, resp.SpecialRole.RoleID)
}

func TestFormatRoleResponse_NilRole(t *testing.T) {
	assert.Nil(t, FormatRoleResponse(nil))
}
