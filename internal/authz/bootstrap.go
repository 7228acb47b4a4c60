package authz

import "github.com/aqro/aqro/internal/constants"

// RoleSeed is a builtin role and its route policies.
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds is the fixed role matrix. Roles are not user-manageable,
// fine-grained restaurant scoping happens at the service layer.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/api/v1/containers/register", Action: "POST"},
				{Object: "/api/v1/containers/mine", Action: "GET"},
				{Object: "/api/v1/containers/:id/status", Action: "PATCH"},
				{Object: "/api/v1/me", Action: "GET"},
				{Object: "/api/v1/me/stats", Action: "GET"},
				{Object: "/api/v1/me/activities", Action: "GET"},
				{Object: "/api/v1/me/rebates", Action: "GET"},
			},
		},
		{
			Role: constants.RoleStaff,
			Policies: []Policy{
				{Object: "/api/v1/me", Action: "GET"},
				{Object: "/api/v1/staff/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/api/v1/*", Action: "*"},
			},
		},
	}
}
