package auth

import (
	"fmt"
	"slices"
	"strings"
)

// Permission names an action a signed-in user may perform.
type Permission string

const (
	AssetsRead   Permission = "assets:read"
	AssetsCreate Permission = "assets:create"
	AssetsUpdate Permission = "assets:update"
	AssetsDelete Permission = "assets:delete"

	MovementsRead   Permission = "movements:read"
	MovementsCreate Permission = "movements:create"

	ReportsRead   Permission = "reports:read"
	ReportsExport Permission = "reports:export"

	AdminUsers    Permission = "admin:users"
	AdminSettings Permission = "admin:settings"
)

// Role groups permissions. Each role includes everything the one below it
// may do.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

var (
	viewerPermissions = []Permission{AssetsRead, MovementsRead, ReportsRead}

	operatorPermissions = append(slices.Clone(viewerPermissions),
		AssetsCreate, AssetsUpdate, MovementsCreate, ReportsExport)

	managerPermissions = append(slices.Clone(operatorPermissions), AssetsDelete)

	adminPermissions = append(slices.Clone(managerPermissions), AdminUsers, AdminSettings)

	rolePermissions = map[Role][]Permission{
		RoleViewer:   viewerPermissions,
		RoleOperator: operatorPermissions,
		RoleManager:  managerPermissions,
		RoleAdmin:    adminPermissions,
	}
)

// Permissions returns a copy of the role's permission list. Unknown roles
// have none.
func (r Role) Permissions() []Permission {
	return slices.Clone(rolePermissions[r])
}

// Allows reports whether the role grants p.
func (r Role) Allows(p Permission) bool {
	return slices.Contains(rolePermissions[r], p)
}

// ParseRole accepts a role name in any case. Empty defaults to viewer.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleViewer, nil
	}
	r := Role(s)
	if _, ok := rolePermissions[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// PermissionError is returned by RequirePermission.
type PermissionError struct {
	Permission Permission
}

func (e *PermissionError) Error() string {
	return "Permission required: " + string(e.Permission)
}
