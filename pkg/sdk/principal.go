package sdk

// Role identifies the capability level of an account. The set is fixed;
// roles are mutually exclusive.
type Role string

const (
	RoleAdmin      Role = "admin"
	RolePrimeAdmin Role = "prime_admin"
	RoleSubAdmin   Role = "sub_admin"
	RoleRider      Role = "rider"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePrimeAdmin, RoleSubAdmin, RoleRider:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants access to the admin surface.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RolePrimeAdmin || r == RoleSubAdmin
}

// Home returns the route an account of this role lands on after login or a
// capability redirect.
func (r Role) Home() string {
	if r == RoleRider {
		return RouteRiderHome
	}
	return RouteAdminHome
}

// Principal is the authenticated identity driving authorization decisions.
// ManagerID is set for riders managed by a sub admin and is only consulted
// by the impersonation scope rules.
type Principal struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Store     string `json:"store,omitempty"`
	ManagerID int64  `json:"manager_id,omitempty"`
}
