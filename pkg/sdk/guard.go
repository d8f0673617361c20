package sdk

import "slices"

// Routes of the client surface. Unmatched routes resolve to RouteLogin.
const (
	RouteLogin     = "/login"
	RouteAdminHome = "/admin"
	RouteRiderHome = "/rider"
)

// Decision is the outcome of a guard evaluation: render the guarded view,
// or redirect. The guard never produces an "access denied" error; an
// unauthorized principal silently lands on a role-appropriate destination.
type Decision struct {
	Render   bool
	Redirect string
}

// Resolve evaluates access for a view restricted to the given roles. An
// empty required set means any authenticated principal may render. The
// evaluation is synchronous; nothing here suspends.
func Resolve(required []Role, p *Principal) Decision {
	if p == nil {
		return Decision{Redirect: RouteLogin}
	}
	if len(required) == 0 || slices.Contains(required, p.Role) {
		return Decision{Render: true}
	}
	return Decision{Redirect: p.Role.Home()}
}
