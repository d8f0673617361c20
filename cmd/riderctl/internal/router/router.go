// Package router dispatches command surfaces through the authorization
// guard. A command names the route it wants; the router either renders it
// or follows the guard's redirect to a role-appropriate view, so an
// unauthorized caller sees their own home surface instead of an access
// error.
package router

import (
	"context"
	"fmt"

	"github.com/plunoo/riderapp/pkg/sdk"
)

// Unresolvable redirect chains indicate a misconfigured table; bail out
// instead of looping.
const maxRedirects = 4

// RenderFunc renders one view.
type RenderFunc func(ctx context.Context) error

// View is one guarded surface. Public views skip the guard entirely; a
// non-public view with an empty role set renders for any authenticated
// principal.
type View struct {
	Route  string
	Public bool
	Roles  []sdk.Role
	Render RenderFunc
}

// Table maps routes to views. Unregistered routes resolve to the login view.
type Table struct {
	views map[string]View
}

// New builds an empty table.
func New() *Table {
	return &Table{views: make(map[string]View)}
}

// Register adds a view. Registering the same route twice is a programming
// error.
func (t *Table) Register(v View) {
	if _, exists := t.views[v.Route]; exists {
		panic(fmt.Sprintf("riderctl: duplicate route %q", v.Route))
	}
	t.views[v.Route] = v
}

// Dispatch resolves route through the guard and renders the view it lands
// on. The principal is re-read on every hop: a 401 during a render can log
// the session out between redirects.
func (t *Table) Dispatch(ctx context.Context, route string, principal func() *sdk.Principal) error {
	for hop := 0; hop <= maxRedirects; hop++ {
		view, ok := t.views[route]
		if !ok {
			if route == sdk.RouteLogin {
				return fmt.Errorf("no login view registered")
			}
			route = sdk.RouteLogin
			continue
		}
		if view.Public {
			return view.Render(ctx)
		}
		decision := sdk.Resolve(view.Roles, principal())
		if decision.Render {
			return view.Render(ctx)
		}
		route = decision.Redirect
	}
	return fmt.Errorf("redirect limit reached resolving %q", route)
}
