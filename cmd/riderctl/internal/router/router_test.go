package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plunoo/riderapp/pkg/sdk"
)

func adminRoles() []sdk.Role {
	return []sdk.Role{sdk.RoleAdmin, sdk.RolePrimeAdmin, sdk.RoleSubAdmin}
}

func newTable(t *testing.T, rendered *string) *Table {
	t.Helper()
	mark := func(name string) RenderFunc {
		return func(context.Context) error {
			*rendered = name
			return nil
		}
	}
	table := New()
	table.Register(View{Route: sdk.RouteLogin, Public: true, Render: mark("login")})
	table.Register(View{Route: sdk.RouteAdminHome, Roles: adminRoles(), Render: mark("admin")})
	table.Register(View{Route: sdk.RouteRiderHome, Roles: []sdk.Role{sdk.RoleRider}, Render: mark("rider")})
	return table
}

func fixed(p *sdk.Principal) func() *sdk.Principal {
	return func() *sdk.Principal { return p }
}

func TestDispatch(t *testing.T) {
	rider := &sdk.Principal{ID: 1, Role: sdk.RoleRider}
	prime := &sdk.Principal{ID: 2, Role: sdk.RolePrimeAdmin}

	tests := []struct {
		name      string
		route     string
		principal *sdk.Principal
		want      string
	}{
		{"logged out lands on login", sdk.RouteAdminHome, nil, "login"},
		{"rider renders rider home", sdk.RouteRiderHome, rider, "rider"},
		{"rider on admin route lands on rider home", sdk.RouteAdminHome, rider, "rider"},
		{"prime on rider route lands on admin home", sdk.RouteRiderHome, prime, "admin"},
		{"unknown route falls back to login", "/nowhere", rider, "login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rendered string
			table := newTable(t, &rendered)
			require.NoError(t, table.Dispatch(context.Background(), tt.route, fixed(tt.principal)))
			assert.Equal(t, tt.want, rendered)
		})
	}
}

func TestDispatchEmptyRoleSetNeedsAuthOnly(t *testing.T) {
	var rendered string
	table := New()
	table.Register(View{Route: sdk.RouteLogin, Public: true, Render: func(context.Context) error {
		rendered = "login"
		return nil
	}})
	table.Register(View{Route: "/any", Render: func(context.Context) error {
		rendered = "any"
		return nil
	}})

	require.NoError(t, table.Dispatch(context.Background(), "/any", fixed(&sdk.Principal{ID: 1, Role: sdk.RoleRider})))
	assert.Equal(t, "any", rendered)

	require.NoError(t, table.Dispatch(context.Background(), "/any", fixed(nil)))
	assert.Equal(t, "login", rendered)
}

func TestDispatchWithoutLoginView(t *testing.T) {
	table := New()
	err := table.Dispatch(context.Background(), "/nowhere", fixed(nil))
	require.Error(t, err)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	table := New()
	table.Register(View{Route: "/x", Public: true, Render: func(context.Context) error { return nil }})
	assert.Panics(t, func() {
		table.Register(View{Route: "/x", Public: true, Render: func(context.Context) error { return nil }})
	})
}
