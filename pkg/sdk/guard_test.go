package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	rider := &Principal{ID: 1, Role: RoleRider}
	prime := &Principal{ID: 2, Role: RolePrimeAdmin}
	sub := &Principal{ID: 3, Role: RoleSubAdmin}
	admin := &Principal{ID: 4, Role: RoleAdmin}

	tests := []struct {
		name      string
		required  []Role
		principal *Principal
		want      Decision
	}{
		{
			name:      "no principal redirects to login",
			required:  []Role{RoleRider},
			principal: nil,
			want:      Decision{Redirect: RouteLogin},
		},
		{
			name:      "matching role renders",
			required:  []Role{RoleRider},
			principal: rider,
			want:      Decision{Render: true},
		},
		{
			name:      "any of several roles renders",
			required:  []Role{RoleAdmin, RolePrimeAdmin, RoleSubAdmin},
			principal: sub,
			want:      Decision{Render: true},
		},
		{
			name:      "empty requirement renders any authenticated principal",
			required:  nil,
			principal: rider,
			want:      Decision{Render: true},
		},
		{
			name:      "rider on admin view redirects to rider home",
			required:  []Role{RoleAdmin, RolePrimeAdmin, RoleSubAdmin},
			principal: rider,
			want:      Decision{Redirect: RouteRiderHome},
		},
		{
			name:      "prime admin on rider view redirects to admin home",
			required:  []Role{RoleRider},
			principal: prime,
			want:      Decision{Redirect: RouteAdminHome},
		},
		{
			name:      "plain admin on rider view redirects to admin home",
			required:  []Role{RoleRider},
			principal: admin,
			want:      Decision{Redirect: RouteAdminHome},
		},
		{
			name:      "sub admin on prime-only view redirects to admin home",
			required:  []Role{RolePrimeAdmin},
			principal: sub,
			want:      Decision{Redirect: RouteAdminHome},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.required, tt.principal))
		})
	}
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, RouteRiderHome, RoleRider.Home())
	assert.Equal(t, RouteAdminHome, RoleAdmin.Home())
	assert.Equal(t, RouteAdminHome, RolePrimeAdmin.Home())
	assert.Equal(t, RouteAdminHome, RoleSubAdmin.Home())
}
