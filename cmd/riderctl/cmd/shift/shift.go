package shift

import (
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/router"
	"github.com/plunoo/riderapp/pkg/sdk"
)

// ShiftCmd is the parent command for shift scheduling.
var ShiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Schedule and inspect rider shifts",
}

func init() {
	ShiftCmd.AddCommand(listCmd)
	ShiftCmd.AddCommand(createCmd)
	ShiftCmd.AddCommand(breakCmd)
}

func adminRoles() []sdk.Role {
	return []sdk.Role{sdk.RoleAdmin, sdk.RolePrimeAdmin, sdk.RoleSubAdmin}
}

// RegisterViews wires the shift surfaces into the guarded route table.
func RegisterViews(table *router.Table) {
	table.Register(router.View{Route: "/shifts", Roles: adminRoles(), Render: renderList})
	table.Register(router.View{Route: "/shifts/create", Roles: adminRoles(), Render: runCreate})
}
