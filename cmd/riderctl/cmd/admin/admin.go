package admin

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/router"
	"github.com/plunoo/riderapp/pkg/sdk"
)

// AdminCmd is the parent command for the admin surfaces.
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Fleet dashboards and account management",
}

func init() {
	AdminCmd.AddCommand(dashboardCmd)
	AdminCmd.AddCommand(ridersCmd)
	AdminCmd.AddCommand(addRiderCmd)
	AdminCmd.AddCommand(removeRiderCmd)
	AdminCmd.AddCommand(subAdminsCmd)
	AdminCmd.AddCommand(addSubAdminCmd)
	AdminCmd.AddCommand(removeSubAdminCmd)
	AdminCmd.AddCommand(managementCmd)
}

func adminRoles() []sdk.Role {
	return []sdk.Role{sdk.RoleAdmin, sdk.RolePrimeAdmin, sdk.RoleSubAdmin}
}

func primeOnly() []sdk.Role {
	return []sdk.Role{sdk.RolePrimeAdmin}
}

// RegisterViews wires the admin surfaces into the guarded route table. The
// admin home route renders the dashboard snapshot.
func RegisterViews(table *router.Table) {
	table.Register(router.View{Route: sdk.RouteAdminHome, Roles: adminRoles(), Render: renderDashboard})
	table.Register(router.View{Route: "/admin/dashboard", Roles: adminRoles(), Render: renderDashboard})
	table.Register(router.View{Route: "/admin/riders", Roles: adminRoles(), Render: renderRiders})
	table.Register(router.View{Route: "/admin/riders/add", Roles: adminRoles(), Render: runAddRider})
	table.Register(router.View{Route: "/admin/riders/remove", Roles: adminRoles(), Render: runRemoveRider})
	table.Register(router.View{Route: "/admin/sub-admins", Roles: primeOnly(), Render: renderSubAdmins})
	table.Register(router.View{Route: "/admin/sub-admins/add", Roles: primeOnly(), Render: runAddSubAdmin})
	table.Register(router.View{Route: "/admin/sub-admins/remove", Roles: primeOnly(), Render: runRemoveSubAdmin})
	table.Register(router.View{Route: "/admin/management", Roles: primeOnly(), Render: renderManagement})
}

// ago renders a timestamp as a coarse relative age for the status board.
func ago(ts *sdk.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	d := time.Since(ts.Time)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return ts.Local().Format("Jan 2 15:04")
	}
}
