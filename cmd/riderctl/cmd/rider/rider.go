package rider

import (
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/router"
	"github.com/plunoo/riderapp/pkg/sdk"
)

// RiderCmd is the parent command for the rider surfaces.
var RiderCmd = &cobra.Command{
	Use:   "rider",
	Short: "Daily check-in, work status and the store queue",
}

func init() {
	RiderCmd.AddCommand(homeCmd)
	RiderCmd.AddCommand(checkInCmd)
	RiderCmd.AddCommand(queueCmd)
	RiderCmd.AddCommand(statusCmd)
}

func riderOnly() []sdk.Role {
	return []sdk.Role{sdk.RoleRider}
}

// RegisterViews wires the rider surfaces into the guarded route table.
func RegisterViews(table *router.Table) {
	table.Register(router.View{Route: sdk.RouteRiderHome, Roles: riderOnly(), Render: renderHome})
	table.Register(router.View{Route: "/rider/checkin", Roles: riderOnly(), Render: runCheckIn})
	table.Register(router.View{Route: "/rider/queue", Roles: riderOnly(), Render: renderQueue})
	table.Register(router.View{Route: "/rider/status", Roles: riderOnly(), Render: runStatus})
}
