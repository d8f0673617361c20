package admin

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var addRiderInput sdk.AddRiderInput

var addRiderCmd = &cobra.Command{
	Use:   "add-rider",
	Short: "Create a rider account",
	Long: `Creates a rider account. Prime admins may assign the managing sub admin
with --sub-admin; for sub admins the backend assigns the new rider to them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/riders/add", cfg.Clients.Principal)
	},
}

func init() {
	addRiderCmd.Flags().StringVar(&addRiderInput.Username, "username", "", "Login username for the new rider")
	addRiderCmd.Flags().StringVar(&addRiderInput.Name, "name", "", "Display name")
	addRiderCmd.Flags().StringVar(&addRiderInput.Password, "password", "", "Initial password")
	addRiderCmd.Flags().StringVar(&addRiderInput.Store, "store", "", "Store the rider works from")
	addRiderCmd.Flags().Int64Var(&addRiderInput.SubAdminID, "sub-admin", 0, "Managing sub admin id (prime admin only)")
}

func runAddRider(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}
	if err := riderClient.AddRider(ctx, addRiderInput); err != nil {
		return err
	}
	pterm.Success.Printf("Rider %s added.\n", addRiderInput.Username)
	return nil
}
