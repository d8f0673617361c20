package admin

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var addSubAdminInput sdk.AddSubAdminInput

var addSubAdminCmd = &cobra.Command{
	Use:   "add-sub-admin",
	Short: "Create a sub admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/sub-admins/add", cfg.Clients.Principal)
	},
}

func init() {
	addSubAdminCmd.Flags().StringVar(&addSubAdminInput.Username, "username", "", "Login username for the new sub admin")
	addSubAdminCmd.Flags().StringVar(&addSubAdminInput.Name, "name", "", "Display name")
	addSubAdminCmd.Flags().StringVar(&addSubAdminInput.Password, "password", "", "Initial password")
}

func runAddSubAdmin(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}
	if err := riderClient.AddSubAdmin(ctx, addSubAdminInput); err != nil {
		return err
	}
	pterm.Success.Printf("Sub admin %s added.\n", addSubAdminInput.Username)
	return nil
}
