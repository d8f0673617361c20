package admin

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var removeSubAdminUsername string

var removeSubAdminCmd = &cobra.Command{
	Use:   "remove-sub-admin <username>",
	Short: "Delete a sub admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removeSubAdminUsername = args[0]
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/sub-admins/remove", cfg.Clients.Principal)
	},
}

func runRemoveSubAdmin(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}
	message, err := riderClient.DeleteSubAdmin(ctx, removeSubAdminUsername)
	if err != nil {
		return err
	}
	pterm.Info.Println(message)
	return nil
}
