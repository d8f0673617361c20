package admin

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var removeRiderUsername string

var removeRiderCmd = &cobra.Command{
	Use:   "remove-rider <username>",
	Short: "Delete a rider account",
	Long: `Deletes a rider account by username. Deleting a rider that does not
exist reports the outcome without failing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removeRiderUsername = args[0]
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/riders/remove", cfg.Clients.Principal)
	},
}

func runRemoveRider(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}
	message, err := riderClient.DeleteRider(ctx, removeRiderUsername)
	if err != nil {
		return err
	}
	pterm.Info.Println(message)
	return nil
}
