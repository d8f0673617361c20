package rider

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var statusArg string

var statusCmd = &cobra.Command{
	Use:   "status [available|delivery|break|offline]",
	Short: "Show or change your work status",
	Long: `Without an argument, shows your current status and queue position.
With one, broadcasts the new status; going available puts you at the back of
the queue, anything else removes you from it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		statusArg = ""
		if len(args) == 1 {
			statusArg = args[0]
		}
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/rider/status", cfg.Clients.Principal)
	},
}

func runStatus(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	if statusArg != "" {
		if err := riderClient.UpdateWorkStatus(ctx, sdk.WorkStatus(statusArg)); err != nil {
			return err
		}
		pterm.Success.Printf("Status set to %s.\n", statusArg)
	}
	return renderQueue(ctx)
}
