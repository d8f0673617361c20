package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var impersonatePassword string

var impersonateCmd = &cobra.Command{
	Use:   "impersonate <username>",
	Short: "Act as another account",
	Long: `Replaces the current session with the target account's session.

Prime admins may impersonate sub admins and riders. Sub admins may only
impersonate riders they manage. The scope rules are enforced on this client
as well as on the backend; a target outside your scope is rejected and the
current session stays intact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		password, err := resolvePassword(cfg, impersonatePassword)
		if err != nil {
			return err
		}
		riderClient, err := cfg.Clients.Client()
		if err != nil {
			return err
		}

		target, err := riderClient.Impersonate(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Now acting as %s (%s)\n", target.Name, target.Role)
		return cfg.Router.Dispatch(cmd.Context(), target.Role.Home(), cfg.Clients.Principal)
	},
}

func init() {
	impersonateCmd.Flags().StringVar(&impersonatePassword, "password", "", "Target account password (prompted when omitted)")
}
