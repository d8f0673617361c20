package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and land on your role's home surface",
	Long: `Authenticates against the backend and stores the session under
~/.riderctl. After a successful login you are taken to the surface matching
your role: admins land on the dashboard, riders on their home view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		if loginUsername == "" {
			return fmt.Errorf("--username is required")
		}
		password, err := resolvePassword(cfg, loginPassword)
		if err != nil {
			return err
		}

		riderClient, err := cfg.Clients.Client()
		if err != nil {
			return err
		}
		principal, err := riderClient.Login(cmd.Context(), loginUsername, password)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", principal.Name, principal.Role)
		return cfg.Router.Dispatch(cmd.Context(), principal.Role.Home(), cfg.Clients.Principal)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}
