package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the stored session",
	Long:  `Removes the stored session. Logging out while already logged out is fine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		riderClient, err := cfg.Clients.Client()
		if err != nil {
			return err
		}
		riderClient.Logout()
		pterm.Success.Println("Logged out.")
		return nil
	},
}
