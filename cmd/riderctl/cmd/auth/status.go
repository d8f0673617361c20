package auth

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		session, err := cfg.Clients.Session()
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Session")
		if !session.IsAuthenticated() {
			pterm.Warning.Println("Not logged in. Run `riderctl auth login`.")
			return nil
		}

		principal := session.Principal()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "NAME\t%s\n", principal.Name)
		fmt.Fprintf(w, "ROLE\t%s\n", principal.Role)
		if principal.Store != "" {
			fmt.Fprintf(w, "STORE\t%s\n", principal.Store)
		}
		if principal.Role == sdk.RoleRider && principal.ManagerID != 0 {
			fmt.Fprintf(w, "MANAGER_ID\t%d\n", principal.ManagerID)
		}
		fmt.Fprintf(w, "SERVER\t%s\n", cfg.ServerURL)
		w.Flush()
		return nil
	},
}
