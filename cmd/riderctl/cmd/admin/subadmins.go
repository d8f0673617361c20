package admin

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var subAdminsCmd = &cobra.Command{
	Use:   "sub-admins",
	Short: "List sub admin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/sub-admins", cfg.Clients.Principal)
	},
}

func renderSubAdmins(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	subAdmins, err := riderClient.SubAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sub admins: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tRIDERS")
	for _, subAdmin := range subAdmins {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", subAdmin.ID, subAdmin.Username, subAdmin.Name, subAdmin.RiderCount)
	}
	w.Flush()
	return nil
}
