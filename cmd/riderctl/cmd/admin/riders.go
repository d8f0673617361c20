package admin

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var ridersStore string

var ridersCmd = &cobra.Command{
	Use:   "riders",
	Short: "List rider accounts",
	Long:  `Lists rider accounts visible to you. Sub admins only see their own riders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/riders", cfg.Clients.Principal)
	},
}

func init() {
	ridersCmd.Flags().StringVar(&ridersStore, "store", "all", "Limit the list to one store")
}

func renderRiders(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	riders, err := riderClient.Riders(ctx, ridersStore)
	if err != nil {
		return fmt.Errorf("failed to list riders: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tSTORE\tSTATUS\tUPDATED")
	for _, rider := range riders {
		store := rider.Store
		if store == "" {
			store = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			rider.ID, rider.Username, rider.Name, store, rider.Status, ago(rider.UpdatedAt))
	}
	w.Flush()
	return nil
}
