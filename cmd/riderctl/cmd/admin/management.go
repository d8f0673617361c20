package admin

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

// The management view shows the newest impersonation events, matching the
// backend's default page.
const impersonationLogLimit = 15

var managementCmd = &cobra.Command{
	Use:   "management",
	Short: "Cross-store overview and impersonation audit",
	Long: `Shows the prime admin's cross-store rollup: per-sub-admin activity,
per-store totals and the most recent impersonation events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/management", cfg.Clients.Principal)
	},
}

func renderManagement(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	overview, err := riderClient.PrimeOverview(ctx)
	if err != nil {
		return fmt.Errorf("failed to load overview: %w", err)
	}

	pterm.DefaultSection.Println("Sub Admin Activity")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRIDERS\tACTIVE\tDELIVERY\tAVAILABLE")
	for _, item := range overview.Items {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			item.Name, item.RiderCount, item.Active, item.Delivery, item.Available)
	}
	fmt.Fprintf(w, "TOTAL\t\t%d\t%d\t%d\n",
		overview.Totals.Active, overview.Totals.Delivery, overview.Totals.Available)
	w.Flush()

	if len(overview.Stores) > 0 {
		pterm.DefaultSection.Println("Stores")
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STORE\tRIDERS\tACTIVE\tDELIVERY\tAVAILABLE")
		for _, store := range overview.Stores {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
				store.Store, store.RiderCount, store.Active, store.Delivery, store.Available)
		}
		w.Flush()
	}

	logs, err := riderClient.ImpersonationLogs(ctx, impersonationLogLimit)
	if err != nil {
		return fmt.Errorf("failed to load impersonation logs: %w", err)
	}
	pterm.DefaultSection.Println("Recent Impersonations")
	if len(logs) == 0 {
		pterm.Info.Println("No impersonation events recorded.")
		return nil
	}
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTOR\tTARGET\tROLE")
	for _, entry := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.CreatedAt.Local().Format("Jan 2 15:04"), entry.ActorName, entry.TargetName, entry.TargetRole)
	}
	w.Flush()
	return nil
}
