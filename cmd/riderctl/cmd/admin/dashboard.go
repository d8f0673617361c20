package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var (
	dashboardStore string
	dashboardWatch bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fleet summary and live status board",
	Long: `Shows rider counts and the live status board. With --watch the view
refreshes on the poll interval until interrupted; every refresh replaces the
whole board.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/admin/dashboard", cfg.Clients.Principal)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardStore, "store", "all", "Limit the view to one store")
	dashboardCmd.Flags().BoolVar(&dashboardWatch, "watch", false, "Keep refreshing on the poll interval")
}

type boardSnapshot struct {
	stats *sdk.DashboardStats
	board []sdk.RiderStatusEntry
}

func fetchBoard(ctx context.Context, c *sdk.Client, store string) (boardSnapshot, error) {
	stats, err := c.DashboardStats(ctx, store)
	if err != nil {
		return boardSnapshot{}, err
	}
	board, err := c.RiderStatuses(ctx, store)
	if err != nil {
		return boardSnapshot{}, err
	}
	return boardSnapshot{stats: stats, board: board}, nil
}

func renderDashboard(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	if !dashboardWatch {
		snap, err := fetchBoard(ctx, riderClient, dashboardStore)
		if err != nil {
			return err
		}
		printBoard(snap)
		return nil
	}

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := false
	poller := &sdk.Poller[boardSnapshot]{
		Interval: cfg.PollInterval,
		Fetch: func(ctx context.Context) (boardSnapshot, error) {
			return fetchBoard(ctx, riderClient, dashboardStore)
		},
		Apply: printBoard,
		OnError: func(err error) {
			if errors.Is(err, sdk.ErrSessionExpired) {
				expired = true
				cancel()
				return
			}
			pterm.Warning.Printf("refresh failed: %v\n", err)
		},
	}
	stop := poller.Start(ctx)
	defer stop()

	<-ctx.Done()
	if expired {
		return sdk.ErrSessionExpired
	}
	return nil
}

func printBoard(snap boardSnapshot) {
	scope := dashboardStore
	if scope == "" || scope == "all" {
		scope = "all stores"
	}
	pterm.DefaultSection.Printf("Fleet Dashboard (%s)\n", scope)

	stats := snap.stats
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TOTAL\tACTIVE\tAVAILABLE\tDELIVERY\tON_BREAK\tABSENT\n")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n",
		stats.TotalRiders, stats.Active, stats.Available, stats.Delivery, stats.OnBreak, stats.Absent)
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RIDER\tSTATUS\tUPDATED")
	for _, entry := range snap.board {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, entry.Status, ago(entry.UpdatedAt))
	}
	w.Flush()
	if stats.UpdatedAt != nil {
		pterm.Info.Printf("As of %s\n", stats.UpdatedAt.Local().Format("15:04:05"))
	}
}
