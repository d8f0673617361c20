package rider

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show your store's waiting queue",
	Long: `Shows your current status and the store queue. The order comes from the
backend and is the order deliveries are handed out in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/rider/queue", cfg.Clients.Principal)
	},
}

func renderQueue(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	snap, err := riderClient.Queue(ctx)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Store Queue")
	pterm.Info.Printf("Your status: %s\n", snap.Status)
	if snap.Position > 0 {
		pterm.Info.Printf("You are #%d of %d waiting.\n", snap.Position, snap.TotalWaiting)
	} else {
		pterm.Info.Printf("You are not in the queue. %d waiting.\n", snap.TotalWaiting)
	}

	if len(snap.Queue) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRIDER\tWAITING SINCE")
	for i, entry := range snap.Queue {
		since := "-"
		if entry.UpdatedAt != nil && !entry.UpdatedAt.IsZero() {
			since = entry.UpdatedAt.Local().Format("15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, entry.Name, since)
	}
	w.Flush()
	return nil
}
