package shift

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/auth"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled shifts",
	Long: `Lists the shifts of riders visible to you. Break windows recorded with
"riderctl shift break" are shown alongside; they live only on this machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/shifts", cfg.Clients.Principal)
	},
}

func renderList(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	shifts, err := riderClient.Shifts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list shifts: %w", err)
	}

	breaksFile, err := auth.NewBreaksFile()
	if err != nil {
		return err
	}
	breaks, err := breaksFile.Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRIDER_ID\tSTART\tEND\tBREAK")
	for _, shift := range shifts {
		window := breaks[shift.ID]
		if window == "" {
			window = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			shift.ID,
			shift.RiderID,
			shift.StartTime.Local().Format("Jan 2 15:04"),
			shift.EndTime.Local().Format("Jan 2 15:04"),
			window,
		)
	}
	w.Flush()
	return nil
}
