package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var (
	createRiderID int64
	createStart   string
	createEnd     string
)

// Accepted besides RFC 3339 for convenience on the command line.
const shiftTimeLayout = "2006-01-02 15:04"

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a shift for a rider",
	Long: `Schedules a working window for a rider. Times are given as RFC 3339 or
as "2006-01-02 15:04" in local time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/shifts/create", cfg.Clients.Principal)
	},
}

func init() {
	createCmd.Flags().Int64Var(&createRiderID, "rider-id", 0, "Rider the shift belongs to")
	createCmd.Flags().StringVar(&createStart, "start", "", "Shift start time")
	createCmd.Flags().StringVar(&createEnd, "end", "", "Shift end time")
}

func parseShiftTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(shiftTimeLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC 3339 or %q)", value, shiftTimeLayout)
}

func runCreate(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	if createStart == "" || createEnd == "" {
		return fmt.Errorf("--start and --end are required")
	}
	start, err := parseShiftTime(createStart)
	if err != nil {
		return err
	}
	end, err := parseShiftTime(createEnd)
	if err != nil {
		return err
	}

	shift, err := riderClient.CreateShift(ctx, sdk.CreateShiftInput{
		RiderID:   createRiderID,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		return err
	}
	pterm.Success.Printf("Shift %d scheduled for rider %d (%s - %s).\n",
		shift.ID, shift.RiderID,
		shift.StartTime.Local().Format("Jan 2 15:04"),
		shift.EndTime.Local().Format("15:04"))
	return nil
}
