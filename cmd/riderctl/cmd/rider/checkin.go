package rider

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var checkInStatus string

var checkInCmd = &cobra.Command{
	Use:   "check-in",
	Short: "Answer today's attendance question",
	Long: `Marks today's attendance as present or absent. Checking in again on the
same day overwrites the earlier answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), "/rider/checkin", cfg.Clients.Principal)
	},
}

func init() {
	checkInCmd.Flags().StringVar(&checkInStatus, "status", "", "present or absent")
}

func runCheckIn(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	if checkInStatus == "" {
		return fmt.Errorf("--status is required (present or absent)")
	}
	answer := sdk.AttendanceStatus(checkInStatus)
	if err := riderClient.MarkAttendance(ctx, answer); err != nil {
		return err
	}

	if answer == sdk.AttendanceAbsent {
		printAbsentCard()
		return nil
	}
	pterm.Success.Println("Checked in. Welcome!")
	return renderQueue(ctx)
}
