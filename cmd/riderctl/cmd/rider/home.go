package rider

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Your day at a glance",
	Long: `Shows the right surface for where you are in the day: the check-in
question if attendance is unmarked, a rest card if you marked absent, or the
store queue once you are in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		return cfg.Router.Dispatch(cmd.Context(), sdk.RouteRiderHome, cfg.Clients.Principal)
	},
}

func renderHome(ctx context.Context) error {
	cfg := config.MustFromContext(ctx)
	riderClient, err := cfg.Clients.Client()
	if err != nil {
		return err
	}

	attendance, err := riderClient.AttendanceToday(ctx)
	if err != nil {
		return err
	}
	switch attendance {
	case sdk.AttendanceAbsent:
		printAbsentCard()
		return nil
	case sdk.AttendancePresent:
		return renderQueue(ctx)
	}

	// Unmarked: ask the check-in question.
	if cfg.NonInteractive {
		pterm.Info.Println("Attendance not marked. Run `riderctl rider check-in --status present` (or absent).")
		return nil
	}
	working, err := pterm.DefaultInteractiveConfirm.Show("Are you working today?")
	if err != nil {
		return err
	}
	answer := sdk.AttendanceAbsent
	if working {
		answer = sdk.AttendancePresent
	}
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

func printAbsentCard() {
	pterm.DefaultSection.Println("Rest Day")
	pterm.Info.Println("You are marked absent for today. See you tomorrow!")
}
