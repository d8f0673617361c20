package shift

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/auth"
)

var breakClear bool

var breakCmd = &cobra.Command{
	Use:   "break <shift-id> [window]",
	Short: "Record a break window for a shift",
	Long: `Records a break window (e.g. "15:00-15:30") against a shift. The
mapping is kept locally under ~/.riderctl and never sent to the backend;
"shift list" shows it next to the shift.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		shiftID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid shift id %q", args[0])
		}

		breaksFile, err := auth.NewBreaksFile()
		if err != nil {
			return err
		}

		if breakClear {
			if err := breaksFile.Remove(shiftID); err != nil {
				return err
			}
			pterm.Success.Printf("Break cleared for shift %d.\n", shiftID)
			return nil
		}

		if len(args) != 2 {
			return fmt.Errorf("a break window is required (or use --clear)")
		}
		if err := breaksFile.Set(shiftID, args[1]); err != nil {
			return err
		}
		pterm.Success.Printf("Break %s recorded for shift %d.\n", args[1], shiftID)
		return nil
	},
}

func init() {
	breakCmd.Flags().BoolVar(&breakClear, "clear", false, "Remove the recorded break window")
}
