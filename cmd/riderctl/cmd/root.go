package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plunoo/riderapp/cmd/riderctl/cmd/admin"
	authcmd "github.com/plunoo/riderapp/cmd/riderctl/cmd/auth"
	"github.com/plunoo/riderapp/cmd/riderctl/cmd/rider"
	"github.com/plunoo/riderapp/cmd/riderctl/cmd/shift"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/auth"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/client"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
	"github.com/plunoo/riderapp/cmd/riderctl/internal/router"
	"github.com/plunoo/riderapp/internal/log"
	"github.com/plunoo/riderapp/pkg/sdk"
)

var (
	serverURL      string
	nonInteractive bool
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "riderctl",
	Short: "Rider operations client - dashboards, queue and accounts",
	Long: `riderctl is the command-line client for the rider operations backend.
Admins get fleet dashboards and account management, riders get daily
check-in, work status and their store queue. Every surface is guarded by
role: commands outside your role land you on your own home view instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auth.HomeDir()
		if err != nil {
			return err
		}
		settings, err := config.LoadSettings(dir)
		if err != nil {
			return err
		}
		// Flags beat the environment and the config file.
		flags := cmd.Root().PersistentFlags()
		if flags.Changed("server") {
			settings.ServerURL = serverURL
		}
		if flags.Changed("non-interactive") {
			settings.NonInteractive = nonInteractive
		}
		if flags.Changed("log-level") {
			settings.LogLevel = logLevel
		}
		log.Configure(settings.LogLevel, true)

		cfg := &config.GlobalConfig{
			ServerURL:      settings.ServerURL,
			PollInterval:   settings.PollInterval,
			NonInteractive: settings.NonInteractive,
			Clients:        client.NewProvider(settings.ServerURL),
		}
		cfg.Router = buildRouteTable()
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
		return nil
	},
}

func buildRouteTable() *router.Table {
	table := router.New()
	table.Register(router.View{Route: sdk.RouteLogin, Public: true, Render: func(context.Context) error {
		return fmt.Errorf("not logged in; run `riderctl auth login`")
	}})
	admin.RegisterViews(table)
	rider.RegisterViews(table)
	shift.RegisterViews(table)
	return table
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", config.DefaultServerURL, "Backend server URL")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable prompts (also set via RIDERCTL_NON_INTERACTIVE=1)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(authcmd.AuthCmd)
	rootCmd.AddCommand(admin.AdminCmd)
	rootCmd.AddCommand(rider.RiderCmd)
	rootCmd.AddCommand(shift.ShiftCmd)
}
