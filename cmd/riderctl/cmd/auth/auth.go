package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plunoo/riderapp/cmd/riderctl/internal/config"
)

// AuthCmd is the parent command for session management.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
	Long:  `Log in, log out, inspect the active session, or impersonate another account.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(impersonateCmd)
}

// resolvePassword takes the flag value or prompts on the terminal. In
// non-interactive mode the flag is mandatory.
func resolvePassword(cfg *config.GlobalConfig, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.NonInteractive {
		return "", fmt.Errorf("--password is required in non-interactive mode")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(raw), nil
}
