package commands

import (
	"context"
	"fmt"

	"github.com/credport/authflow/token"
	"github.com/spf13/cobra"
)

var whoamiToken string

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Long: `Resolve the current session against the portal and print the
identity state. With --token, inspect a bearer token locally instead
of calling the portal (claims are printed without verification).`,
	RunE: runWhoami,
}

func init() {
	whoamiCmd.Flags().StringVar(&whoamiToken, "token", "", "Inspect this token locally instead of querying the portal")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if whoamiToken != "" {
		info, err := token.Inspect(whoamiToken)
		if err != nil {
			return fmt.Errorf("failed to inspect token: %w", err)
		}
		fmt.Printf("Subject:    %s\n", info.Subject)
		fmt.Printf("Role:       %s\n", info.Role)
		if !info.IssuedAt.IsZero() {
			fmt.Printf("Issued at:  %s\n", info.IssuedAt)
		}
		if !info.ExpiresAt.IsZero() {
			fmt.Printf("Expires at: %s\n", info.ExpiresAt)
		}
		return nil
	}

	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.ResolveSession(context.Background())
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}
