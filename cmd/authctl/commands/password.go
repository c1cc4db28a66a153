package commands

import (
	"context"
	"fmt"

	authflow "github.com/credport/authflow"
	"github.com/spf13/cobra"
)

var setPasswordValue string

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set a password for an account in pending setup",
	Long: `Set a first password for an account created through Google or wallet
login. The command re-fetches the identity afterwards and prints the
final route.`,
	RunE: runSetPassword,
}

func init() {
	setPasswordCmd.Flags().StringVarP(&setPasswordValue, "password", "p", "", "New password")
}

func runSetPassword(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.SetPassword(context.Background(), authflow.SetPasswordRequest{
		Password:        setPasswordValue,
		ConfirmPassword: setPasswordValue,
	})
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}
