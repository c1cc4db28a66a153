package commands

import (
	"context"
	"fmt"

	authflow "github.com/credport/authflow"
	"github.com/spf13/cobra"
)

var (
	loginEmail     string
	loginPassword  string
	loginRole      string
	loginRegistrar bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with email and password",
	Long: `Authenticate against the portal with email and password.

Examples:
  # Student login
  authctl login -e ada@example.edu -p secret --role student

  # Login through the registrar entry point
  authctl login -e clerk@university.edu -p secret --role registrar --registrar`,
	RunE: runLogin,
}

var (
	adminUsername string
	adminPassword string
)

var adminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Authenticate as a platform administrator",
	RunE:  runAdminLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local admin session markers",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.Flags().StringVar(&loginRole, "role", "student", "Portal role (student, employer, registrar, admin)")
	loginCmd.Flags().BoolVar(&loginRegistrar, "registrar", false, "Use the registrar entry point")

	adminLoginCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "Admin username")
	adminLoginCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Admin password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	role, ok := authflow.ParseRole(loginRole)
	if !ok {
		return fmt.Errorf("unrecognized role %q", loginRole)
	}

	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	req := authflow.PasswordLoginRequest{
		Email:    loginEmail,
		Password: loginPassword,
		Role:     role,
	}

	var result *authflow.FlowResult
	if loginRegistrar {
		result, err = engine.RegistrarLogin(context.Background(), req)
	} else {
		result, err = engine.Login(context.Background(), req)
	}
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.AdminLogin(context.Background(), authflow.AdminLoginRequest{
		Username: adminUsername,
		Password: adminPassword,
	})
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	if err := engine.InvalidateMarkers(context.Background()); err != nil {
		return fmt.Errorf("failed to clear session markers: %w", err)
	}

	fmt.Println("Session markers cleared")
	return nil
}
