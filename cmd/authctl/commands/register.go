package commands

import (
	"context"
	"fmt"

	authflow "github.com/credport/authflow"
	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerRole     string
	registerOrg      string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new portal account",
	Long: `Create a new portal account and trigger OTP delivery.

Examples:
  # Student signup
  authctl register -n "Ada Lovelace" -e ada@example.edu -p secret --role student

  # Employer signup with organization
  authctl register -n "Grace Hopper" -e grace@acme.com -p secret --role employer --org "Acme Corp"`,
	RunE: runRegister,
}

var (
	otpEmail string
	otpCode  string
)

var verifyOTPCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Verify the one-time code sent during registration",
	RunE:  runVerifyOTP,
}

var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Request a fresh one-time code",
	RunE:  runResendOTP,
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Full name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password")
	registerCmd.Flags().StringVar(&registerRole, "role", "student", "Portal role (student or employer)")
	registerCmd.Flags().StringVar(&registerOrg, "org", "", "Organization name (employer accounts)")

	verifyOTPCmd.Flags().StringVarP(&otpEmail, "email", "e", "", "Account email")
	verifyOTPCmd.Flags().StringVar(&otpCode, "code", "", "One-time code")

	resendOTPCmd.Flags().StringVarP(&otpEmail, "email", "e", "", "Account email")
}

func runRegister(cmd *cobra.Command, args []string) error {
	role, ok := authflow.ParseRole(registerRole)
	if !ok {
		return fmt.Errorf("unrecognized role %q", registerRole)
	}

	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.Register(context.Background(), authflow.RegisterRequest{
		Name:             registerName,
		Email:            registerEmail,
		Password:         registerPassword,
		ConfirmPassword:  registerPassword,
		Role:             role,
		OrganizationName: registerOrg,
	})
	if err != nil {
		return reportFailure(err)
	}

	if result != nil && result.Response != nil && result.Response.DevOTP != "" {
		fmt.Printf("Development OTP: %s\n", result.Response.DevOTP)
	}
	printResult(result)
	return nil
}

func runVerifyOTP(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.VerifyOTP(context.Background(), authflow.OTPVerifyRequest{
		Email: otpEmail,
		OTP:   otpCode,
	})
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}

func runResendOTP(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.ResendOTP(context.Background(), authflow.OTPResendRequest{Email: otpEmail})
	if err != nil {
		return reportFailure(err)
	}

	if result != nil && result.Response != nil && result.Response.DevOTP != "" {
		fmt.Printf("Development OTP: %s\n", result.Response.DevOTP)
	}
	fmt.Println("One-time code resent")
	return nil
}
