// Package commands implements the CLI commands for exercising the
// credential portal authentication flows from a terminal.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	authflow "github.com/credport/authflow"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "authctl",
	Short: "authctl - credential portal authentication client",
	Long: `authctl drives the credential portal authentication flows from the
command line: password login, registration with OTP verification,
wallet login, and first-time password setup.

Configuration sources (in order of precedence):
 1. CLI flags (highest priority)
 2. Environment variables (AUTHCTL_*)
 3. Configuration file (YAML)
 4. Default values (lowest priority)

Use "authctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.authctl.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "portal API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout")
	rootCmd.PersistentFlags().String("redis-addr", "", "redis address for session markers (optional)")

	mustBindFlag("base_url", "base-url")
	mustBindFlag("timeout", "timeout")
	mustBindFlag("redis_addr", "redis-addr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(adminLoginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyOTPCmd)
	rootCmd.AddCommand(resendOTPCmd)
	rootCmd.AddCommand(setPasswordCmd)
	rootCmd.AddCommand(walletLoginCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
}

func mustBindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".authctl")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("AUTHCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("base_url", "http://localhost:5000/api")
	viper.SetDefault("timeout", 15*time.Second)

	// Missing config file is fine, flags and env still apply.
	_ = viper.ReadInConfig()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("authctl %s (%s)\n", Version, Commit)
	},
}

// buildEngine assembles an engine from the resolved configuration.
// The CLI navigator prints the destination instead of navigating,
// and the navigation delay is zeroed because nothing renders here.
func buildEngine() (*authflow.Engine, error) {
	cfg := authflow.DefaultConfig()
	cfg.HTTP.BaseURL = viper.GetString("base_url")
	cfg.HTTP.Timeout = viper.GetDuration("timeout")
	cfg.Routes.NavigationDelay = 0

	builder := authflow.New().
		WithConfig(cfg).
		WithNavigator(authflow.NavigatorFunc(func(_ context.Context, route authflow.RouteTarget) error {
			fmt.Printf("-> %s\n", route)
			return nil
		}))

	if addr := viper.GetString("redis_addr"); addr != "" {
		builder = builder.WithRedis(redis.NewClient(&redis.Options{Addr: addr}))
	}

	return builder.Build()
}

// printResult renders a flow result as indented JSON on stdout.
func printResult(result *authflow.FlowResult) {
	if result == nil {
		return
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", result)
		return
	}
	fmt.Println(string(out))
}

// reportFailure prints the user-facing message for a flow error and
// returns the error unchanged for the command runner.
func reportFailure(err error) error {
	PrintErr("%s", authflow.UserMessage(err))
	return err
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}
