package commands

import (
	"context"
	"fmt"

	authflow "github.com/credport/authflow"
	"github.com/spf13/cobra"
)

var (
	walletAddress   string
	walletSignature string
	walletMessage   string
	walletChallenge bool
)

var walletLoginCmd = &cobra.Command{
	Use:   "wallet-login",
	Short: "Authenticate with a wallet signature",
	Long: `Authenticate by signing a challenge message with a wallet key.

The exchange has two steps: generate a challenge, sign it out of band,
then submit the signature together with the exact challenge text.

Examples:
  # Step 1: print a challenge for the wallet to sign
  authctl wallet-login --address 0xabc... --challenge

  # Step 2: submit the signed challenge
  authctl wallet-login --address 0xabc... --message "$CHALLENGE" --signature "$SIG"`,
	RunE: runWalletLogin,
}

func init() {
	walletLoginCmd.Flags().StringVar(&walletAddress, "address", "", "Wallet address")
	walletLoginCmd.Flags().StringVar(&walletSignature, "signature", "", "Signature over the challenge message")
	walletLoginCmd.Flags().StringVar(&walletMessage, "message", "", "Challenge message that was signed")
	walletLoginCmd.Flags().BoolVar(&walletChallenge, "challenge", false, "Print a fresh challenge and exit")
}

func runWalletLogin(cmd *cobra.Command, args []string) error {
	if walletChallenge {
		if walletAddress == "" {
			return fmt.Errorf("--address is required to generate a challenge")
		}
		fmt.Println(authflow.WalletChallenge(walletAddress))
		return nil
	}

	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.WalletLogin(context.Background(), authflow.WalletLoginRequest{
		Address:   walletAddress,
		Signature: walletSignature,
		Message:   walletMessage,
	})
	if err != nil {
		return reportFailure(err)
	}

	printResult(result)
	return nil
}
