package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/output"
	"github.com/tally-pay/tally-cli/internal/sdk"
	"github.com/tally-pay/tally-cli/internal/wallet"
)

var payeeCmd = &cobra.Command{
	Use:   "payee",
	Short: "Payee account management",
}

var payeeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new merchant account",
	Long: "Initialize a new merchant account on the Tally protocol.\n\n" +
		"This creates your merchant account which will be used to manage payment\n" +
		"terms. For first-time setup, 'tally-merchant init' provides a guided wizard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		authorityPath, _ := cmd.Flags().GetString("authority")
		treasury, _ := cmd.Flags().GetString("treasury")

		if err := sdk.ValidateAddress(treasury); err != nil {
			return fmt.Errorf("invalid treasury account: %w", err)
		}

		walletPath := authorityPath
		if walletPath == "" {
			walletPath = app.Settings.WalletPath
		}
		kp, err := wallet.Load(walletPath)
		if err != nil {
			return err
		}

		res, err := app.Client.InitPayee(context.Background(), sdk.InitPayeeParams{
			Authority: kp.PublicKey,
			Treasury:  treasury,
			USDCMint:  app.Settings.USDCMint,
		})
		if err != nil {
			return fmt.Errorf("initializing merchant: %w", err)
		}

		if err := app.Client.WaitForConfirmation(context.Background(), res.Signature, confirmWriter()); err != nil {
			return err
		}

		// Persist the merchant address so later commands can default to it.
		if app.Config.Defaults.ActiveProfile != "" {
			if err := app.Config.SetMerchant(res.Payee); err == nil {
				if err := app.Config.Save(); err != nil {
					app.Printer.Warn("merchant created but could not be saved to profile: %v", err)
				}
			}
		}

		return app.Printer.Success(fmt.Sprintf(
			"Merchant account created: %s\n"+
				"Transaction: %s\n"+
				"\n"+
				"Saved to active profile. Next:\n"+
				"  tally-merchant payment-terms create --payee %s --id <id> --amount-usdc <amount> --period-days <days>",
			res.Payee, res.Signature, res.Payee))
	},
}

var payeeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show payee account details",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("payee")

		if err := sdk.ValidateAddress(address); err != nil {
			return invalidMerchantError(address)
		}

		payee, err := app.Client.GetPayee(context.Background(), address)
		if err != nil {
			return fmt.Errorf("fetching payee account: %w", err)
		}
		return app.Printer.SuccessJSON(payee)
	},
}

func init() {
	payeeInitCmd.Flags().String("authority", "", "authority keypair path for the merchant")
	payeeInitCmd.Flags().String("treasury", "", "USDC treasury account for receiving payments")
	payeeInitCmd.MarkFlagRequired("treasury")

	payeeShowCmd.Flags().String("payee", "", "payee account address")
	payeeShowCmd.MarkFlagRequired("payee")

	payeeCmd.AddCommand(payeeInitCmd)
	payeeCmd.AddCommand(payeeShowCmd)
	rootCmd.AddCommand(payeeCmd)
}

// confirmWriter returns the progress destination for confirmation polling:
// stderr for interactive human sessions, discarded otherwise.
func confirmWriter() io.Writer {
	if app.Printer.Mode() == output.ModeHuman && output.IsTerminal(os.Stderr) {
		return os.Stderr
	}
	return io.Discard
}
