package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/sdk"
	"github.com/tally-pay/tally-cli/internal/wallet"
)

const lamportsPerSOL = 1_000_000_000

// minInitLamports is a rough fee plus rent budget for account creation.
const minInitLamports = 10_000_000

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Guided merchant setup",
	Long: "Walk through merchant account creation step by step: pick a wallet,\n" +
		"check its balance, choose a treasury, and optionally create a first\n" +
		"payment plan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		skipPlan, _ := cmd.Flags().GetBool("skip-plan")

		fmt.Fprintf(app.Printer.Stdout(), "%s\n\n", color.New(color.Bold).Sprint("Tally merchant setup"))
		fmt.Fprintf(app.Printer.Stdout(), "Network: %s (%s)\n\n",
			app.Settings.ActiveProfile, app.Settings.RPCURL)

		kp, err := wizardWallet()
		if err != nil {
			return err
		}

		ctx := context.Background()
		lamports, err := app.Client.GetBalance(ctx, kp.PublicKey)
		if err != nil {
			return fmt.Errorf("checking wallet balance: %w", err)
		}
		fmt.Fprintf(app.Printer.Stdout(), "Wallet %s holds %.4f SOL\n\n",
			kp.PublicKey, float64(lamports)/lamportsPerSOL)
		if lamports < minInitLamports {
			return fmt.Errorf(
				"wallet %s holds %.4f SOL, not enough to create the merchant account\n\n"+
					"Fund it and run 'tally-merchant init' again. On devnet:\n"+
					"  solana airdrop 1 %s",
				kp.PublicKey, float64(lamports)/lamportsPerSOL, kp.PublicKey)
		}

		treasury, err := wizardPrompt("Treasury account (receives USDC payments)", sdk.ValidateAddress)
		if err != nil {
			return err
		}

		res, err := app.Client.InitPayee(ctx, sdk.InitPayeeParams{
			Authority: kp.PublicKey,
			Treasury:  treasury,
			USDCMint:  app.Settings.USDCMint,
		})
		if err != nil {
			return fmt.Errorf("initializing merchant: %w", err)
		}
		if err := app.Client.WaitForConfirmation(ctx, res.Signature, confirmWriter()); err != nil {
			return err
		}

		fmt.Fprintf(app.Printer.Stdout(), "\nMerchant account created: %s\n", res.Payee)

		if app.Config.Defaults.ActiveProfile != "" {
			if err := app.Config.SetMerchant(res.Payee); err == nil {
				if err := app.Config.Save(); err != nil {
					app.Printer.Warn("merchant created but could not be saved to profile: %v", err)
				} else {
					fmt.Fprintf(app.Printer.Stdout(), "Saved to profile %q.\n", app.Config.Defaults.ActiveProfile)
				}
			}
		}

		if skipPlan {
			return nil
		}
		return wizardPlan(ctx, res.Payee, kp.PublicKey)
	},
}

func init() {
	initCmd.Flags().Bool("skip-plan", false, "skip the first payment plan step")
	rootCmd.AddCommand(initCmd)
}

// wizardWallet lets the user confirm the default wallet or name another one.
func wizardWallet() (*wallet.Keypair, error) {
	path := app.Settings.WalletPath
	if path == "" {
		var err error
		path, err = wallet.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	sel := promptui.Select{
		Label: fmt.Sprintf("Authority wallet (%s)", path),
		Items: []string{"Use this wallet", "Enter another path"},
	}
	choice, _, err := sel.Run()
	if err != nil {
		return nil, fmt.Errorf("setup cancelled")
	}
	if choice == 1 {
		path, err = wizardPrompt("Wallet keypair path", func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("path is required")
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return wallet.Load(path)
}

// wizardPlan optionally creates the merchant's first payment plan.
func wizardPlan(ctx context.Context, payee, authority string) error {
	confirm := promptui.Prompt{
		Label:     "Create your first payment plan now",
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		fmt.Fprintf(app.Printer.Stdout(), "\nYou can create one later:\n"+
			"  tally-merchant payment-terms create --payee %s --id <id> --amount-usdc <amount> --period-days <days>\n", payee)
		return nil
	}

	id, err := wizardPrompt("Plan ID (e.g. pro-monthly)", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("plan ID is required")
		}
		return nil
	})
	if err != nil {
		return err
	}

	amountStr, err := wizardPrompt("Amount per period in USDC", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("enter a decimal amount")
		}
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("amount must be positive")
		}
		return nil
	})
	if err != nil {
		return err
	}
	amount, _ := strconv.ParseFloat(amountStr, 64)

	daysStr, err := wizardPrompt("Billing period in days", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("enter a positive whole number of days")
		}
		return nil
	})
	if err != nil {
		return err
	}
	days, _ := strconv.ParseInt(daysStr, 10, 64)

	res, err := app.Client.CreatePaymentTerms(ctx, sdk.CreateTermsParams{
		Payee:         payee,
		Authority:     authority,
		TermsID:       id,
		AmountMicros:  uint64(math.Round(amount * microsPerUSDC)),
		PeriodSeconds: days * secondsPerDay,
	})
	if err != nil {
		return fmt.Errorf("creating payment plan: %w", err)
	}
	if err := app.Client.WaitForConfirmation(ctx, res.Signature, confirmWriter()); err != nil {
		return err
	}

	fmt.Fprintf(app.Printer.Stdout(), "\nPayment plan created: %s\n"+
		"Share this address with payers to let them subscribe.\n", res.PaymentTerms)
	return nil
}

func wizardPrompt(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	value, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("setup cancelled")
	}
	return strings.TrimSpace(value), nil
}
