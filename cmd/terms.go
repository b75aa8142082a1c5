package cmd

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/output"
	"github.com/tally-pay/tally-cli/internal/sdk"
	"github.com/tally-pay/tally-cli/internal/wallet"
)

const (
	microsPerUSDC = 1_000_000
	secondsPerDay = 86_400
	daysPerMonth  = 30
)

var termsCmd = &cobra.Command{
	Use:   "payment-terms",
	Short: "Payment terms management",
}

var termsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new payment terms",
	Long: "Create new payment terms for your merchant.\n\n" +
		"Payment terms define the amount and billing period for recurring USDC\n" +
		"payments. Once created, payers can open agreements against them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		payee, _ := cmd.Flags().GetString("payee")
		termsID, _ := cmd.Flags().GetString("id")
		amountUSDC, _ := cmd.Flags().GetFloat64("amount-usdc")
		periodDays, _ := cmd.Flags().GetUint32("period-days")
		periodMonths, _ := cmd.Flags().GetUint32("period-months")
		authorityPath, _ := cmd.Flags().GetString("authority")

		if err := sdk.ValidateAddress(payee); err != nil {
			return invalidMerchantError(payee)
		}

		var days uint64
		switch {
		case periodMonths > 0:
			days = uint64(periodMonths) * daysPerMonth
		case periodDays > 0:
			days = uint64(periodDays)
		default:
			return fmt.Errorf("either --period-days or --period-months is required")
		}

		if amountUSDC <= 0 || math.IsNaN(amountUSDC) || math.IsInf(amountUSDC, 0) {
			return fmt.Errorf("--amount-usdc must be a positive number")
		}

		walletPath := authorityPath
		if walletPath == "" {
			walletPath = app.Settings.WalletPath
		}
		kp, err := wallet.Load(walletPath)
		if err != nil {
			return err
		}

		res, err := app.Client.CreatePaymentTerms(context.Background(), sdk.CreateTermsParams{
			Payee:         payee,
			Authority:     kp.PublicKey,
			TermsID:       termsID,
			AmountMicros:  uint64(math.Round(amountUSDC * microsPerUSDC)),
			PeriodSeconds: int64(days) * secondsPerDay,
		})
		if err != nil {
			return fmt.Errorf("creating payment terms: %w", err)
		}

		if err := app.Client.WaitForConfirmation(context.Background(), res.Signature, confirmWriter()); err != nil {
			return err
		}

		return app.Printer.Success(fmt.Sprintf(
			"Payment terms created: %s\n"+
				"Transaction: %s", res.PaymentTerms, res.Signature))
	},
}

var termsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all payment terms for a payee",
	RunE: func(cmd *cobra.Command, args []string) error {
		payee, _ := cmd.Flags().GetString("payee")

		if err := sdk.ValidateAddress(payee); err != nil {
			return invalidMerchantError(payee)
		}

		terms, err := app.Client.ListPaymentTerms(context.Background(), payee)
		if err != nil {
			return fmt.Errorf("listing payment terms: %w", err)
		}

		switch app.Printer.Mode() {
		case output.ModeJSON:
			return app.Printer.SuccessJSON(terms)
		case output.ModeCSV:
			rows := make([][]string, 0, len(terms))
			for _, t := range terms {
				rows = append(rows, []string{
					t.Address, t.TermsID,
					formatUSDC(t.AmountMicros),
					fmt.Sprintf("%d", t.PeriodSeconds/secondsPerDay),
					fmt.Sprintf("%t", t.Active),
					fmt.Sprintf("%d", t.Subscribers),
				})
			}
			return app.Printer.CSV([]string{"address", "id", "amount_usdc", "period_days", "active", "subscribers"}, rows)
		default:
			rows := make([][]string, 0, len(terms))
			for _, t := range terms {
				status := "inactive"
				if t.Active {
					status = "active"
				}
				rows = append(rows, []string{
					t.TermsID,
					formatUSDC(t.AmountMicros) + " USDC",
					fmt.Sprintf("%d days", t.PeriodSeconds/secondsPerDay),
					status,
					fmt.Sprintf("%d", t.Subscribers),
					t.Address,
				})
			}
			return output.Table(app.Printer.Stdout(),
				[]string{"ID", "Amount", "Period", "Status", "Subscribers", "Address"}, rows)
		}
	},
}

func init() {
	termsCreateCmd.Flags().String("payee", "", "payee account address")
	termsCreateCmd.Flags().String("id", "", "unique identifier for these payment terms (e.g., 'premium')")
	termsCreateCmd.Flags().Float64("amount-usdc", 0, "payment amount in USDC (e.g., 10.0 for $10/period)")
	termsCreateCmd.Flags().Uint32("period-days", 0, "billing period in days (e.g., 30 for monthly)")
	termsCreateCmd.Flags().Uint32("period-months", 0, "billing period in months (alternative to --period-days)")
	termsCreateCmd.Flags().String("authority", "", "authority keypair path for the payee")
	termsCreateCmd.MarkFlagRequired("payee")
	termsCreateCmd.MarkFlagRequired("id")
	termsCreateCmd.MarkFlagRequired("amount-usdc")
	termsCreateCmd.MarkFlagsMutuallyExclusive("period-days", "period-months")

	termsListCmd.Flags().String("payee", "", "payee account address")
	termsListCmd.MarkFlagRequired("payee")

	termsCmd.AddCommand(termsCreateCmd)
	termsCmd.AddCommand(termsListCmd)
	rootCmd.AddCommand(termsCmd)
}

// formatUSDC renders micro-units as a decimal USDC amount.
func formatUSDC(micros uint64) string {
	return fmt.Sprintf("%d.%06d", micros/microsPerUSDC, micros%microsPerUSDC)
}
