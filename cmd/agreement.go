package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/output"
	"github.com/tally-pay/tally-cli/internal/sdk"
)

var agreementCmd = &cobra.Command{
	Use:   "agreement",
	Short: "Payment agreement management",
}

var agreementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment agreements for payment terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, _ := cmd.Flags().GetString("payment-terms")

		if err := sdk.ValidateAddress(terms); err != nil {
			return invalidTermsError(terms)
		}

		agreements, err := app.Client.ListAgreements(context.Background(), terms)
		if err != nil {
			return fmt.Errorf("listing agreements: %w", err)
		}
		return renderAgreements(agreements)
	},
}

var agreementShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show payment agreement account details",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("agreement")

		if err := sdk.ValidateAddress(address); err != nil {
			return invalidAgreementError(address)
		}

		agreement, err := app.Client.GetAgreement(context.Background(), address)
		if err != nil {
			return fmt.Errorf("fetching agreement account: %w", err)
		}
		return app.Printer.SuccessJSON(agreement)
	},
}

func init() {
	agreementListCmd.Flags().String("payment-terms", "", "payment terms account address")
	agreementListCmd.MarkFlagRequired("payment-terms")

	agreementShowCmd.Flags().String("agreement", "", "payment agreement account address")
	agreementShowCmd.MarkFlagRequired("agreement")

	agreementCmd.AddCommand(agreementListCmd)
	agreementCmd.AddCommand(agreementShowCmd)
	rootCmd.AddCommand(agreementCmd)
}

func renderAgreements(agreements []sdk.Agreement) error {
	switch app.Printer.Mode() {
	case output.ModeJSON:
		return app.Printer.SuccessJSON(agreements)
	case output.ModeCSV:
		rows := make([][]string, 0, len(agreements))
		for _, a := range agreements {
			rows = append(rows, []string{
				a.Address, a.Payer, a.Status,
				fmt.Sprintf("%d", a.NextDueAt),
				fmt.Sprintf("%d", a.PaidPeriods),
				formatUSDC(a.TotalPaid),
			})
		}
		return app.Printer.CSV([]string{"address", "payer", "status", "next_due_at", "paid_periods", "total_paid_usdc"}, rows)
	default:
		rows := make([][]string, 0, len(agreements))
		for _, a := range agreements {
			nextDue := "-"
			if a.NextDueAt > 0 {
				nextDue = time.Unix(a.NextDueAt, 0).UTC().Format("2006-01-02")
			}
			rows = append(rows, []string{
				a.Payer, a.Status, nextDue,
				fmt.Sprintf("%d", a.PaidPeriods),
				formatUSDC(a.TotalPaid) + " USDC",
				a.Address,
			})
		}
		return output.Table(app.Printer.Stdout(),
			[]string{"Payer", "Status", "Next Due", "Paid Periods", "Total Paid", "Address"}, rows)
	}
}
