package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/output"
	"github.com/tally-pay/tally-cli/internal/sdk"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Merchant dashboard views",
}

var dashboardOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize a merchant's plans and subscribers",
	RunE: func(cmd *cobra.Command, args []string) error {
		merchant, err := merchantArg(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		payee, err := app.Client.GetPayee(ctx, merchant)
		if err != nil {
			return fmt.Errorf("fetching merchant account: %w", err)
		}
		terms, err := app.Client.ListPaymentTerms(ctx, merchant)
		if err != nil {
			return fmt.Errorf("listing payment terms: %w", err)
		}

		var activePlans int
		var subscribers uint32
		for _, t := range terms {
			if t.Active {
				activePlans++
			}
			subscribers += t.Subscribers
		}

		type overview struct {
			Merchant    string `json:"merchant"`
			Treasury    string `json:"treasury"`
			Plans       int    `json:"plans"`
			ActivePlans int    `json:"active_plans"`
			Subscribers uint32 `json:"subscribers"`
			TotalVolume string `json:"total_volume_usdc"`
		}
		o := overview{
			Merchant:    payee.Address,
			Treasury:    payee.Treasury,
			Plans:       len(terms),
			ActivePlans: activePlans,
			Subscribers: subscribers,
			TotalVolume: formatUSDC(payee.TotalVolume),
		}

		switch app.Printer.Mode() {
		case output.ModeJSON:
			return app.Printer.SuccessJSON(o)
		case output.ModeCSV:
			return app.Printer.CSV(
				[]string{"merchant", "treasury", "plans", "active_plans", "subscribers", "total_volume_usdc"},
				[][]string{{
					o.Merchant, o.Treasury,
					fmt.Sprintf("%d", o.Plans),
					fmt.Sprintf("%d", o.ActivePlans),
					fmt.Sprintf("%d", o.Subscribers),
					o.TotalVolume,
				}},
			)
		default:
			return output.Table(app.Printer.Stdout(),
				[]string{"Merchant", "Plans", "Active", "Subscribers", "Total Volume"},
				[][]string{{
					o.Merchant,
					fmt.Sprintf("%d", o.Plans),
					fmt.Sprintf("%d", o.ActivePlans),
					fmt.Sprintf("%d", o.Subscribers),
					o.TotalVolume + " USDC",
				}},
			)
		}
	},
}

var dashboardAnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show per-plan subscription analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, _ := cmd.Flags().GetString("plan")
		if err := sdk.ValidateAddress(plan); err != nil {
			return invalidTermsError(plan)
		}

		ctx := context.Background()
		agreements, err := app.Client.ListAgreements(ctx, plan)
		if err != nil {
			return fmt.Errorf("listing agreements: %w", err)
		}

		var active, cancelled int
		var totalPaid uint64
		for _, a := range agreements {
			switch a.Status {
			case "active":
				active++
			case "cancelled":
				cancelled++
			}
			totalPaid += a.TotalPaid
		}

		type analytics struct {
			Plan       string `json:"plan"`
			Agreements int    `json:"agreements"`
			Active     int    `json:"active"`
			Cancelled  int    `json:"cancelled"`
			TotalPaid  string `json:"total_paid_usdc"`
		}
		a := analytics{
			Plan:       plan,
			Agreements: len(agreements),
			Active:     active,
			Cancelled:  cancelled,
			TotalPaid:  formatUSDC(totalPaid),
		}

		switch app.Printer.Mode() {
		case output.ModeJSON:
			return app.Printer.SuccessJSON(a)
		case output.ModeCSV:
			return app.Printer.CSV(
				[]string{"plan", "agreements", "active", "cancelled", "total_paid_usdc"},
				[][]string{{
					a.Plan,
					fmt.Sprintf("%d", a.Agreements),
					fmt.Sprintf("%d", a.Active),
					fmt.Sprintf("%d", a.Cancelled),
					a.TotalPaid,
				}},
			)
		default:
			return output.Table(app.Printer.Stdout(),
				[]string{"Plan", "Agreements", "Active", "Cancelled", "Total Paid"},
				[][]string{{
					a.Plan,
					fmt.Sprintf("%d", a.Agreements),
					fmt.Sprintf("%d", a.Active),
					fmt.Sprintf("%d", a.Cancelled),
					a.TotalPaid + " USDC",
				}},
			)
		}
	},
}

var dashboardEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent merchant events",
	RunE: func(cmd *cobra.Command, args []string) error {
		merchant, err := merchantArg(cmd)
		if err != nil {
			return err
		}

		since := app.Defaults.EventsSinceTimestamp(time.Now().Unix())
		if raw, _ := cmd.Flags().GetString("since"); raw != "" {
			var err error
			since, err = parseSince(raw, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
		}

		events, err := app.Client.Events(context.Background(), merchant, since)
		if err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}

		switch app.Printer.Mode() {
		case output.ModeJSON:
			return app.Printer.SuccessJSON(events)
		case output.ModeCSV:
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{
					fmt.Sprintf("%d", e.Timestamp),
					e.Kind, e.Agreement,
					formatUSDC(e.Amount),
					e.Signature,
				})
			}
			return app.Printer.CSV([]string{"timestamp", "kind", "agreement", "amount_usdc", "signature"}, rows)
		default:
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{
					time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339),
					e.Kind,
					orPlaceholder(e.Agreement, "-"),
					formatUSDC(e.Amount) + " USDC",
					e.Signature,
				})
			}
			return output.Table(app.Printer.Stdout(),
				[]string{"Time", "Kind", "Agreement", "Amount", "Signature"}, rows)
		}
	},
}

var dashboardSubscriptionsCmd = &cobra.Command{
	Use:   "subscriptions",
	Short: "List subscriptions across all of a merchant's plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		merchant, err := merchantArg(cmd)
		if err != nil {
			return err
		}
		activeOnly, _ := cmd.Flags().GetBool("active-only")

		agreements, err := app.Client.ListSubscriptions(context.Background(), merchant, activeOnly)
		if err != nil {
			return fmt.Errorf("listing subscriptions: %w", err)
		}
		return renderAgreements(agreements)
	},
}

// merchantArg resolves the merchant address from the --merchant flag, falling
// back to the merchant saved in the active profile.
func merchantArg(cmd *cobra.Command) (string, error) {
	merchant, _ := cmd.Flags().GetString("merchant")
	if merchant == "" {
		merchant = savedMerchant()
	}
	if merchant == "" {
		return "", fmt.Errorf(
			"no merchant address given\n\n" +
				"Pass one with --merchant, or save one to the active profile:\n" +
				"  tally-merchant config set merchant <ADDRESS>")
	}
	if err := sdk.ValidateAddress(merchant); err != nil {
		return "", invalidMerchantError(merchant)
	}
	return merchant, nil
}

func init() {
	dashboardOverviewCmd.Flags().String("merchant", "", "merchant (payee) account address")

	dashboardAnalyticsCmd.Flags().String("plan", "", "payment terms account address")
	dashboardAnalyticsCmd.MarkFlagRequired("plan")

	dashboardEventsCmd.Flags().String("merchant", "", "merchant (payee) account address")
	dashboardEventsCmd.Flags().String("since", "", "event lower bound: unix seconds, YYYY-MM-DD, today, yesterday, -Nd, or -Nh")

	dashboardSubscriptionsCmd.Flags().String("merchant", "", "merchant (payee) account address")
	dashboardSubscriptionsCmd.Flags().Bool("active-only", false, "only list active subscriptions")

	dashboardCmd.AddCommand(dashboardOverviewCmd)
	dashboardCmd.AddCommand(dashboardAnalyticsCmd)
	dashboardCmd.AddCommand(dashboardEventsCmd)
	dashboardCmd.AddCommand(dashboardSubscriptionsCmd)
	rootCmd.AddCommand(dashboardCmd)
}
