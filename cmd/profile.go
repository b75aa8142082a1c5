package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/config"
	"github.com/tally-pay/tally-cli/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		listed := app.Config.ListProfiles()

		switch app.Printer.Mode() {
		case output.ModeJSON:
			type row struct {
				Name    string         `json:"name"`
				Active  bool           `json:"active"`
				Profile config.Profile `json:"profile"`
			}
			rows := make([]row, 0, len(listed))
			for _, lp := range listed {
				rows = append(rows, row{Name: lp.Name, Active: lp.Active, Profile: lp.Profile})
			}
			return app.Printer.SuccessJSON(rows)
		case output.ModeCSV:
			rows := make([][]string, 0, len(listed))
			for _, lp := range listed {
				rows = append(rows, []string{
					lp.Name,
					fmt.Sprintf("%t", lp.Active),
					lp.Profile.RPCURL,
					lp.Profile.ProgramID,
					lp.Profile.USDCMint,
					lp.Profile.Merchant,
				})
			}
			return app.Printer.CSV([]string{"name", "active", "rpc_url", "program_id", "usdc_mint", "merchant"}, rows)
		default:
			rows := make([][]string, 0, len(listed))
			for _, lp := range listed {
				name := lp.Name
				if lp.Active {
					name += " (active)"
				}
				rows = append(rows, []string{
					name,
					lp.Profile.RPCURL,
					orPlaceholder(lp.Profile.ProgramID, "-"),
					orPlaceholder(lp.Profile.Merchant, "-"),
				})
			}
			return output.Table(app.Printer.Stdout(), []string{"Profile", "RPC URL", "Program ID", "Merchant"}, rows)
		}
	},
}

var profileActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show active profile name",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := app.Config.Defaults.ActiveProfile
		if name == "" {
			name = "(none)"
		}
		return app.Printer.Success(name)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Show specific profile configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		var profile config.Profile
		if name == "" {
			var ok bool
			profile, ok = app.Config.ActiveProfile()
			if !ok {
				return config.ErrNoActiveProfile
			}
			name = app.Config.Defaults.ActiveProfile
		} else {
			var ok bool
			profile, ok = app.Config.Profile(name)
			if !ok {
				return &config.ProfileNotFoundError{Name: name, Known: app.Config.ProfileNames()}
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", name)
		fmt.Fprintf(&b, "  RPC URL:     %s\n", profile.RPCURL)
		fmt.Fprintf(&b, "  Program ID:  %s\n", orPlaceholder(profile.ProgramID, "(not set)"))
		fmt.Fprintf(&b, "  USDC Mint:   %s\n", orPlaceholder(profile.USDCMint, "(not set)"))
		fmt.Fprintf(&b, "  Merchant:    %s\n", orPlaceholder(profile.Merchant, "(not set)"))
		fmt.Fprintf(&b, "  Wallet Path: %s", orPlaceholder(profile.WalletPath, "(default)"))
		return app.Printer.Success(b.String())
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Set active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Config.UseProfile(args[0]); err != nil {
			return err
		}
		if err := app.Config.Save(); err != nil {
			return err
		}
		return app.Printer.Success(fmt.Sprintf("Active profile set to: %s", args[0]))
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpcURL, _ := cmd.Flags().GetString("rpc-url")
		programID, _ := cmd.Flags().GetString("program-id")
		usdcMint, _ := cmd.Flags().GetString("usdc-mint")

		if err := app.Config.CreateProfile(args[0], rpcURL, programID, usdcMint); err != nil {
			return err
		}
		if err := app.Config.Save(); err != nil {
			return err
		}
		return app.Printer.Success(fmt.Sprintf(
			"Profile %q created with:\n"+
				"  RPC URL: %s\n"+
				"\n"+
				"Use 'tally-merchant config profile use %s' to activate", args[0], rpcURL, args[0]))
	},
}

func init() {
	profileCreateCmd.Flags().String("rpc-url", "", "RPC URL for this profile")
	profileCreateCmd.Flags().String("program-id", "", "program ID (optional)")
	profileCreateCmd.Flags().String("usdc-mint", "", "USDC mint address (optional)")
	profileCreateCmd.MarkFlagRequired("rpc-url")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileActiveCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileCreateCmd)
	configCmd.AddCommand(profileCmd)
}
