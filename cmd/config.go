package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tally-merchant configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new config file with default profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := config.Path()
		if err != nil {
			return err
		}
		if _, statErr := os.Stat(path); statErr == nil && !force {
			return fmt.Errorf("config file already exists at: %s\nUse --force to overwrite", path)
		}

		cfg := config.NewDefault()
		if err := cfg.SaveTo(path); err != nil {
			return err
		}

		return app.Printer.Success(fmt.Sprintf(
			"Config file initialized at: %s\n"+
				"\n"+
				"Default profiles created:\n"+
				"  devnet (active)\n"+
				"  mainnet\n"+
				"  localnet\n"+
				"\n"+
				"Use 'tally-merchant config list' to view configuration\n"+
				"Use 'tally-merchant config set <key> <value>' to customize", path))
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show on-chain global program configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.Client.GetGlobalConfig(context.Background())
		if err != nil {
			return fmt.Errorf("fetching config account: %w", err)
		}
		return app.Printer.SuccessJSON(cfg)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values from the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, _ := cmd.Flags().GetString("profile")

		name := profileName
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
		fmt.Fprintf(&b, "Configuration (profile: %s)\n", name)
		b.WriteString(strings.Repeat("=", 50) + "\n")
		fmt.Fprintf(&b, "RPC URL:       %s\n", profile.RPCURL)
		fmt.Fprintf(&b, "Program ID:    %s\n", orPlaceholder(profile.ProgramID, "(not set)"))
		fmt.Fprintf(&b, "USDC Mint:     %s\n", orPlaceholder(profile.USDCMint, "(not set)"))
		fmt.Fprintf(&b, "Merchant:      %s\n", orPlaceholder(profile.Merchant, "(not set)"))
		fmt.Fprintf(&b, "Wallet Path:   %s", orPlaceholder(profile.WalletPath, "(default)"))
		return app.Printer.Success(b.String())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a specific configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, _ := cmd.Flags().GetString("profile")

		var value string
		var ok bool
		var err error
		if profileName != "" {
			value, ok, err = app.Config.ValueIn(profileName, args[0])
		} else {
			value, ok, err = app.Config.Value(args[0])
		}
		if err != nil {
			return err
		}
		if !ok {
			value = "(not set)"
		}
		return app.Printer.Success(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, _ := cmd.Flags().GetString("profile")

		target := profileName
		if target == "" {
			if app.Config.Defaults.ActiveProfile == "" {
				return config.ErrNoActiveProfile
			}
			target = app.Config.Defaults.ActiveProfile
		}

		if err := app.Config.SetValueIn(target, args[0], args[1]); err != nil {
			return err
		}
		if err := app.Config.Save(); err != nil {
			return err
		}
		return app.Printer.Success(fmt.Sprintf("Set %s = %s (profile: %s)", args[0], args[1], target))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		return app.Printer.Success(path)
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite existing config file")
	configListCmd.Flags().String("profile", "", "show specific profile (defaults to active profile)")
	configGetCmd.Flags().String("profile", "", "get from specific profile (defaults to active profile)")
	configSetCmd.Flags().String("profile", "", "set in specific profile (defaults to active profile)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
