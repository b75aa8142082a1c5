package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tally-pay/tally-cli/internal/config"
	"github.com/tally-pay/tally-cli/internal/output"
	"github.com/tally-pay/tally-cli/internal/sdk"
)

// App holds shared dependencies for all subcommands.
type App struct {
	Config   *config.File
	Defaults config.EnvDefaults
	Settings *config.Settings
	Client   *sdk.Client
	Printer  *output.Printer
	Logger   *zap.Logger
}

var (
	app           App
	flagRPCURL    string
	flagProgramID string
	flagUSDCMint  string
	flagOutput    string
	flagNoColor   bool
	flagVerbose   bool
	version       string
)

var rootCmd = &cobra.Command{
	Use:           "tally-merchant",
	Short:         "Command-line interface for the Tally subscription platform",
	Long:          "Manage merchants, payment terms, and payment agreements\non the Tally subscription platform.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		app.Defaults = config.LoadEnvDefaults()

		// The printer must exist before anything can fail, so its mode comes
		// from the flag and env alone; the persisted default is folded in by
		// the resolver below for commands that get that far.
		format := flagOutput
		if format == "" {
			format = app.Defaults.OutputFormat
		}
		normalized, err := config.NormalizeOutputFormat(format)
		if err != nil {
			app.Printer = output.NewPrinter(os.Stdout, os.Stderr, output.ModeHuman, flagNoColor)
			return err
		}
		app.Printer = output.NewPrinter(os.Stdout, os.Stderr, output.ModeFromFormat(normalized), flagNoColor)

		app.Logger = zap.NewNop()
		if flagVerbose {
			logger, err := zap.NewDevelopment()
			if err == nil {
				app.Logger = logger
			}
		}

		if skipConfig(cmd) {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.Config = cfg

		opts := []config.ResolveOption{}
		if commandNeedsClient(cmd) {
			opts = append(opts, config.RequireProgramID())
		}
		settings, err := config.Resolve(flags(), app.Defaults, cfg, opts...)
		if err != nil {
			return err
		}
		app.Settings = settings
		app.Printer = output.NewPrinter(os.Stdout, os.Stderr,
			output.ModeFromFormat(settings.OutputFormat), flagNoColor)

		if !commandNeedsClient(cmd) {
			return nil
		}

		client, err := sdk.NewClient(settings.RPCURL, settings.ProgramID,
			sdk.WithLogger(app.Logger))
		if err != nil {
			return err
		}
		app.Client = client
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRPCURL, "rpc-url", "", "RPC endpoint URL")
	rootCmd.PersistentFlags().StringVar(&flagProgramID, "program-id", "", "program ID of the subscription program")
	rootCmd.PersistentFlags().StringVar(&flagUSDCMint, "usdc-mint", "", "USDC mint address")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "output format: human, json, or csv")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output (NO_COLOR is also honored)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func flags() config.Flags {
	return config.Flags{
		RPCURL:    flagRPCURL,
		ProgramID: flagProgramID,
		USDCMint:  flagUSDCMint,
		Output:    flagOutput,
	}
}

// Execute runs the root command. Called from main.
func Execute(v string) error {
	version = v
	rootCmd.Version = v

	err := rootCmd.Execute()
	if err != nil {
		if app.Printer == nil {
			app.Printer = output.NewPrinter(os.Stdout, os.Stderr, output.ModeHuman, flagNoColor)
		}
		app.Printer.Failure(err)
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
	return err
}

// skipConfig returns true for commands that need neither the config file nor
// the resolver.
func skipConfig(cmd *cobra.Command) bool {
	name := fullCmdName(cmd)
	switch name {
	case "tally-merchant", "tally-merchant help", "tally-merchant completions":
		return true
	// config init must work over a corrupt or missing file; config path
	// touches nothing but the path computation.
	case "tally-merchant config init", "tally-merchant config path":
		return true
	}
	return strings.HasPrefix(name, "tally-merchant completions ")
}

// commandNeedsClient returns true for commands that contact the ledger.
func commandNeedsClient(cmd *cobra.Command) bool {
	name := fullCmdName(cmd)
	if name == "tally-merchant config show" {
		return true
	}
	for _, prefix := range []string{
		"tally-merchant init",
		"tally-merchant payee",
		"tally-merchant payment-terms",
		"tally-merchant agreement",
		"tally-merchant dashboard",
	} {
		if name == prefix || strings.HasPrefix(name, prefix+" ") {
			return true
		}
	}
	return false
}

func fullCmdName(cmd *cobra.Command) string {
	var parts []string
	for c := cmd; c != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	return strings.Join(parts, " ")
}
