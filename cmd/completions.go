package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tally-pay/tally-cli/internal/completions"
	"github.com/tally-pay/tally-cli/internal/output"
)

var completionsCmd = &cobra.Command{
	Use:       "completions [bash|zsh|fish]",
	Short:     "Install or print shell completion scripts",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shellName := args[0]

		install, _ := cmd.Flags().GetBool("install")
		yes, _ := cmd.Flags().GetBool("yes")
		printOnly, _ := cmd.Flags().GetBool("print")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		uninstall, _ := cmd.Flags().GetBool("uninstall")

		shell, err := completions.ForShell(shellName)
		if err != nil {
			return err
		}

		if uninstall {
			if !shell.Installed() {
				return app.Printer.Success(fmt.Sprintf("No %s completions installed.", shell.Name))
			}
			if err := shell.Uninstall(); err != nil {
				return err
			}
			return app.Printer.Success(fmt.Sprintf("Removed %s", shell.CompletionFile))
		}

		script, err := completionScript(cmd.Root(), shellName)
		if err != nil {
			return err
		}

		if printOnly {
			_, err := app.Printer.Stdout().Write(script)
			return err
		}

		if dryRun {
			msg := fmt.Sprintf("Would write %s", shell.CompletionFile)
			if shell.RCFile != "" {
				msg += fmt.Sprintf("\nWould ensure in %s:\n  %s", shell.RCFile, shell.RCLine)
			}
			return app.Printer.Success(msg)
		}

		// Without flags: guide in a terminal, print the raw script when piped
		// so `tally-merchant completions bash > file` keeps working.
		if !install && !yes {
			if !output.IsTerminal(os.Stdout) {
				_, err := app.Printer.Stdout().Write(script)
				return err
			}
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Install %s completions to %s", shell.Name, shell.CompletionFile),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				app.Printer.Info("not installed; use --print to see the script")
				return nil
			}
		}

		rcModified, err := shell.Install(script)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("Installed %s completions to %s", shell.Name, shell.CompletionFile)
		if rcModified {
			msg += fmt.Sprintf("\nUpdated %s", shell.RCFile)
		}
		if shell.ReloadCommand != "" {
			msg += fmt.Sprintf("\nReload your shell to activate: %s", shell.ReloadCommand)
		}
		return app.Printer.Success(msg)
	},
}

func init() {
	completionsCmd.Flags().Bool("install", false, "install without the interactive prompt")
	completionsCmd.Flags().Bool("yes", false, "assume yes for all prompts")
	completionsCmd.Flags().Bool("print", false, "print the completion script to stdout")
	completionsCmd.Flags().Bool("dry-run", false, "show what would be installed without writing")
	completionsCmd.Flags().Bool("uninstall", false, "remove the installed completion script")
	completionsCmd.MarkFlagsMutuallyExclusive("print", "install", "uninstall", "dry-run")

	rootCmd.AddCommand(completionsCmd)
}

// completionScript renders the cobra-generated completion script for a shell.
func completionScript(root *cobra.Command, shellName string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch shellName {
	case "bash":
		err = root.GenBashCompletionV2(&buf, true)
	case "zsh":
		err = root.GenZshCompletion(&buf)
	case "fish":
		err = root.GenFishCompletion(&buf, true)
	default:
		return nil, fmt.Errorf("unsupported shell %q", shellName)
	}
	if err != nil {
		return nil, fmt.Errorf("generating %s completion script: %w", shellName, err)
	}
	return buf.Bytes(), nil
}
