// Package completions installs shell completion scripts and keeps the shell
// startup file pointing at them. Installation is idempotent: re-running it
// never duplicates the rc line.
package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BinaryName is the name completions are installed under.
const BinaryName = "tally-merchant"

// Shell describes where one shell keeps completion scripts.
type Shell struct {
	Name           string
	CompletionDir  string
	CompletionFile string

	// RCFile and RCLine are empty for shells that pick completions up
	// automatically from CompletionDir.
	RCFile string
	RCLine string

	ReloadCommand string
}

// ForShell returns the install layout for a supported shell.
func ForShell(name string) (*Shell, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	switch name {
	case "bash":
		dir := filepath.Join(home, ".local", "share", "bash-completion", "completions")
		return &Shell{
			Name:           "bash",
			CompletionDir:  dir,
			CompletionFile: filepath.Join(dir, BinaryName),
			ReloadCommand:  "exec bash",
		}, nil
	case "zsh":
		dir := filepath.Join(home, ".zsh", "completions")
		return &Shell{
			Name:           "zsh",
			CompletionDir:  dir,
			CompletionFile: filepath.Join(dir, "_"+BinaryName),
			RCFile:         filepath.Join(home, ".zshrc"),
			RCLine:         fmt.Sprintf("fpath=(%s $fpath); autoload -U compinit && compinit", dir),
			ReloadCommand:  "exec zsh",
		}, nil
	case "fish":
		dir := filepath.Join(home, ".config", "fish", "completions")
		return &Shell{
			Name:           "fish",
			CompletionDir:  dir,
			CompletionFile: filepath.Join(dir, BinaryName+".fish"),
			ReloadCommand:  "exec fish",
		}, nil
	}
	return nil, fmt.Errorf("unsupported shell %q (expected bash, zsh, or fish)", name)
}

// Installed reports whether a completion script is already in place.
func (s *Shell) Installed() bool {
	_, err := os.Stat(s.CompletionFile)
	return err == nil
}

// Install writes the completion script and, when the shell needs it, adds the
// rc line. Returns whether the rc file was modified.
func (s *Shell) Install(script []byte) (bool, error) {
	if err := os.MkdirAll(s.CompletionDir, 0o755); err != nil {
		return false, fmt.Errorf("creating completion directory %s: %w", s.CompletionDir, err)
	}
	if err := os.WriteFile(s.CompletionFile, script, 0o644); err != nil {
		return false, fmt.Errorf("writing completion file %s: %w", s.CompletionFile, err)
	}

	if s.RCFile == "" || s.RCLine == "" {
		return false, nil
	}
	return EnsureLine(s.RCFile, s.RCLine)
}

// Uninstall removes the completion script. The rc line is left alone; it is
// harmless without the script and removing it risks mangling user edits.
func (s *Shell) Uninstall() error {
	if err := os.Remove(s.CompletionFile); err != nil {
		return fmt.Errorf("removing completion file %s: %w", s.CompletionFile, err)
	}
	return nil
}

// EnsureLine appends line to the file at path unless an identical line is
// already present. The file is created if missing. Returns whether it wrote.
func EnsureLine(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return false, nil
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	prefix := ""
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		prefix = "\n"
	}
	if _, err := fmt.Fprintf(f, "%s%s\n", prefix, line); err != nil {
		return false, fmt.Errorf("appending to %s: %w", path, err)
	}
	return true, nil
}
