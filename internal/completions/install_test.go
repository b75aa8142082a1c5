package completions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureLine_AppendsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")
	line := "fpath=(~/.zsh/completions $fpath)"

	wrote, err := EnsureLine(path, line)
	if err != nil {
		t.Fatalf("EnsureLine: %v", err)
	}
	if !wrote {
		t.Error("expected first call to write")
	}

	// Second call is a no-op.
	wrote, err = EnsureLine(path, line)
	if err != nil {
		t.Fatalf("EnsureLine: %v", err)
	}
	if wrote {
		t.Error("expected second call to be a no-op")
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), line); got != 1 {
		t.Errorf("line appears %d times, want 1", got)
	}
}

func TestEnsureLine_PreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")
	os.WriteFile(path, []byte("export EDITOR=vim"), 0o644)

	wrote, err := EnsureLine(path, "new line")
	if err != nil {
		t.Fatalf("EnsureLine: %v", err)
	}
	if !wrote {
		t.Error("expected write")
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "export EDITOR=vim") {
		t.Error("existing content lost")
	}
	if !strings.HasSuffix(content, "new line\n") {
		t.Errorf("content = %q", content)
	}
	// No mashed-together lines when the file lacked a trailing newline.
	if strings.Contains(content, "vimnew") {
		t.Errorf("missing newline separator: %q", content)
	}
}

func TestEnsureLine_MatchesTrimmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zshrc")
	os.WriteFile(path, []byte("  some line  \n"), 0o644)

	wrote, err := EnsureLine(path, "some line")
	if err != nil {
		t.Fatalf("EnsureLine: %v", err)
	}
	if wrote {
		t.Error("whitespace-padded match should count as present")
	}
}

func TestShell_InstallAndUninstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sh, err := ForShell("zsh")
	if err != nil {
		t.Fatalf("ForShell: %v", err)
	}
	if sh.Installed() {
		t.Fatal("should not be installed yet")
	}

	script := []byte("#compdef tally-merchant\n")
	rcModified, err := sh.Install(script)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !rcModified {
		t.Error("expected rc file modification for zsh")
	}
	if !sh.Installed() {
		t.Error("Installed() should report true after install")
	}

	written, err := os.ReadFile(sh.CompletionFile)
	if err != nil {
		t.Fatalf("reading completion file: %v", err)
	}
	if string(written) != string(script) {
		t.Error("completion script content mismatch")
	}

	// Reinstall does not duplicate the rc line.
	rcModified, err = sh.Install(script)
	if err != nil {
		t.Fatalf("reinstall: %v", err)
	}
	if rcModified {
		t.Error("reinstall should not touch the rc file")
	}

	if err := sh.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if sh.Installed() {
		t.Error("still installed after uninstall")
	}
}

func TestForShell_Unsupported(t *testing.T) {
	if _, err := ForShell("powershell"); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestForShell_Layouts(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	bash, err := ForShell("bash")
	if err != nil {
		t.Fatalf("ForShell(bash): %v", err)
	}
	if bash.RCLine != "" {
		t.Error("bash should not need an rc line")
	}
	if filepath.Base(bash.CompletionFile) != BinaryName {
		t.Errorf("bash completion file = %q", bash.CompletionFile)
	}

	fish, err := ForShell("fish")
	if err != nil {
		t.Fatalf("ForShell(fish): %v", err)
	}
	if !strings.HasSuffix(fish.CompletionFile, ".fish") {
		t.Errorf("fish completion file = %q", fish.CompletionFile)
	}
}
