package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := NewDefault()
	cfg.Profiles["staging"] = Profile{
		RPCURL:     "https://staging.rpc.example.com",
		ProgramID:  "TaLLyProg1111111111111111111111111111111111",
		USDCMint:   "M1nt11111111111111111111111111111111111111",
		Merchant:   "Merch1111111111111111111111111111111111111",
		WalletPath: "~/wallets/staging.json",
	}
	cfg.Defaults.WalletPath = "~/wallets/default.json"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != FilePermissions {
		t.Errorf("permissions = %o, want %o", perm, FilePermissions)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if loaded.Version != cfg.Version {
		t.Errorf("Version = %q, want %q", loaded.Version, cfg.Version)
	}
	if loaded.Defaults != cfg.Defaults {
		t.Errorf("Defaults = %+v, want %+v", loaded.Defaults, cfg.Defaults)
	}
	if len(loaded.Profiles) != len(cfg.Profiles) {
		t.Fatalf("Profiles = %d, want %d", len(loaded.Profiles), len(cfg.Profiles))
	}
	for name, want := range cfg.Profiles {
		if got := loaded.Profiles[name]; got != want {
			t.Errorf("Profiles[%q] = %+v, want %+v", name, got, want)
		}
	}
}

func TestLoadFrom_NotFound(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom missing: %v", err)
	}

	// Missing file yields the seeded defaults without writing anything.
	if cfg.Defaults.ActiveProfile != "devnet" {
		t.Errorf("ActiveProfile = %q, want devnet", cfg.Defaults.ActiveProfile)
	}
	if len(cfg.Profiles) != 3 {
		t.Errorf("Profiles = %d, want 3", len(cfg.Profiles))
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("version = [broken"), 0o600)

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}

func TestSaveTo_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.toml")

	if err := NewDefault().SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestSaveTo_OverwritesFully(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	big := NewDefault()
	big.Profiles["extra"] = Profile{RPCURL: "https://extra.example.com"}
	if err := big.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	small := NewDefault()
	if err := small.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if _, ok := loaded.Profiles["extra"]; ok {
		t.Error("stale profile survived a full overwrite")
	}
}

func TestNewDefault_SeedInvariant(t *testing.T) {
	cfg := NewDefault()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, CurrentVersion)
	}

	want := map[string]string{
		"devnet":   DevnetRPCURL,
		"mainnet":  MainnetRPCURL,
		"localnet": LocalnetRPCURL,
	}
	if len(cfg.Profiles) != len(want) {
		t.Fatalf("Profiles = %d, want %d", len(cfg.Profiles), len(want))
	}
	for name, url := range want {
		p, ok := cfg.Profiles[name]
		if !ok {
			t.Fatalf("seed profile %q missing", name)
		}
		if p.RPCURL != url {
			t.Errorf("%s RPCURL = %q, want %q", name, p.RPCURL, url)
		}
	}

	if _, ok := cfg.Profiles[cfg.Defaults.ActiveProfile]; !ok {
		t.Errorf("active profile %q is not a seeded profile", cfg.Defaults.ActiveProfile)
	}
	if cfg.Profiles["devnet"].USDCMint != DevnetUSDCMint {
		t.Errorf("devnet mint = %q, want %q", cfg.Profiles["devnet"].USDCMint, DevnetUSDCMint)
	}
	if cfg.Profiles["localnet"].USDCMint != "" {
		t.Error("localnet should have no USDC mint")
	}
}

func TestExpandTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/wallet.json", filepath.Join(home, "wallet.json")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		got, err := ExpandTilde(tt.input)
		if err != nil {
			t.Errorf("ExpandTilde(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
