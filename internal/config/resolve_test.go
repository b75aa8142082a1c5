package config

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// clearResolverEnv unsets every variable the resolver consults so tests see a
// clean environment regardless of the host shell. t.Setenv registers the
// restore; os.Unsetenv then removes the variable for the test body.
func clearResolverEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvRPCURL, EnvDefaultOutputFormat, EnvEventsLookbackSecs, EnvProgramID} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func unsetenv(t *testing.T, name string) {
	t.Helper()
	os.Unsetenv(name)
}

func TestResolve_EndpointPrecedence(t *testing.T) {
	clearResolverEnv(t)

	cfg := NewDefault()
	cfg.Profiles["devnet"] = Profile{RPCURL: "https://profile.example.com"}

	// CLI flag beats everything.
	t.Setenv(EnvRPCURL, "https://env.example.com")
	s, err := Resolve(Flags{RPCURL: "https://flag.example.com"}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RPCURL != "https://flag.example.com" {
		t.Errorf("RPCURL = %q, want flag value", s.RPCURL)
	}

	// Env var present: the defaults provider's value is substituted. With a
	// non-empty env var the two coincide.
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RPCURL != "https://env.example.com" {
		t.Errorf("RPCURL = %q, want env value", s.RPCURL)
	}

	// Env var present but empty: presence-only check substitutes the defaults
	// provider's (empty) value. Documented compatibility behavior.
	t.Setenv(EnvRPCURL, "")
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RPCURL != "" {
		t.Errorf("RPCURL = %q, want empty (presence-only env check)", s.RPCURL)
	}

	// No env var: active profile wins.
	unsetenv(t, EnvRPCURL)
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RPCURL != "https://profile.example.com" {
		t.Errorf("RPCURL = %q, want profile value", s.RPCURL)
	}

	// No active profile: hardcoded default.
	cfg.Defaults.ActiveProfile = ""
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.RPCURL != DevnetRPCURL {
		t.Errorf("RPCURL = %q, want %q", s.RPCURL, DevnetRPCURL)
	}
}

func TestResolve_ProgramID(t *testing.T) {
	clearResolverEnv(t)

	cfg := NewDefault()

	// No source at all: hard failure when the command needs the chain.
	_, err := Resolve(Flags{}, LoadEnvDefaults(), cfg, RequireProgramID())
	if !errors.Is(err, ErrMissingProgramID) {
		t.Fatalf("error = %v, want ErrMissingProgramID", err)
	}

	// Without the requirement resolution succeeds with an empty program ID.
	s, err := Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ProgramID != "" {
		t.Errorf("ProgramID = %q, want empty", s.ProgramID)
	}

	// Flag wins.
	s, err = Resolve(Flags{ProgramID: "FlagProg"}, LoadEnvDefaults(), cfg, RequireProgramID())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ProgramID != "FlagProg" {
		t.Errorf("ProgramID = %q, want FlagProg", s.ProgramID)
	}

	// Profile next.
	cfg.SetValue(KeyProgramID, "ProfileProg")
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg, RequireProgramID())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ProgramID != "ProfileProg" {
		t.Errorf("ProgramID = %q, want ProfileProg", s.ProgramID)
	}

	// Env var alone: resolution succeeds with an empty program ID so the SDK
	// client reads the variable itself.
	cfg = NewDefault()
	t.Setenv(EnvProgramID, "EnvProg")
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg, RequireProgramID())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ProgramID != "" {
		t.Errorf("ProgramID = %q, want empty (delegated to SDK)", s.ProgramID)
	}
}

func TestResolve_MissingProgramIDListsRemediations(t *testing.T) {
	clearResolverEnv(t)

	_, err := Resolve(Flags{}, LoadEnvDefaults(), NewDefault(), RequireProgramID())
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{EnvProgramID, "config set program-id", "--program-id"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestResolve_OutputFormat(t *testing.T) {
	clearResolverEnv(t)

	cfg := NewDefault()

	// Flag wins and is case-normalized.
	s, err := Resolve(Flags{Output: "JSON"}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want json", s.OutputFormat)
	}

	// Env next.
	t.Setenv(EnvDefaultOutputFormat, "csv")
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.OutputFormat != FormatCSV {
		t.Errorf("OutputFormat = %q, want csv", s.OutputFormat)
	}

	// Then the persisted default.
	unsetenv(t, EnvDefaultOutputFormat)
	cfg.Defaults.OutputFormat = "json"
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want json", s.OutputFormat)
	}

	// Then "human".
	cfg.Defaults.OutputFormat = ""
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.OutputFormat != FormatHuman {
		t.Errorf("OutputFormat = %q, want human", s.OutputFormat)
	}

	// Garbage is an error, not a silent fallback.
	if _, err := Resolve(Flags{Output: "yaml"}, LoadEnvDefaults(), cfg); err == nil {
		t.Error("expected error for invalid output format")
	}
}

func TestResolve_WalletPath(t *testing.T) {
	clearResolverEnv(t)

	cfg := NewDefault()
	cfg.Defaults.WalletPath = "~/global.json"

	s, err := Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.WalletPath != "~/global.json" {
		t.Errorf("WalletPath = %q, want global default", s.WalletPath)
	}

	// Profile override beats the global default.
	cfg.SetValue(KeyWalletPath, "~/devnet.json")
	s, err = Resolve(Flags{}, LoadEnvDefaults(), cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.WalletPath != "~/devnet.json" {
		t.Errorf("WalletPath = %q, want profile override", s.WalletPath)
	}
}

func TestResolve_USDCMint(t *testing.T) {
	clearResolverEnv(t)

	s, err := Resolve(Flags{USDCMint: "FlagMint"}, LoadEnvDefaults(), NewDefault())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.USDCMint != "FlagMint" {
		t.Errorf("USDCMint = %q, want FlagMint", s.USDCMint)
	}

	s, err = Resolve(Flags{}, LoadEnvDefaults(), NewDefault())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.USDCMint != DevnetUSDCMint {
		t.Errorf("USDCMint = %q, want active profile mint", s.USDCMint)
	}
}
