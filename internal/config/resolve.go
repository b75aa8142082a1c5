package config

import (
	"fmt"
	"os"
	"strings"
)

// Flags carries the global CLI flag values that feed resolution. Empty string
// means the flag was not supplied.
type Flags struct {
	RPCURL    string
	ProgramID string
	USDCMint  string
	Output    string
}

// Settings is the effective per-invocation configuration after applying the
// precedence chain.
type Settings struct {
	RPCURL        string
	ProgramID     string // empty when TALLY_PROGRAM_ID is delegated to the SDK client
	USDCMint      string
	OutputFormat  string
	WalletPath    string
	ActiveProfile string
}

type resolveOptions struct {
	needsProgramID bool
}

// ResolveOption adjusts resolution behavior per command.
type ResolveOption func(*resolveOptions)

// RequireProgramID makes resolution fail with ErrMissingProgramID when no
// source supplies a program ID. Used by commands that contact the ledger.
func RequireProgramID() ResolveOption {
	return func(o *resolveOptions) { o.needsProgramID = true }
}

// Resolve computes the effective settings for this invocation.
// Per field the first present source wins: CLI flag, environment variable,
// active profile, hardcoded default.
func Resolve(flags Flags, env EnvDefaults, cfg *File, opts ...ResolveOption) (*Settings, error) {
	var ro resolveOptions
	for _, opt := range opts {
		opt(&ro)
	}

	active, haveActive := cfg.ActiveProfile()

	s := &Settings{
		ActiveProfile: cfg.Defaults.ActiveProfile,
	}

	// Endpoint. The env check is presence-only and substitutes the defaults
	// provider's value rather than reading the variable here; LoadEnvDefaults
	// already captured TALLY_RPC_URL, so the two agree. Kept bug-for-bug with
	// the released behavior: an empty TALLY_RPC_URL resolves to an empty URL.
	switch {
	case flags.RPCURL != "":
		s.RPCURL = flags.RPCURL
	case envIsSet(EnvRPCURL):
		s.RPCURL = env.RPCURL
	case haveActive && active.RPCURL != "":
		s.RPCURL = active.RPCURL
	default:
		s.RPCURL = env.RPCURL
	}

	// Program ID has no usable hardcoded default. When only the environment
	// variable is set, leave it empty so the SDK client reads the env itself.
	switch {
	case flags.ProgramID != "":
		s.ProgramID = flags.ProgramID
	case haveActive && active.ProgramID != "":
		s.ProgramID = active.ProgramID
	case envIsSet(EnvProgramID):
		s.ProgramID = ""
	default:
		if ro.needsProgramID {
			return nil, ErrMissingProgramID
		}
	}

	switch {
	case flags.USDCMint != "":
		s.USDCMint = flags.USDCMint
	case haveActive && active.USDCMint != "":
		s.USDCMint = active.USDCMint
	}

	format := env.OutputFormat
	if flags.Output != "" {
		format = flags.Output
	} else if !envIsSet(EnvDefaultOutputFormat) && cfg.Defaults.OutputFormat != "" {
		format = cfg.Defaults.OutputFormat
	}
	normalized, err := NormalizeOutputFormat(format)
	if err != nil {
		return nil, err
	}
	s.OutputFormat = normalized

	switch {
	case haveActive && active.WalletPath != "":
		s.WalletPath = active.WalletPath
	case cfg.Defaults.WalletPath != "":
		s.WalletPath = cfg.Defaults.WalletPath
	}

	return s, nil
}

// Output formats accepted by --output and TALLY_DEFAULT_OUTPUT_FORMAT.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// NormalizeOutputFormat validates and lowercases an output format name.
func NormalizeOutputFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatHuman:
		return FormatHuman, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("invalid output format %q (expected human, json, or csv)", format)
}

func envIsSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}
