package config

// CurrentVersion is the config file schema version written by this build.
const CurrentVersion = "1.0.0"

// File represents the persisted configuration stored at ~/.config/tally/config.toml.
//
// Precedence order for effective settings (highest to lowest):
//
//  1. CLI flags (--rpc-url, --program-id, etc.)
//  2. Environment variables (TALLY_RPC_URL, etc.)
//  3. Active profile from this file
//  4. Hardcoded defaults
type File struct {
	// Version is the schema version tag, for future migrations.
	Version string `toml:"version"`

	// Defaults apply across all profiles.
	Defaults GlobalDefaults `toml:"defaults"`

	// Profiles maps profile name to per-network settings.
	Profiles map[string]Profile `toml:"profiles"`
}

// GlobalDefaults holds settings that are not scoped to a single profile.
// Empty strings mean unset.
type GlobalDefaults struct {
	ActiveProfile string `toml:"active_profile,omitempty"`
	OutputFormat  string `toml:"output_format,omitempty"`
	WalletPath    string `toml:"wallet_path,omitempty"`
}

// Profile holds settings for one target network.
type Profile struct {
	// RPCURL is the RPC endpoint for this profile. Never empty for a stored profile.
	RPCURL string `toml:"rpc_url"`

	// ProgramID of the subscription program on this network.
	ProgramID string `toml:"program_id,omitempty"`

	// USDCMint is the settlement currency mint address.
	USDCMint string `toml:"usdc_mint,omitempty"`

	// Merchant is the merchant PDA, written back after a successful payee init.
	Merchant string `toml:"merchant,omitempty"`

	// WalletPath overrides the global default wallet for this profile.
	WalletPath string `toml:"wallet_path,omitempty"`
}
