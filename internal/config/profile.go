package config

import "sort"

// Recognized profile value keys. Each key accepts both hyphenated and
// underscored spellings.
const (
	KeyRPCURL     = "rpc-url"
	KeyProgramID  = "program-id"
	KeyUSDCMint   = "usdc-mint"
	KeyMerchant   = "merchant"
	KeyWalletPath = "wallet-path"
)

// KnownKeys returns the canonical spellings of the recognized keys.
func KnownKeys() []string {
	return []string{KeyRPCURL, KeyProgramID, KeyUSDCMint, KeyMerchant, KeyWalletPath}
}

// canonicalKey maps either spelling of a key to its canonical form.
func canonicalKey(key string) (string, bool) {
	switch key {
	case "rpc-url", "rpc_url":
		return KeyRPCURL, true
	case "program-id", "program_id":
		return KeyProgramID, true
	case "usdc-mint", "usdc_mint":
		return KeyUSDCMint, true
	case "merchant":
		return KeyMerchant, true
	case "wallet-path", "wallet_path":
		return KeyWalletPath, true
	}
	return "", false
}

// Profile returns the named profile, if present.
func (cfg *File) Profile(name string) (Profile, bool) {
	p, ok := cfg.Profiles[name]
	return p, ok
}

// ActiveProfile returns the active profile's settings. Returns false if no
// active profile is set or it references a missing profile.
func (cfg *File) ActiveProfile() (Profile, bool) {
	if cfg.Defaults.ActiveProfile == "" {
		return Profile{}, false
	}
	return cfg.Profile(cfg.Defaults.ActiveProfile)
}

// SetActiveProfile records name as the active profile without checking that it
// exists. Callers that want validation use UseProfile.
func (cfg *File) SetActiveProfile(name string) {
	cfg.Defaults.ActiveProfile = name
}

// UseProfile sets the active profile after verifying it exists.
func (cfg *File) UseProfile(name string) error {
	if _, ok := cfg.Profiles[name]; !ok {
		return &ProfileNotFoundError{Name: name, Known: cfg.ProfileNames()}
	}
	cfg.SetActiveProfile(name)
	return nil
}

// CreateProfile inserts a new profile. Fails if the name is already taken;
// the config is left unchanged in that case. Does not change the active profile.
func (cfg *File) CreateProfile(name, rpcURL, programID, usdcMint string) error {
	if _, ok := cfg.Profiles[name]; ok {
		return &ProfileExistsError{Name: name}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	cfg.Profiles[name] = Profile{
		RPCURL:    rpcURL,
		ProgramID: programID,
		USDCMint:  usdcMint,
	}
	return nil
}

// Value reads a keyed value from the active profile. The second return is
// false when the field is unset.
func (cfg *File) Value(key string) (string, bool, error) {
	if cfg.Defaults.ActiveProfile == "" {
		return "", false, ErrNoActiveProfile
	}
	return cfg.ValueIn(cfg.Defaults.ActiveProfile, key)
}

// ValueIn reads a keyed value from a named profile.
func (cfg *File) ValueIn(name, key string) (string, bool, error) {
	profile, ok := cfg.Profiles[name]
	if !ok {
		return "", false, &ProfileNotFoundError{Name: name, Known: cfg.ProfileNames()}
	}

	canonical, ok := canonicalKey(key)
	if !ok {
		return "", false, &UnknownKeyError{Key: key}
	}

	var v string
	switch canonical {
	case KeyRPCURL:
		v = profile.RPCURL
	case KeyProgramID:
		v = profile.ProgramID
	case KeyUSDCMint:
		v = profile.USDCMint
	case KeyMerchant:
		v = profile.Merchant
	case KeyWalletPath:
		v = profile.WalletPath
	}
	return v, v != "", nil
}

// SetValue writes a keyed value into the active profile.
func (cfg *File) SetValue(key, value string) error {
	if cfg.Defaults.ActiveProfile == "" {
		return ErrNoActiveProfile
	}
	return cfg.SetValueIn(cfg.Defaults.ActiveProfile, key, value)
}

// SetValueIn writes a keyed value into a named profile.
func (cfg *File) SetValueIn(name, key, value string) error {
	profile, ok := cfg.Profiles[name]
	if !ok {
		return &ProfileNotFoundError{Name: name, Known: cfg.ProfileNames()}
	}

	canonical, ok := canonicalKey(key)
	if !ok {
		return &UnknownKeyError{Key: key}
	}

	switch canonical {
	case KeyRPCURL:
		profile.RPCURL = value
	case KeyProgramID:
		profile.ProgramID = value
	case KeyUSDCMint:
		profile.USDCMint = value
	case KeyMerchant:
		profile.Merchant = value
	case KeyWalletPath:
		profile.WalletPath = value
	}
	cfg.Profiles[name] = profile
	return nil
}

// SetMerchant records a merchant PDA in the active profile. Called after a
// successful payee init so later commands can default to it.
func (cfg *File) SetMerchant(merchant string) error {
	return cfg.SetValue(KeyMerchant, merchant)
}

// ProfileNames returns all profile names, sorted.
func (cfg *File) ProfileNames() []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListedProfile is one row of ListProfiles output.
type ListedProfile struct {
	Name    string
	Profile Profile
	Active  bool
}

// ListProfiles returns all profiles in name order with the active one marked.
func (cfg *File) ListProfiles() []ListedProfile {
	names := cfg.ProfileNames()
	out := make([]ListedProfile, 0, len(names))
	for _, name := range names {
		out = append(out, ListedProfile{
			Name:    name,
			Profile: cfg.Profiles[name],
			Active:  name == cfg.Defaults.ActiveProfile,
		})
	}
	return out
}
