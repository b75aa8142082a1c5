package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
)

const (
	// AppDirName is the subdirectory under the OS user config dir.
	AppDirName = "tally"

	// FileName is the config file name inside AppDirName.
	FileName = "config.toml"

	FilePermissions = os.FileMode(0o600)
	DirPermissions  = os.FileMode(0o700)
)

// Seed network endpoints and mints used by NewDefault.
const (
	DevnetRPCURL   = "https://api.devnet.solana.com"
	MainnetRPCURL  = "https://api.mainnet-beta.solana.com"
	LocalnetRPCURL = "http://127.0.0.1:8899"

	DevnetUSDCMint  = "Gh9ZwEmdLJ8DscKNTkTqPbNwLNNBjuSzaG9Vp2KGtKJr"
	MainnetUSDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// NewDefault returns a fresh config with the three seed profiles, devnet active.
// Pure construction, no I/O.
func NewDefault() *File {
	return &File{
		Version: CurrentVersion,
		Defaults: GlobalDefaults{
			ActiveProfile: "devnet",
			OutputFormat:  "human",
		},
		Profiles: map[string]Profile{
			"devnet": {
				RPCURL:   DevnetRPCURL,
				USDCMint: DevnetUSDCMint,
			},
			"mainnet": {
				RPCURL:   MainnetRPCURL,
				USDCMint: MainnetUSDCMint,
			},
			"localnet": {
				RPCURL: LocalnetRPCURL,
			},
		},
	}
}

// Path resolves the config file location under the OS user config directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName, FileName), nil
}

// Load reads the config file from disk. Returns NewDefault() if the file does
// not exist; nothing is written as a side effect.
func Load() (*File, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &File{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

// Save writes the config to its default path. See SaveTo.
func (cfg *File) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return cfg.SaveTo(path)
}

// SaveTo writes the config to disk under an exclusive file lock.
// Creates the parent directory with 0700 and the file with 0600 permissions.
// Uses an atomic write: temp file in the same dir, then rename.
func (cfg *File) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, FilePermissions)
	if err != nil {
		return fmt.Errorf("creating lock file: %w", err)
	}
	defer func() {
		syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
		lockFile.Close()
		os.Remove(lockPath)
	}()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "config-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := os.Chmod(tmpPath, FilePermissions); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if _, err := tmpFile.WriteString(buf.String()); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming config file: %w", err)
	}

	return nil
}

// ExpandTilde replaces a leading "~" in a path with the user's home directory.
func ExpandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
