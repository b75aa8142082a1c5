// Package wallet loads signing keys in the standard Solana CLI id.json
// format: a JSON array of 64 bytes, secret key followed by public key.
package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/base58"

	"github.com/tally-pay/tally-cli/internal/config"
)

const keypairLen = 64

// Keypair is a loaded signing key.
type Keypair struct {
	// Path the key was loaded from.
	Path string

	// PublicKey in base58.
	PublicKey string

	secret []byte
}

// DefaultPath returns the conventional Solana CLI wallet location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "solana", "id.json"), nil
}

// Load reads a keypair file. An empty path loads the default wallet.
func Load(path string) (*Keypair, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	expanded, err := config.ExpandTilde(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading wallet file %s: %w", expanded, err)
	}

	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return nil, fmt.Errorf("parsing wallet file %s: expected a JSON byte array: %w", expanded, err)
	}
	if len(nums) != keypairLen {
		return nil, fmt.Errorf("wallet file %s: expected %d bytes, got %d", expanded, keypairLen, len(nums))
	}

	raw := make([]byte, keypairLen)
	for i, n := range nums {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("wallet file %s: byte %d out of range", expanded, i)
		}
		raw[i] = byte(n)
	}

	return &Keypair{
		Path:      expanded,
		PublicKey: base58.Encode(raw[32:]),
		secret:    raw[:32],
	}, nil
}
