package sdk

import "github.com/decred/base58"

// ValidateAddress checks that s is a base58-encoded 32-byte public key.
func ValidateAddress(s string) error {
	if s == "" {
		return &InvalidAddressError{Value: s}
	}
	decoded := base58.Decode(s)
	if len(decoded) != 32 {
		return &InvalidAddressError{Value: s}
	}
	return nil
}
