package cmd

import (
	"fmt"
	"strings"

	"github.com/tally-pay/tally-cli/internal/config"
)

// Address errors carry recovery suggestions so users are never left with a
// bare parse failure.

func invalidMerchantError(value string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid merchant address: %q\n\n", value)
	b.WriteString("Merchant addresses are base58-encoded 32-byte public keys.\n\n")
	b.WriteString("Did you mean to:\n")

	if saved := savedMerchant(); saved != "" {
		fmt.Fprintf(&b, "  - Use your saved merchant: %s\n", saved)
		b.WriteString("  - Or update it with: tally-merchant config set merchant <NEW_ADDRESS>")
	} else {
		b.WriteString("  - Run 'tally-merchant init' to create a new merchant?\n")
		b.WriteString("  - Check your merchant address with: tally-merchant config get merchant")
	}
	return fmt.Errorf("%s", b.String())
}

func invalidTermsError(value string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid payment terms address: %q\n\n", value)
	b.WriteString("Payment terms addresses are base58-encoded 32-byte public keys.\n\n")
	b.WriteString("Did you mean to:\n")

	if saved := savedMerchant(); saved != "" {
		fmt.Fprintf(&b, "  - List your payment terms with: tally-merchant payment-terms list --payee %s\n", saved)
	} else {
		b.WriteString("  - List your payment terms with: tally-merchant payment-terms list --payee <PAYEE>\n")
	}
	b.WriteString("  - Create new payment terms with: tally-merchant payment-terms create --help")
	return fmt.Errorf("%s", b.String())
}

func invalidAgreementError(value string) error {
	return fmt.Errorf(
		"invalid agreement address: %q\n\n"+
			"Agreement addresses are base58-encoded 32-byte public keys.\n\n"+
			"Did you mean to:\n"+
			"  - List agreements with: tally-merchant agreement list --payment-terms <TERMS>\n"+
			"  - Check the address you copied", value)
}

// savedMerchant returns the merchant ref from the active profile, if any.
func savedMerchant() string {
	if app.Config == nil {
		return ""
	}
	v, ok, err := app.Config.Value(config.KeyMerchant)
	if err != nil || !ok {
		return ""
	}
	return v
}
