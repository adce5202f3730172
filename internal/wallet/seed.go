package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39. Both inputs are NFKD-normalized
// first. The phrase is not checked against a wordlist.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if strings.TrimSpace(mnemonic) == "" {
		return nil, fmt.Errorf("%w: mnemonic is empty", ErrInvalidInput)
	}
	seed := bip39.NewSeed(norm.NFKD.String(mnemonic), norm.NFKD.String(passphrase))
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("derive seed: got %d bytes, want %d", len(seed), SeedSize)
	}
	return seed, nil
}
