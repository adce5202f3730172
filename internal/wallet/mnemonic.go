// Package wallet implements HD wallet functionality: BIP-39 mnemonics and
// seeds, BIP-32/BIP-44 key derivation, address records and a lockable
// wallet whose secrets can be sealed under a password.
package wallet

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// Entropy sizes accepted for mnemonic generation.
const (
	// DefaultEntropyBits yields a 12-word mnemonic.
	DefaultEntropyBits = 128
	MinEntropyBits     = 128
	MaxEntropyBits     = 256

	bitsPerWord = 11
)

// GenerateMnemonic creates a new 12-word BIP-39 mnemonic from lang's wordlist.
func GenerateMnemonic(lang Language) (string, error) {
	return GenerateMnemonicBits(lang, DefaultEntropyBits)
}

// GenerateMnemonicBits creates a mnemonic from bits of fresh entropy.
// bits must be a multiple of 32 in [128, 256].
func GenerateMnemonicBits(lang Language, bits int) (string, error) {
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	return MnemonicFromEntropy(entropy, lang)
}

// MnemonicFromEntropy encodes entropy as a phrase from lang's wordlist.
func MnemonicFromEntropy(entropy []byte, lang Language) (string, error) {
	info, ok := languageTable[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	entBits := len(entropy) * 8
	if entBits < MinEntropyBits || entBits > MaxEntropyBits || entBits%32 != 0 {
		return "", fmt.Errorf("%w: entropy must be 128-256 bits in steps of 32, got %d", ErrInvalidInput, entBits)
	}

	// Checksum is at most 8 bits, so the first digest byte is enough.
	sum := sha256.Sum256(entropy)
	data := make([]byte, 0, len(entropy)+1)
	data = append(data, entropy...)
	data = append(data, sum[0])

	count := (entBits + entBits/32) / bitsPerWord
	words := make([]string, count)
	for i := range words {
		idx := 0
		for j := 0; j < bitsPerWord; j++ {
			idx = idx<<1 | int(bitAt(data, i*bitsPerWord+j))
		}
		words[i] = info.words[idx]
	}
	return strings.Join(words, lang.separator()), nil
}

// EntropyFromMnemonic decodes a phrase back to its entropy, verifying
// every word and the checksum against lang's wordlist.
func EntropyFromMnemonic(mnemonic string, lang Language) ([]byte, error) {
	index, err := wordIndex(lang)
	if err != nil {
		return nil, err
	}

	words := strings.Fields(mnemonic)
	n := len(words)
	if n < 12 || n > 24 || n%3 != 0 {
		return nil, fmt.Errorf("%w: word count %d", ErrInvalidMnemonic, n)
	}

	total := n * bitsPerWord
	csBits := total / 33
	entBits := total - csBits

	buf := make([]byte, (total+7)/8)
	for i, w := range words {
		idx, ok := index[norm.NFKD.String(w)]
		if !ok {
			return nil, fmt.Errorf("%w: word %d not in %s wordlist", ErrInvalidMnemonic, i+1, lang)
		}
		for j := 0; j < bitsPerWord; j++ {
			if idx>>(bitsPerWord-1-j)&1 == 1 {
				pos := i*bitsPerWord + j
				buf[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}

	entropy := buf[:entBits/8]
	sum := sha256.Sum256(entropy)
	for j := 0; j < csBits; j++ {
		if bitAt(buf, entBits+j) != bitAt(sum[:], j) {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
		}
	}

	out := make([]byte, len(entropy))
	copy(out, entropy)
	return out, nil
}

// ValidateMnemonic checks word count, membership in lang's wordlist and
// the checksum.
func ValidateMnemonic(mnemonic string, lang Language) error {
	if strings.TrimSpace(mnemonic) == "" {
		return fmt.Errorf("%w: mnemonic is empty", ErrInvalidInput)
	}
	_, err := EntropyFromMnemonic(mnemonic, lang)
	return err
}

// IsMnemonicValid reports whether mnemonic is a valid phrase for lang.
func IsMnemonicValid(mnemonic string, lang Language) bool {
	return ValidateMnemonic(mnemonic, lang) == nil
}

func bitAt(data []byte, pos int) byte {
	return data[pos/8] >> (7 - pos%8) & 1
}
