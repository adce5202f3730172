package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants.
// Full path: m/44'/coinType'/account'/chain/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1

	// MaxIndex is the largest value a single path element may carry
	// before the hardened offset is applied.
	MaxIndex = 1<<31 - 1
)

// DerivationPath is a parsed BIP-32 path. Hardened elements carry the
// bip32.FirstHardenedChild offset.
type DerivationPath []uint32

// BIP44Path returns m/44'/coinType'/account'/chain/index.
func BIP44Path(coinType, account, chain, index uint32) (DerivationPath, error) {
	for _, v := range []uint32{coinType, account, chain, index} {
		if v > MaxIndex {
			return nil, fmt.Errorf("%w: path element %d exceeds %d", ErrDerivation, v, MaxIndex)
		}
	}
	return DerivationPath{
		PurposeBIP44,
		bip32.FirstHardenedChild + coinType,
		bip32.FirstHardenedChild + account,
		chain,
		index,
	}, nil
}

// ParseDerivationPath converts a textual path such as m/44'/0'/0'/0/1
// into its binary form. Hardened elements are marked with ' or h.
func ParseDerivationPath(s string) (DerivationPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrDerivation)
	}

	elems := strings.Split(s, "/")
	if strings.TrimSpace(elems[0]) != "m" {
		return nil, fmt.Errorf("%w: path %q must start with m", ErrDerivation, s)
	}

	path := make(DerivationPath, 0, len(elems)-1)
	for _, elem := range elems[1:] {
		elem = strings.TrimSpace(elem)
		var offset uint32
		if strings.HasSuffix(elem, "'") || strings.HasSuffix(elem, "h") {
			offset = bip32.FirstHardenedChild
			elem = elem[:len(elem)-1]
		}
		if elem == "" {
			return nil, fmt.Errorf("%w: empty element in path %q", ErrDerivation, s)
		}
		v, err := strconv.ParseUint(elem, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid element %q in path %q", ErrDerivation, elem, s)
		}
		if v > MaxIndex {
			return nil, fmt.Errorf("%w: element %d must be in range [0, %d]", ErrDerivation, v, MaxIndex)
		}
		path = append(path, offset+uint32(v))
	}
	return path, nil
}

// String renders the path in canonical form, hardened elements marked with '.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, v := range p {
		hardened := v >= bip32.FirstHardenedChild
		if hardened {
			v -= bip32.FirstHardenedChild
		}
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		if hardened {
			b.WriteByte('\'')
		}
	}
	return b.String()
}
