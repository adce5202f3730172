package wallet

import (
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/klingwallet/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// HDKey represents a hierarchical deterministic key (BIP-32). The network's
// version bytes travel with the key so String yields the right prefix
// (xprv, tprv, ...).
type HDKey struct {
	key      *bip32.Key
	versions KeyVersions
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte, versions KeyVersions) (*HDKey, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("%w: seed is empty", ErrInvalidInput)
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrDerivation, SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: create master key: %w", ErrDerivation, err)
	}
	return wrapKey(master, versions), nil
}

func wrapKey(key *bip32.Key, versions KeyVersions) *HDKey {
	v := versions.Public
	if key.IsPrivate {
		v = versions.Private
	}
	key.Version = binary.BigEndian.AppendUint32(nil, v)
	return &HDKey{key: key, versions: versions}
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("%w: derive child %d: %w", ErrDerivation, index, err)
	}
	return wrapKey(child, k.versions), nil
}

// DerivePath derives a key along a parsed path, relative to k.
func (k *HDKey) DerivePath(path DerivationPath) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/44'/coinType'/account'/chain/index.
func (k *HDKey) DeriveAddress(coinType, account, chain, index uint32) (*HDKey, error) {
	path, err := BIP44Path(coinType, account, chain, index)
	if err != nil {
		return nil, err
	}
	return k.DerivePath(path)
}

// PrivateKeyBytes returns a copy of the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	out := make([]byte, crypto.PrivateKeySize)
	copy(out[crypto.PrivateKeySize-len(raw):], raw)
	return out
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// Fingerprint returns a short non-secret identifier derived from the
// public key.
func (k *HDKey) Fingerprint() string {
	return crypto.Fingerprint(k.PublicKeyBytes())
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Versions returns the BIP-32 version bytes the key serializes with.
func (k *HDKey) Versions() KeyVersions {
	return k.versions
}

// Neuter returns a public-key-only copy (for watch-only use).
func (k *HDKey) Neuter() *HDKey {
	return wrapKey(k.key.PublicKey(), k.versions)
}

// String returns the Base58Check extended key serialization.
func (k *HDKey) String() string {
	return k.key.B58Serialize()
}

// zero wipes the private key material held by k.
func (k *HDKey) zero() {
	if k == nil || k.key == nil {
		return
	}
	for i := range k.key.Key {
		k.key.Key[i] = 0
	}
	for i := range k.key.ChainCode {
		k.key.ChainCode[i] = 0
	}
}

// clone returns a deep copy so callers cannot observe a later zero.
func (k *HDKey) clone() *HDKey {
	c := *k.key
	c.Version = append([]byte(nil), k.key.Version...)
	c.ChildNumber = append([]byte(nil), k.key.ChildNumber...)
	c.FingerPrint = append([]byte(nil), k.key.FingerPrint...)
	c.ChainCode = append([]byte(nil), k.key.ChainCode...)
	c.Key = append([]byte(nil), k.key.Key...)
	return &HDKey{key: &c, versions: k.versions}
}
