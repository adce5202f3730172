// Package crypto provides the hashing and key primitives used by the wallet.
package crypto

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/zeebo/blake3"
)

// HashSize is the length of a BLAKE3-256 digest.
const HashSize = 32

// FingerprintSize is the number of digest bytes kept in a fingerprint.
const FingerprintSize = 8

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) [HashSize]byte {
	return blake3.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)), the digest used by
// pay-to-pubkey-hash addresses.
func Hash160(data []byte) []byte {
	return btcutil.Hash160(data)
}

// Fingerprint returns a short, non-secret identifier for a public key:
// the hex encoding of the first 8 bytes of BLAKE3(pubKey).
func Fingerprint(pubKey []byte) string {
	h := Hash(pubKey)
	return hex.EncodeToString(h[:FingerprintSize])
}
