package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/klingwallet/pkg/crypto"
	"github.com/btcsuite/btcd/btcutil/base58"
)

// compressMagic marks a WIF payload whose public key is compressed.
const compressMagic byte = 0x01

// AddressRecord is a derived key and its encodings. It is a plain value and
// holds no reference back to the wallet that produced it.
type AddressRecord struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
	Address    string `json:"address"`
	Compressed bool   `json:"compressed"`
	Path       string `json:"path"`
	WIF        string `json:"wif"`
}

// AddressPair is the external (receive) and change address at one index.
type AddressPair struct {
	External AddressRecord `json:"external"`
	Change   AddressRecord `json:"change"`
}

// BuildAddress encodes key's private and public key for net.
// Fails with ErrKeyMaterial for public-only keys.
func BuildAddress(key *HDKey, net NetworkParams, path string) (AddressRecord, error) {
	if key == nil || !key.IsPrivate() {
		return AddressRecord{}, fmt.Errorf("%w: key at %s is public-only", ErrKeyMaterial, path)
	}
	return RecordFromPrivateKey(key.PrivateKeyBytes(), net, path)
}

// RecordFromPrivateKey encodes a raw 32-byte secp256k1 private key for net.
// path is recorded as given.
func RecordFromPrivateKey(priv []byte, net NetworkParams, path string) (AddressRecord, error) {
	pk, err := crypto.PrivateKeyFromBytes(priv)
	if err != nil {
		return AddressRecord{}, fmt.Errorf("%w: %w", ErrKeyMaterial, err)
	}
	defer pk.Zero()

	raw := pk.Serialize()
	pub := pk.PublicKey()

	payload := make([]byte, 0, len(raw)+1)
	payload = append(payload, raw...)
	payload = append(payload, compressMagic)
	defer zeroBytes(payload)

	return AddressRecord{
		PrivateKey: hex.EncodeToString(raw),
		PublicKey:  hex.EncodeToString(pub),
		Address:    base58.CheckEncode(crypto.Hash160(pub), net.PubKeyHash),
		Compressed: true,
		Path:       path,
		WIF:        base58.CheckEncode(payload, net.WIF),
	}, nil
}
