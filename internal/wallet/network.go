package wallet

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// KeyVersions holds the BIP-32 serialization prefixes of a network.
type KeyVersions struct {
	Private uint32 `json:"private"`
	Public  uint32 `json:"public"`
}

// NetworkParams describes how keys and addresses are encoded on a chain.
type NetworkParams struct {
	Name       string      `json:"name"`
	BIP32      KeyVersions `json:"bip32"`
	BIP44      uint32      `json:"bip44"`      // SLIP-44 coin type
	WIF        byte        `json:"private"`    // WIF prefix
	PubKeyHash byte        `json:"public"`     // P2PKH address prefix
	ScriptHash byte        `json:"scripthash"` // P2SH address prefix
}

// Bitcoin networks, built from btcd's chain parameters.
var (
	BitcoinMainnet = fromChainParams("Bitcoin", &chaincfg.MainNetParams)
	BitcoinTestnet = fromChainParams("Bitcoin Testnet", &chaincfg.TestNet3Params)
	BitcoinRegtest = fromChainParams("Bitcoin Regtest", &chaincfg.RegressionNetParams)
	BitcoinSimnet  = fromChainParams("Bitcoin Simnet", &chaincfg.SimNetParams)
)

// DefaultNetwork is used when no network is given.
var DefaultNetwork = BitcoinMainnet

func fromChainParams(name string, p *chaincfg.Params) NetworkParams {
	return NetworkParams{
		Name: name,
		BIP32: KeyVersions{
			Private: binary.BigEndian.Uint32(p.HDPrivateKeyID[:]),
			Public:  binary.BigEndian.Uint32(p.HDPublicKeyID[:]),
		},
		BIP44:      p.HDCoinType,
		WIF:        p.PrivateKeyID,
		PubKeyHash: p.PubKeyHashAddrID,
		ScriptHash: p.ScriptHashAddrID,
	}
}

// NetworkByName resolves mainnet, testnet, regtest or simnet.
func NetworkByName(name string) (NetworkParams, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mainnet", "main", "bitcoin":
		return BitcoinMainnet, nil
	case "testnet", "testnet3", "test":
		return BitcoinTestnet, nil
	case "regtest":
		return BitcoinRegtest, nil
	case "simnet":
		return BitcoinSimnet, nil
	default:
		return NetworkParams{}, fmt.Errorf("unknown network %q", name)
	}
}

// NetworkNames lists the names NetworkByName accepts canonically.
func NetworkNames() []string {
	return []string{"mainnet", "testnet", "regtest", "simnet"}
}
