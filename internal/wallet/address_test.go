package wallet

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestRecordFromPrivateKey_KnownKey(t *testing.T) {
	priv := make([]byte, 32)
	priv[31] = 1

	tests := []struct {
		net     NetworkParams
		address string
		wif     string
	}{
		{BitcoinMainnet, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"},
		{BitcoinTestnet, "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r", "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA"},
	}
	for _, tt := range tests {
		t.Run(tt.net.Name, func(t *testing.T) {
			rec, err := RecordFromPrivateKey(priv, tt.net, "m/0")
			if err != nil {
				t.Fatalf("RecordFromPrivateKey() error: %v", err)
			}
			if rec.Address != tt.address {
				t.Errorf("Address = %s, want %s", rec.Address, tt.address)
			}
			if rec.WIF != tt.wif {
				t.Errorf("WIF = %s, want %s", rec.WIF, tt.wif)
			}
			if rec.PublicKey != "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" {
				t.Errorf("PublicKey = %s", rec.PublicKey)
			}
			if rec.PrivateKey != hex.EncodeToString(priv) {
				t.Errorf("PrivateKey = %s", rec.PrivateKey)
			}
			if !rec.Compressed || rec.Path != "m/0" {
				t.Errorf("Compressed = %v, Path = %q", rec.Compressed, rec.Path)
			}
		})
	}
}

func TestBuildAddress_BIP44(t *testing.T) {
	master := testMaster(t)

	tests := []struct {
		path    string
		address string
		wif     string
	}{
		{"m/44'/0'/0'/0/0", "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", "L4p2b9VAf8k5aUahF1JCJUzZkgNEAqLfq8DDdQiyAprQAKSbu8hf"},
		{"m/44'/0'/0'/0/1", "1Ak8PffB2meyfYnbXZR9EGfLfFZVpzJvQP", "KzJgGiEeGUVWmPR97pVWDnCVraZvM2fnrCVrg2irV4353HciE6Un"},
		{"m/44'/0'/0'/1/0", "1J3J6EvPrv8q6AC3VCjWV45Uf3nssNMRtH", "L1GfmUBVD88haCukMzGtmR5B5zuQVxd6cmUVe85d66Uq2V13orj3"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			path, err := ParseDerivationPath(tt.path)
			if err != nil {
				t.Fatalf("ParseDerivationPath() error: %v", err)
			}
			key, err := master.DerivePath(path)
			if err != nil {
				t.Fatalf("DerivePath() error: %v", err)
			}
			rec, err := BuildAddress(key, BitcoinMainnet, tt.path)
			if err != nil {
				t.Fatalf("BuildAddress() error: %v", err)
			}
			if rec.Address != tt.address {
				t.Errorf("Address = %s, want %s", rec.Address, tt.address)
			}
			if rec.WIF != tt.wif {
				t.Errorf("WIF = %s, want %s", rec.WIF, tt.wif)
			}
		})
	}
}

func TestBuildAddress_PublicOnly(t *testing.T) {
	pub := testMaster(t).Neuter()
	if _, err := BuildAddress(pub, BitcoinMainnet, "m"); !errors.Is(err, ErrKeyMaterial) {
		t.Errorf("BuildAddress(public) err = %v, want ErrKeyMaterial", err)
	}
	if _, err := BuildAddress(nil, BitcoinMainnet, "m"); !errors.Is(err, ErrKeyMaterial) {
		t.Errorf("BuildAddress(nil) err = %v, want ErrKeyMaterial", err)
	}
}

func TestRecordFromPrivateKey_InvalidKey(t *testing.T) {
	for _, priv := range [][]byte{make([]byte, 32), make([]byte, 31)} {
		if _, err := RecordFromPrivateKey(priv, BitcoinMainnet, "m"); !errors.Is(err, ErrKeyMaterial) {
			t.Errorf("RecordFromPrivateKey(%x) err = %v, want ErrKeyMaterial", priv, err)
		}
	}
}
