package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip32"
)

// bip32Vector2Seed is the 64-byte seed of BIP-32 test vector 2.
const bip32Vector2Seed = "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542"

// testSeed returns the seed of abandonMnemonic with no passphrase.
func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := SeedFromMnemonic(abandonMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

func testMaster(t *testing.T) *HDKey {
	t.Helper()
	master, err := NewMasterKey(testSeed(t), BitcoinMainnet.BIP32)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	return master
}

func TestNewMasterKey(t *testing.T) {
	master := testMaster(t)

	if !master.IsPrivate() {
		t.Error("master key should be private")
	}
	if master.Depth() != 0 {
		t.Errorf("master key depth = %d, want 0", master.Depth())
	}
	if n := len(master.PrivateKeyBytes()); n != 32 {
		t.Errorf("private key length = %d, want 32", n)
	}
	if n := len(master.PublicKeyBytes()); n != 33 {
		t.Errorf("public key length = %d, want 33", n)
	}

	want := "xprv9s21ZrQH143K3GJpoapnV8SFfukcVBSfeCficPSGfubmSFDxo1kuHnLisriDvSnRRuL2Qrg5ggqHKNVpxR86QEC8w35uxmGoggxtQTPvfUu"
	if got := master.String(); got != want {
		t.Errorf("master = %s, want %s", got, want)
	}
}

func TestNewMasterKey_BIP32Vector2(t *testing.T) {
	seed, _ := hex.DecodeString(bip32Vector2Seed)
	master, err := NewMasterKey(seed, BitcoinMainnet.BIP32)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}

	child, err := master.DeriveChild(0)
	if err != nil {
		t.Fatalf("DeriveChild(0) error: %v", err)
	}

	tests := []struct {
		name string
		key  *HDKey
		want string
	}{
		{"m", master, "xprv9s21ZrQH143K31xYSDQpPDxsXRTUcvj2iNHm5NUtrGiGG5e2DtALGdso3pGz6ssrdK4PFmM8NSpSBHNqPqm55Qn3LqFtT2emdEXVYsCzC2U"},
		{"M", master.Neuter(), "xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB"},
		{"m/0", child, "xprv9vHkqa6EV4sPZHYqZznhT2NPtPCjKuDKGY38FBWLvgaDx45zo9WQRUT3dKYnjwih2yJD9mkrocEZXo1ex8G81dwSM1fwqWpWkeS3v86pgKt"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestNewMasterKey_NetworkVersions(t *testing.T) {
	seed, _ := hex.DecodeString(bip32Vector2Seed)
	master, err := NewMasterKey(seed, BitcoinTestnet.BIP32)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	want := "tprv8ZgxMBicQKsPdqC56nGKYsarqYsgrSm33vCswnuMLFCk3gP7DFW5nPFExzSe7FGAzkbAFrxtXoQEe8vaX471tU3dsUUC7PNpYLGuzb2agmj"
	if got := master.String(); got != want {
		t.Errorf("testnet master = %s, want %s", got, want)
	}
	if !strings.HasPrefix(master.Neuter().String(), "tpub") {
		t.Errorf("testnet neutered key = %s, want tpub prefix", master.Neuter().String())
	}

	child, err := master.DeriveChild(bip32.FirstHardenedChild)
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}
	if !strings.HasPrefix(child.String(), "tprv") {
		t.Errorf("testnet child = %s, want tprv prefix", child.String())
	}
	if child.Versions() != BitcoinTestnet.BIP32 {
		t.Errorf("child versions = %+v, want %+v", child.Versions(), BitcoinTestnet.BIP32)
	}
}

func TestNewMasterKey_InvalidSeed(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
		want error
	}{
		{"empty", []byte{}, ErrInvalidInput},
		{"too short", make([]byte, 32), ErrDerivation},
		{"too long", make([]byte, 128), ErrDerivation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMasterKey(tt.seed, BitcoinMainnet.BIP32)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewMasterKey() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDeriveChild(t *testing.T) {
	master := testMaster(t)

	normal, err := master.DeriveChild(0)
	if err != nil {
		t.Fatalf("DeriveChild(0) error: %v", err)
	}
	hardened, err := master.DeriveChild(bip32.FirstHardenedChild)
	if err != nil {
		t.Fatalf("DeriveChild(0') error: %v", err)
	}
	if normal.Depth() != 1 || hardened.Depth() != 1 {
		t.Errorf("child depths = %d, %d, want 1", normal.Depth(), hardened.Depth())
	}
	if bytes.Equal(normal.PrivateKeyBytes(), hardened.PrivateKeyBytes()) {
		t.Error("normal and hardened children should differ")
	}

	again, _ := master.DeriveChild(0)
	if !bytes.Equal(normal.PrivateKeyBytes(), again.PrivateKeyBytes()) {
		t.Error("DeriveChild should be deterministic")
	}
}

func TestDerivePath_MatchesDeriveAddress(t *testing.T) {
	master := testMaster(t)

	path, err := ParseDerivationPath("m/44'/0'/0'/0/0")
	if err != nil {
		t.Fatalf("ParseDerivationPath() error: %v", err)
	}
	viaPath, err := master.DerivePath(path)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	viaAddress, err := master.DeriveAddress(0, 0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}

	if viaPath.Depth() != 5 {
		t.Errorf("depth = %d, want 5", viaPath.Depth())
	}
	if !bytes.Equal(viaPath.PrivateKeyBytes(), viaAddress.PrivateKeyBytes()) {
		t.Error("DerivePath and DeriveAddress should agree")
	}

	want := "e284129cc0922579a535bbf4d1a3b25773090d28c909bc0fed73b5e0222cc372"
	if got := hex.EncodeToString(viaPath.PrivateKeyBytes()); got != want {
		t.Errorf("m/44'/0'/0'/0/0 private key = %s, want %s", got, want)
	}
}

func TestDerivePath_Empty(t *testing.T) {
	master := testMaster(t)
	same, err := master.DerivePath(DerivationPath{})
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	if same.String() != master.String() {
		t.Error("empty path should return the key itself")
	}
}

func TestNeuter(t *testing.T) {
	master := testMaster(t)
	pub := master.Neuter()

	if pub.IsPrivate() {
		t.Error("neutered key should not be private")
	}
	if pub.PrivateKeyBytes() != nil {
		t.Error("neutered key should return nil private key bytes")
	}
	if !bytes.Equal(pub.PublicKeyBytes(), master.PublicKeyBytes()) {
		t.Error("neutered key should keep the public key")
	}
	if pub.Fingerprint() != master.Fingerprint() {
		t.Error("neutered key should keep the fingerprint")
	}

	// Public derivation matches the public half of private derivation.
	privChild, _ := master.DeriveChild(5)
	pubChild, err := pub.DeriveChild(5)
	if err != nil {
		t.Fatalf("public DeriveChild() error: %v", err)
	}
	if !bytes.Equal(privChild.PublicKeyBytes(), pubChild.PublicKeyBytes()) {
		t.Error("public child derivation mismatch")
	}
	if _, err := pub.DeriveChild(bip32.FirstHardenedChild); !errors.Is(err, ErrDerivation) {
		t.Errorf("hardened child of public key err = %v, want ErrDerivation", err)
	}
}

func TestHDKey_CloneAndZero(t *testing.T) {
	master := testMaster(t)
	want := master.String()

	c := master.clone()
	master.zero()

	if c.String() != want {
		t.Error("clone should survive zeroing the original")
	}
	if !bytes.Equal(master.PrivateKeyBytes(), make([]byte, 32)) {
		t.Error("zero should wipe the private key")
	}
}
