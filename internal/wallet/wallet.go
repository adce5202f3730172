package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	klog "github.com/Klingon-tech/klingwallet/internal/log"
	"github.com/rs/zerolog"
	"github.com/tyler-smith/go-bip32"
)

// Options configures New. Zero values select defaults: a fresh 12-word
// mnemonic, English, Bitcoin mainnet and DefaultParams for locking.
type Options struct {
	Mnemonic   string
	Passphrase string
	Language   Language
	Network    *NetworkParams
	KDF        *EncryptionParams
}

// AddressOptions selects a run of address pairs. Negative values are
// taken as their absolute value and a zero Count means one pair.
type AddressOptions struct {
	Count   int
	Index   int
	Account int
}

// walletState is either *unlockedState or *lockedState. Plaintext secrets
// are only reachable through the former.
type walletState interface {
	walletState()
}

type unlockedState struct {
	mnemonic   string
	passphrase string
	words      []string
	seed       []byte
	master     *HDKey
}

type lockedState struct {
	mnemonic   Ciphertext
	passphrase Ciphertext // nil when the wallet has no passphrase
	words      Ciphertext
}

func (*unlockedState) walletState() {}
func (*lockedState) walletState() {}

func (st *unlockedState) wipe() {
	zeroBytes(st.seed)
	st.master.zero()
	st.seed = nil
	st.master = nil
}

// Wallet is a BIP-39/BIP-44 wallet that can be locked under a password.
// While locked, the seed and master key are discarded and only ciphertext
// of the mnemonic, passphrase and word list is kept.
//
// A Wallet is not safe for concurrent use; callers must serialize access.
type Wallet struct {
	language    Language
	network     NetworkParams
	kdf         EncryptionParams
	fingerprint string
	state       walletState
	logger      zerolog.Logger
}

// New builds an unlocked wallet, generating a mnemonic when none is given.
func New(opts Options) (*Wallet, error) {
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	net := DefaultNetwork
	if opts.Network != nil {
		net = *opts.Network
	}

	kdf, err := resolveKDF(opts.KDF)
	if err != nil {
		return nil, err
	}

	mnemonic := opts.Mnemonic
	if strings.TrimSpace(mnemonic) == "" {
		generated, err := GenerateMnemonic(lang)
		if err != nil {
			return nil, err
		}
		mnemonic = generated
	}

	st, err := deriveState(mnemonic, opts.Passphrase, lang, net)
	if err != nil {
		return nil, err
	}
	return newWallet(lang, net, kdf, st), nil
}

func newWallet(lang Language, net NetworkParams, kdf EncryptionParams, st *unlockedState) *Wallet {
	w := &Wallet{
		language:    lang,
		network:     net,
		kdf:         kdf,
		fingerprint: st.master.Fingerprint(),
		state:       st,
	}
	w.logger = klog.WithWallet(w.fingerprint)
	w.logger.Debug().
		Str("network", net.Name).
		Str("language", string(lang)).
		Msg("wallet ready")
	return w
}

func resolveKDF(p *EncryptionParams) (EncryptionParams, error) {
	kdf := DefaultParams()
	if p != nil {
		kdf = *p
	}
	if err := kdf.Validate(); err != nil {
		return EncryptionParams{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return kdf, nil
}

// deriveState validates mnemonic and runs seed and master key derivation.
func deriveState(mnemonic, passphrase string, lang Language, net NetworkParams) (*unlockedState, error) {
	if err := ValidateMnemonic(mnemonic, lang); err != nil {
		return nil, err
	}
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	master, err := NewMasterKey(seed, net.BIP32)
	if err != nil {
		return nil, err
	}
	return &unlockedState{
		mnemonic:   mnemonic,
		passphrase: passphrase,
		words:      strings.Fields(mnemonic),
		seed:       seed,
		master:     master,
	}, nil
}

func (w *Wallet) unlocked() (*unlockedState, error) {
	st, ok := w.state.(*unlockedState)
	if !ok {
		return nil, ErrLocked
	}
	return st, nil
}

// IsLocked reports whether the wallet is locked.
func (w *Wallet) IsLocked() bool {
	_, ok := w.state.(*lockedState)
	return ok
}

// Language returns the wallet's wordlist language.
func (w *Wallet) Language() Language { return w.language }

// Network returns the wallet's network parameters.
func (w *Wallet) Network() NetworkParams { return w.network }

// Fingerprint returns the wallet's public identifier. It is available in
// both states and reveals nothing secret.
func (w *Wallet) Fingerprint() string { return w.fingerprint }

// String describes the wallet without revealing secrets. Use Mnemonic to
// read the phrase.
func (w *Wallet) String() string {
	state := "unlocked"
	if w.IsLocked() {
		state = "locked"
	}
	return fmt.Sprintf("wallet(%s, %s, %s)", w.fingerprint, w.network.Name, state)
}

// Mnemonic returns the seed phrase.
func (w *Wallet) Mnemonic() (string, error) {
	st, err := w.unlocked()
	if err != nil {
		return "", err
	}
	return st.mnemonic, nil
}

// Passphrase returns the BIP-39 passphrase, empty if none was set.
func (w *Wallet) Passphrase() (string, error) {
	st, err := w.unlocked()
	if err != nil {
		return "", err
	}
	return st.passphrase, nil
}

// Words returns the mnemonic split into words.
func (w *Wallet) Words() ([]string, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), st.words...), nil
}

// Seed returns a copy of the 64-byte BIP-39 seed.
func (w *Wallet) Seed() ([]byte, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), st.seed...), nil
}

// HexSeed returns the seed as lowercase hex.
func (w *Wallet) HexSeed() (string, error) {
	st, err := w.unlocked()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(st.seed), nil
}

// IsValid re-checks the mnemonic against the wallet's wordlist.
func (w *Wallet) IsValid() (bool, error) {
	st, err := w.unlocked()
	if err != nil {
		return false, err
	}
	return IsMnemonicValid(st.mnemonic, w.language), nil
}

// MasterKey returns a copy of the master extended private key. The copy
// is not wiped by Lock.
func (w *Wallet) MasterKey() (*HDKey, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}
	return st.master.clone(), nil
}

// GenerateAddress derives the address record at path, e.g. m/44'/0'/0'/0/0.
// The record's Path is the canonical rendering of path.
func (w *Wallet) GenerateAddress(path string) (AddressRecord, error) {
	st, err := w.unlocked()
	if err != nil {
		return AddressRecord{}, err
	}
	parsed, err := ParseDerivationPath(path)
	if err != nil {
		return AddressRecord{}, err
	}
	key, err := st.master.DerivePath(parsed)
	if err != nil {
		return AddressRecord{}, err
	}
	return BuildAddress(key, w.network, parsed.String())
}

// GenerateAddresses derives Count consecutive external/change pairs
// starting at Index for Account. Nothing is cached between calls.
func (w *Wallet) GenerateAddresses(opts AddressOptions) ([]AddressPair, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}

	count, err := absElement(opts.Count, "count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count = 1
	}
	index, err := absElement(opts.Index, "index")
	if err != nil {
		return nil, err
	}
	account, err := absElement(opts.Account, "account")
	if err != nil {
		return nil, err
	}
	if uint64(index)+uint64(count)-1 > MaxIndex {
		return nil, fmt.Errorf("%w: index range %d+%d exceeds %d", ErrDerivation, index, count, MaxIndex)
	}

	coin := w.network.BIP44
	accountKey, err := st.master.DerivePath(DerivationPath{
		PurposeBIP44,
		bip32.FirstHardenedChild + coin,
		bip32.FirstHardenedChild + account,
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]AddressPair, 0, min(count, 256))
	for i := index; i < index+count; i++ {
		external, err := w.accountAddress(accountKey, account, ChangeExternal, i)
		if err != nil {
			return nil, err
		}
		change, err := w.accountAddress(accountKey, account, ChangeInternal, i)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, AddressPair{External: external, Change: change})
	}
	return pairs, nil
}

func (w *Wallet) accountAddress(accountKey *HDKey, account, chain, index uint32) (AddressRecord, error) {
	key, err := accountKey.DerivePath(DerivationPath{chain, index})
	if err != nil {
		return AddressRecord{}, err
	}
	path, err := BIP44Path(w.network.BIP44, account, chain, index)
	if err != nil {
		return AddressRecord{}, err
	}
	return BuildAddress(key, w.network, path.String())
}

func absElement(v int, field string) (uint32, error) {
	n := int64(v)
	if n < 0 {
		n = -n
	}
	// -MinInt64 wraps to itself.
	if n < 0 || n > MaxIndex {
		return 0, fmt.Errorf("%w: %s %d exceeds %d", ErrDerivation, field, v, MaxIndex)
	}
	return uint32(n), nil
}

// Lock seals the mnemonic, passphrase and word list under password and
// discards the seed and master key. The state changes only if every field
// was sealed.
func (w *Wallet) Lock(password string) error {
	st, ok := w.state.(*unlockedState)
	if !ok {
		return ErrAlreadyLocked
	}

	pw := []byte(password)
	defer zeroBytes(pw)

	next, err := sealState(st, pw, w.kdf)
	if err != nil {
		return fmt.Errorf("lock: %w", err)
	}

	w.state = next
	st.wipe()
	w.logger.Debug().Msg("wallet locked")
	return nil
}

// Unlock opens the sealed fields with password and re-derives the seed and
// master key. On any failure the wallet stays locked with its ciphertext
// untouched.
func (w *Wallet) Unlock(password string) error {
	st, ok := w.state.(*lockedState)
	if !ok {
		return ErrNotLocked
	}

	pw := []byte(password)
	defer zeroBytes(pw)

	next, err := openState(st, pw, w.language, w.network)
	if err != nil {
		w.logger.Debug().Err(err).Msg("unlock failed")
		return fmt.Errorf("unlock: %w", err)
	}
	if fp := next.master.Fingerprint(); fp != w.fingerprint {
		next.wipe()
		return fmt.Errorf("unlock: %w: recovered key %s does not match wallet", ErrDecryption, fp)
	}

	w.state = next
	w.logger.Debug().Msg("wallet unlocked")
	return nil
}

// sealState encrypts every sensitive field of st into a new locked state.
func sealState(st *unlockedState, pw []byte, kdf EncryptionParams) (*lockedState, error) {
	next := &lockedState{}
	var err error
	if next.mnemonic, err = EncryptField(pw, st.mnemonic, kdf); err != nil {
		return nil, fmt.Errorf("seal mnemonic: %w", err)
	}
	if st.passphrase != "" {
		if next.passphrase, err = EncryptField(pw, st.passphrase, kdf); err != nil {
			return nil, fmt.Errorf("seal passphrase: %w", err)
		}
	}
	if next.words, err = EncryptField(pw, st.words, kdf); err != nil {
		return nil, fmt.Errorf("seal words: %w", err)
	}
	return next, nil
}

// openState decrypts st and rebuilds a fully derived unlocked state.
func openState(st *lockedState, pw []byte, lang Language, net NetworkParams) (*unlockedState, error) {
	mnemonic, err := DecryptField[string](pw, st.mnemonic)
	if err != nil {
		return nil, fmt.Errorf("open mnemonic: %w", err)
	}
	var passphrase string
	if st.passphrase != nil {
		if passphrase, err = DecryptField[string](pw, st.passphrase); err != nil {
			return nil, fmt.Errorf("open passphrase: %w", err)
		}
	}
	words, err := DecryptField[[]string](pw, st.words)
	if err != nil {
		return nil, fmt.Errorf("open words: %w", err)
	}

	next, err := deriveState(mnemonic, passphrase, lang, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	if strings.Join(words, " ") != strings.Join(next.words, " ") {
		next.wipe()
		return nil, fmt.Errorf("%w: word list does not match mnemonic", ErrDecryption)
	}
	return next, nil
}
