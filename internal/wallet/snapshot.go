package wallet

import (
	"fmt"
	"time"
)

// SnapshotVersion is the current Snapshot format.
const SnapshotVersion = 1

// Snapshot is a sealed copy of a wallet's secrets plus the public metadata
// needed to rebuild it. It is safe to store or transmit.
type Snapshot struct {
	Version     int           `json:"version"`
	CreatedAt   time.Time     `json:"created_at"`
	Fingerprint string        `json:"fingerprint"`
	Language    Language      `json:"language"`
	Network     NetworkParams `json:"network"`
	Mnemonic    Ciphertext    `json:"mnemonic"`
	Passphrase  Ciphertext    `json:"passphrase,omitempty"`
	Words       Ciphertext    `json:"words"`
}

// Export seals the wallet's secrets under password without changing its
// state.
func (w *Wallet) Export(password string) (*Snapshot, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}

	pw := []byte(password)
	defer zeroBytes(pw)

	sealed, err := sealState(st, pw, w.kdf)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return &Snapshot{
		Version:     SnapshotVersion,
		CreatedAt:   time.Now().UTC(),
		Fingerprint: w.fingerprint,
		Language:    w.language,
		Network:     w.network,
		Mnemonic:    sealed.mnemonic,
		Passphrase:  sealed.passphrase,
		Words:       sealed.words,
	}, nil
}

// Restore opens a snapshot into a new unlocked wallet. kdf sets the
// parameters for later locks and may be nil for DefaultParams.
func Restore(snap *Snapshot, password string, kdf *EncryptionParams) (*Wallet, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidInput)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrInvalidInput, snap.Version)
	}

	if !snap.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, snap.Language)
	}
	params, err := resolveKDF(kdf)
	if err != nil {
		return nil, err
	}

	pw := []byte(password)
	defer zeroBytes(pw)

	st, err := openState(&lockedState{
		mnemonic:   snap.Mnemonic,
		passphrase: snap.Passphrase,
		words:      snap.Words,
	}, pw, snap.Language, snap.Network)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if fp := st.master.Fingerprint(); snap.Fingerprint != "" && fp != snap.Fingerprint {
		st.wipe()
		return nil, fmt.Errorf("restore: %w: snapshot fingerprint %s does not match %s", ErrDecryption, snap.Fingerprint, fp)
	}
	return newWallet(snap.Language, snap.Network, params, st), nil
}
