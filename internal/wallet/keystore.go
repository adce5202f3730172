package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	klog "github.com/Klingon-tech/klingwallet/internal/log"
	"github.com/Klingon-tech/klingwallet/internal/storage"
)

// keyPrefix namespaces snapshot entries inside the keystore DB.
const keyPrefix = "wallet/"

// MaxNameLength bounds wallet names stored in a Keystore.
const MaxNameLength = 64

// Keystore persists sealed wallet snapshots in a key-value database.
// Only ciphertext and public metadata ever reach the DB. Each keystore
// sees a single network's namespace, so one database can hold wallets
// for every network.
type Keystore struct {
	network string
	db      *storage.PrefixDB
}

// NewKeystore creates a keystore for network on top of db.
func NewKeystore(db storage.DB, network string) *Keystore {
	return &Keystore{
		network: network,
		db:      storage.NewPrefixDB(db, NetworkPrefix(network)),
	}
}

// NetworkPrefix returns the key namespace holding network's wallets.
func NetworkPrefix(network string) []byte {
	return []byte("net/" + network + "/")
}

func walletKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// ValidateName checks that name is usable as a keystore entry.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: wallet name is empty", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: wallet name longer than %d bytes", ErrInvalidInput, MaxNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("%w: wallet name %q contains %q", ErrInvalidInput, name, r)
		}
	}
	return nil
}

// Save stores snap under name. Existing entries are never overwritten.
func (ks *Keystore) Save(name string, snap *Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidInput)
	}

	exists, err := ks.db.Has(walletKey(name))
	if err != nil {
		return fmt.Errorf("check wallet %q: %w", name, err)
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrWalletExists, name)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := ks.db.Put(walletKey(name), data); err != nil {
		return fmt.Errorf("store wallet %q: %w", name, err)
	}
	klog.Keystore.Info().Str("name", name).Str("fingerprint", snap.Fingerprint).Msg("wallet saved")
	return nil
}

// Load returns the snapshot stored under name.
func (ks *Keystore) Load(name string) (*Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := ks.db.Get(walletKey(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load wallet %q: %w", name, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode wallet %q: %w", name, err)
	}
	return &snap, nil
}

// Has reports whether a wallet is stored under name.
func (ks *Keystore) Has(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	return ks.db.Has(walletKey(name))
}

// List returns the stored wallet names in sorted order.
func (ks *Keystore) List() ([]string, error) {
	var names []string
	err := ks.db.ForEach([]byte(keyPrefix), func(key, _ []byte) error {
		names = append(names, strings.TrimPrefix(string(key), keyPrefix))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return names, nil
}

// Delete removes the wallet stored under name.
func (ks *Keystore) Delete(name string) error {
	exists, err := ks.Has(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err := ks.db.Delete(walletKey(name)); err != nil {
		return fmt.Errorf("delete wallet %q: %w", name, err)
	}
	klog.Keystore.Info().Str("name", name).Msg("wallet deleted")
	return nil
}

// Purge removes every wallet stored for the keystore's network and
// returns how many were removed. Other networks are untouched.
func (ks *Keystore) Purge() (int, error) {
	names, err := ks.List()
	if err != nil {
		return 0, err
	}
	if err := ks.db.DeleteAll(); err != nil {
		return 0, fmt.Errorf("purge %s wallets: %w", ks.network, err)
	}
	klog.Keystore.Info().Str("network", ks.network).Int("count", len(names)).Msg("keystore purged")
	return len(names), nil
}
