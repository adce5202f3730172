package wallet

import "encoding/hex"

// Inspection is a deep copy of an unlocked wallet's state.
type Inspection struct {
	Mnemonic    string        `json:"mnemonic"`
	Passphrase  string        `json:"passphrase,omitempty"`
	Language    Language      `json:"language"`
	Network     NetworkParams `json:"network"`
	Seed        []byte        `json:"-"`
	HexSeed     string        `json:"hexString"`
	Words       []string      `json:"words"`
	Entropy     string        `json:"entropy"`
	MasterKey   string        `json:"hdKey"`
	Fingerprint string        `json:"fingerprint"`
}

// Inspect returns a copy of everything the wallet holds. Mutating the
// result does not affect the wallet.
func (w *Wallet) Inspect() (*Inspection, error) {
	st, err := w.unlocked()
	if err != nil {
		return nil, err
	}
	entropy, err := EntropyFromMnemonic(st.mnemonic, w.language)
	if err != nil {
		return nil, err
	}
	return &Inspection{
		Mnemonic:    st.mnemonic,
		Passphrase:  st.passphrase,
		Language:    w.language,
		Network:     w.network,
		Seed:        append([]byte(nil), st.seed...),
		HexSeed:     hex.EncodeToString(st.seed),
		Words:       append([]string(nil), st.words...),
		Entropy:     hex.EncodeToString(entropy),
		MasterKey:   st.master.String(),
		Fingerprint: w.fingerprint,
	}, nil
}
