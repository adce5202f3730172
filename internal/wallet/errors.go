package wallet

import "errors"

// Wallet errors. Operations wrap these with context, so match with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidMnemonic     = errors.New("invalid mnemonic")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrLocked              = errors.New("wallet is locked")
	ErrAlreadyLocked       = errors.New("wallet is already locked")
	ErrNotLocked           = errors.New("wallet is not locked")
	ErrDecryption          = errors.New("decryption failed")
	ErrDerivation          = errors.New("key derivation failed")
	ErrKeyMaterial         = errors.New("private key unavailable")
)

// Keystore errors.
var (
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletNotFound = errors.New("wallet not found")
)
