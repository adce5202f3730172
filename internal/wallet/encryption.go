package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption constants.
const (
	SaltSize = 32
	// Encrypted format: [salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
	headerSize = SaltSize + 4 + 4 + 1

	// Upper bounds on what a stored header may request (1 GiB, 64 passes).
	maxMemory     = 1024 * 1024
	maxIterations = 64
)

// Ciphertext is a sealed value produced by Encrypt.
type Ciphertext []byte

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 `json:"memory"` // in KiB
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

// Validate rejects parameters Argon2 cannot run with.
func (p EncryptionParams) Validate() error {
	if p.Iterations < 1 || p.Iterations > maxIterations {
		return fmt.Errorf("argon2 iterations must be in [1, %d]", maxIterations)
	}
	if p.Parallelism < 1 {
		return fmt.Errorf("argon2 parallelism must be >= 1")
	}
	if p.Memory < 8*uint32(p.Parallelism) || p.Memory > maxMemory {
		return fmt.Errorf("argon2 memory must be in [%d, %d] KiB", 8*uint32(p.Parallelism), maxMemory)
	}
	return nil
}

// deriveKey uses Argon2id to derive a 32-byte encryption key from password and salt.
func deriveKey(password, salt []byte, params EncryptionParams) []byte {
	return argon2.IDKey(
		password,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// Encrypt encrypts data with password using Argon2id + XChaCha20-Poly1305.
//
// Output format: salt(32) | memory(4) | iterations(4) | parallelism(1) | nonce(24) | ciphertext
func Encrypt(data, password []byte, params EncryptionParams) (Ciphertext, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(password, salt, params)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, headerSize+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Decrypt decrypts data encrypted by Encrypt with the given password.
// Any authentication or format failure is reported as ErrDecryption.
func Decrypt(encrypted Ciphertext, password []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(encrypted) < minSize {
		return nil, fmt.Errorf("%w: encrypted data too short: %d bytes, need at least %d", ErrDecryption, len(encrypted), minSize)
	}

	salt := encrypted[:SaltSize]
	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(encrypted[SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(encrypted[SaltSize+4:]),
		Parallelism: encrypted[SaltSize+8],
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: corrupt header: %w", ErrDecryption, err)
	}

	nonce := encrypted[headerSize : headerSize+nonceSize]
	sealed := encrypted[headerSize+nonceSize:]

	key := deriveKey(password, salt, params)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	return plaintext, nil
}

// EncryptField JSON-encodes v and seals it under password.
func EncryptField[T any](password []byte, v T, params EncryptionParams) (Ciphertext, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode field: %w", err)
	}
	defer zeroBytes(data)
	return Encrypt(data, password, params)
}

// DecryptField opens a value sealed by EncryptField.
func DecryptField[T any](password []byte, c Ciphertext) (T, error) {
	var v T
	data, err := Decrypt(c, password)
	if err != nil {
		return v, err
	}
	defer zeroBytes(data)
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: decode field: %w", ErrDecryption, err)
	}
	return v, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
