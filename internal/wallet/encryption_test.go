package wallet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// fastParams returns low-cost Argon2 params for fast tests.
func fastParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64, // 64 KiB (minimal)
		Iterations:  1,
		Parallelism: 1,
	}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("secret wallet data")},
		{"empty", []byte{}},
		{"large", bytes.Repeat([]byte{0xA5, 0x5A}, 5000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password := []byte("strong-password-123")
			encrypted, err := Encrypt(tt.data, password, fastParams())
			if err != nil {
				t.Fatalf("Encrypt() error: %v", err)
			}
			decrypted, err := Decrypt(encrypted, password)
			if err != nil {
				t.Fatalf("Decrypt() error: %v", err)
			}
			if !bytes.Equal(decrypted, tt.data) {
				t.Errorf("decrypted %d bytes, want %d", len(decrypted), len(tt.data))
			}
		})
	}
}

func TestDecrypt_Failures(t *testing.T) {
	good, err := Encrypt([]byte("data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	tampered := bytes.Clone(good)
	tampered[len(tampered)-1] ^= 0xFF

	badHeader := bytes.Clone(good)
	badHeader[SaltSize+8] = 0 // parallelism

	hugeMemory := bytes.Clone(good)
	binary.LittleEndian.PutUint32(hugeMemory[SaltSize:], 4*1024*1024)

	endlessPasses := bytes.Clone(good)
	binary.LittleEndian.PutUint32(endlessPasses[SaltSize+4:], 1<<31)

	tests := []struct {
		name     string
		data     Ciphertext
		password string
	}{
		{"wrong password", good, "wrong"},
		{"truncated", Ciphertext("too short"), "pass"},
		{"tampered tag", tampered, "pass"},
		{"corrupt header", badHeader, "pass"},
		{"memory over cap", hugeMemory, "pass"},
		{"iterations over cap", endlessPasses, "pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.data, []byte(tt.password))
			if !errors.Is(err, ErrDecryption) {
				t.Fatalf("Decrypt() err = %v, want ErrDecryption", err)
			}
		})
	}
}

func TestEncrypt_DifferentEachTime(t *testing.T) {
	plaintext := []byte("same data")
	password := []byte("same pass")

	enc1, err := Encrypt(plaintext, password, fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	enc2, err := Encrypt(plaintext, password, fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if bytes.Equal(enc1, enc2) {
		t.Error("encrypting same data twice should use a fresh salt and nonce")
	}
}

func TestEncrypt_HeaderCarriesParams(t *testing.T) {
	params := EncryptionParams{Memory: 128, Iterations: 2, Parallelism: 2}
	encrypted, err := Encrypt([]byte("x"), []byte("pass"), params)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if got := binary.LittleEndian.Uint32(encrypted[SaltSize:]); got != params.Memory {
		t.Errorf("header memory = %d, want %d", got, params.Memory)
	}
	if got := binary.LittleEndian.Uint32(encrypted[SaltSize+4:]); got != params.Iterations {
		t.Errorf("header iterations = %d, want %d", got, params.Iterations)
	}
	if got := encrypted[SaltSize+8]; got != params.Parallelism {
		t.Errorf("header parallelism = %d, want %d", got, params.Parallelism)
	}

	// header + nonce(24) + plaintext(1) + tag(16)
	if want := headerSize + 24 + 1 + 16; len(encrypted) != want {
		t.Errorf("encrypted length = %d, want %d", len(encrypted), want)
	}
}

func TestEncryptionParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  EncryptionParams
		wantErr bool
	}{
		{"default", DefaultParams(), false},
		{"fast", fastParams(), false},
		{"zero iterations", EncryptionParams{Memory: 64, Iterations: 0, Parallelism: 1}, true},
		{"zero parallelism", EncryptionParams{Memory: 64, Iterations: 1, Parallelism: 0}, true},
		{"memory below 8*p", EncryptionParams{Memory: 15, Iterations: 1, Parallelism: 2}, true},
		{"memory too large", EncryptionParams{Memory: maxMemory + 1, Iterations: 1, Parallelism: 1}, true},
		{"memory at cap", EncryptionParams{Memory: maxMemory, Iterations: 1, Parallelism: 1}, false},
		{"iterations too large", EncryptionParams{Memory: 64, Iterations: maxIterations + 1, Parallelism: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if _, err := Encrypt([]byte("x"), []byte("p"), tt.params); err == nil {
					t.Error("Encrypt() accepted invalid params")
				}
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Memory != 64*1024 || p.Iterations != 3 || p.Parallelism != 4 {
		t.Errorf("DefaultParams() = %+v, want {65536 3 4}", p)
	}
}

func TestEncryptField_Roundtrip(t *testing.T) {
	password := []byte("field-pass")
	words := []string{"abandon", "ability", "able"}

	sealed, err := EncryptField(password, words, fastParams())
	if err != nil {
		t.Fatalf("EncryptField() error: %v", err)
	}
	got, err := DecryptField[[]string](password, sealed)
	if err != nil {
		t.Fatalf("DecryptField() error: %v", err)
	}
	if len(got) != len(words) {
		t.Fatalf("DecryptField() = %v, want %v", got, words)
	}
	for i := range words {
		if got[i] != words[i] {
			t.Fatalf("DecryptField() = %v, want %v", got, words)
		}
	}

	if _, err := DecryptField[[]string]([]byte("nope"), sealed); !errors.Is(err, ErrDecryption) {
		t.Errorf("DecryptField() wrong password err = %v, want ErrDecryption", err)
	}
}

func TestDecryptField_TypeMismatch(t *testing.T) {
	password := []byte("pass")
	sealed, err := EncryptField(password, "a plain string", fastParams())
	if err != nil {
		t.Fatalf("EncryptField() error: %v", err)
	}
	if _, err := DecryptField[[]string](password, sealed); !errors.Is(err, ErrDecryption) {
		t.Errorf("DecryptField() type mismatch err = %v, want ErrDecryption", err)
	}
}
