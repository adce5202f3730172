package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestPrivateKeyFromBytes_Generator(t *testing.T) {
	one := make([]byte, PrivateKeySize)
	one[31] = 1

	key, err := PrivateKeyFromBytes(one)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	want := "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	if got := hex.EncodeToString(key.PublicKey()); got != want {
		t.Errorf("PublicKey() = %s, want %s", got, want)
	}

	if !bytes.Equal(key.Serialize(), one) {
		t.Errorf("Serialize() = %x, want %x", key.Serialize(), one)
	}
}

func TestPrivateKeyFromBytes_Invalid(t *testing.T) {
	order, _ := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", make([]byte, 31)},
		{"too long", make([]byte, 33)},
		{"zero", make([]byte, 32)},
		{"curve order", order},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrivateKeyFromBytes(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	b := make([]byte, PrivateKeySize)
	b[31] = 7
	key, err := PrivateKeyFromBytes(b)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	key.Zero()
	if !bytes.Equal(key.Serialize(), make([]byte, PrivateKeySize)) {
		t.Error("Zero() should clear the scalar")
	}
}
