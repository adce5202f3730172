package crypto

import (
	"encoding/hex"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:  "hello",
			input: []byte("hello"),
			want:  "ea8f163db38682925e4491c5e58d4bb3506ef8c14eb78a86e908c5624a67200f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hash(tt.input)
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("Hash(%q) = %x, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestHash160(t *testing.T) {
	// Compressed public key of the secp256k1 generator point (private key 1).
	pub, _ := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	got := Hash160(pub)
	want := "751e76e8199196d454941c45d1b3a323f1433bd6"
	if hex.EncodeToString(got) != want {
		t.Errorf("Hash160() = %x, want %s", got, want)
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint([]byte("hello"))
	if fp != "ea8f163db3868292" {
		t.Errorf("Fingerprint() = %s, want ea8f163db3868292", fp)
	}
	if len(fp) != FingerprintSize*2 {
		t.Errorf("fingerprint length = %d, want %d", len(fp), FingerprintSize*2)
	}
	if Fingerprint([]byte("a")) == Fingerprint([]byte("b")) {
		t.Error("different inputs should have different fingerprints")
	}
}
