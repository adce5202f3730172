// derive_key.go prints the public key, address and WIF for a hex-encoded
// private key file.
// Usage: go run scripts/derive_key.go [network] <keyfile>
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingwallet/internal/wallet"
)

func main() {
	args := os.Args[1:]
	network := "mainnet"
	if len(args) == 2 {
		network, args = args[0], args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: derive_key [network] <keyfile>")
		os.Exit(1)
	}

	net, err := wallet.NetworkByName(network)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rec, err := wallet.RecordFromPrivateKey(keyBytes, net, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", rec.PublicKey)
	fmt.Printf("address=%s\n", rec.Address)
	fmt.Printf("wif=%s\n", rec.WIF)
}
