// Package config handles klingwallet configuration.
//
// Settings are layered: network defaults, then the key = value config file,
// then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingwallet/internal/wallet"
)

// NetworkType identifies the chain whose encodings are used.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
	Regtest NetworkType = "regtest"
	Simnet  NetworkType = "simnet"
)

// Config holds CLI runtime configuration.
type Config struct {
	Network  NetworkType `conf:"network"`
	Language string      `conf:"language"`
	DataDir  string      `conf:"datadir"`

	// Argon2id parameters used when sealing wallets
	KDF KDFConfig

	// Logging
	Log LogConfig
}

// KDFConfig holds the Argon2id cost used by Lock and Export.
type KDFConfig struct {
	Memory      uint32 `conf:"kdf.memory"` // KiB
	Iterations  uint32 `conf:"kdf.iterations"`
	Parallelism uint8  `conf:"kdf.parallelism"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// EncryptionParams converts the KDF settings for the wallet package.
func (k KDFConfig) EncryptionParams() wallet.EncryptionParams {
	return wallet.EncryptionParams{
		Memory:      k.Memory,
		Iterations:  k.Iterations,
		Parallelism: k.Parallelism,
	}
}

// WalletNetwork resolves the configured network's encoding parameters.
func (c *Config) WalletNetwork() (wallet.NetworkParams, error) {
	return wallet.NetworkByName(string(c.Network))
}

// WalletLanguage resolves the configured wordlist language.
func (c *Config) WalletLanguage() (wallet.Language, error) {
	return wallet.ParseLanguage(c.Language)
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingwallet
//	macOS:   ~/Library/Application Support/Klingwallet
//	Windows: %APPDATA%\Klingwallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingwallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingwallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingwallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingwallet")
	default:
		return filepath.Join(home, ".klingwallet")
	}
}

// KeystoreDir returns the keystore database directory. All networks share
// one database; entries are namespaced by network inside it.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.DataDir, "keystore")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingwallet.conf")
}
