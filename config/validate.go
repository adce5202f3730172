package config

import (
	"fmt"

	klog "github.com/Klingon-tech/klingwallet/internal/log"
	"github.com/Klingon-tech/klingwallet/internal/wallet"
)

// Validate checks config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if !validNetwork(cfg.Network) {
		return fmt.Errorf("network must be one of %v", wallet.NetworkNames())
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir is empty")
	}

	lang, err := wallet.ParseLanguage(cfg.Language)
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}
	cfg.Language = string(lang)

	if err := cfg.KDF.EncryptionParams().Validate(); err != nil {
		return fmt.Errorf("kdf: %w", err)
	}
	if !klog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not a valid level", cfg.Log.Level)
	}
	return nil
}

func validNetwork(n NetworkType) bool {
	switch n {
	case Mainnet, Testnet, Regtest, Simnet:
		return true
	}
	return false
}
