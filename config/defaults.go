package config

import "github.com/Klingon-tech/klingwallet/internal/wallet"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	kdf := wallet.DefaultParams()
	return &Config{
		Network:  Mainnet,
		Language: string(wallet.DefaultLanguage),
		DataDir:  DefaultDataDir(),
		KDF: KDFConfig{
			Memory:      kdf.Memory,
			Iterations:  kdf.Iterations,
			Parallelism: kdf.Parallelism,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	return cfg
}

// DefaultRegtest returns the default configuration for regtest. Local test
// networks use a cheap KDF so scripted runs stay fast.
func DefaultRegtest() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Regtest
	cfg.KDF = KDFConfig{Memory: 8 * 1024, Iterations: 1, Parallelism: 1}
	cfg.Log.Level = "info"
	return cfg
}

// DefaultSimnet returns the default configuration for simnet.
func DefaultSimnet() *Config {
	cfg := DefaultRegtest()
	cfg.Network = Simnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	case Regtest:
		return DefaultRegtest()
	case Simnet:
		return DefaultSimnet()
	default:
		return DefaultMainnet()
	}
}
