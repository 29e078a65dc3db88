// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cfmm-labs/pairpool/consts"
)

// Config holds all configuration for the daemon.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Pool     PoolConfig     `mapstructure:"pool"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	ListenAddress     string        `mapstructure:"listenAddress"`
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

type DatabaseConfig struct {
	Directory string `mapstructure:"directory"`
}

// AssetConfig describes one of the pool's assets. Only consulted on first
// run; afterwards the persisted ledgers are authoritative.
type AssetConfig struct {
	Name     string `mapstructure:"name"`
	Symbol   string `mapstructure:"symbol"`
	Metadata string `mapstructure:"metadata"`
	Decimals uint8  `mapstructure:"decimals"`
}

// AllocationConfig seeds an account with starting balances on first run.
// Amounts are decimal strings in each asset's own base units.
type AllocationConfig struct {
	Account string `mapstructure:"account"`
	AmountA string `mapstructure:"amountA"`
	AmountB string `mapstructure:"amountB"`
}

type PoolConfig struct {
	// Fee in parts per thousand taken from each swap input.
	Fee uint64 `mapstructure:"fee"`
	// Authority is the mint owner of both assets.
	Authority   string             `mapstructure:"authority"`
	AssetA      AssetConfig        `mapstructure:"assetA"`
	AssetB      AssetConfig        `mapstructure:"assetB"`
	Allocations []AllocationConfig `mapstructure:"allocations"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Directory for rotated log files. Empty means console only.
	Directory string `mapstructure:"directory"`
	MaxSize   int    `mapstructure:"maxSize"` // megabytes
	MaxAge    int    `mapstructure:"maxAge"`  // days
	MaxFiles  int    `mapstructure:"maxFiles"`
	Compress  bool   `mapstructure:"compress"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			ListenAddress:     "127.0.0.1:8765",
			AllowedOrigins:    []string{"*"},
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Database: DatabaseConfig{
			Directory: ".pairpool/db",
		},
		Pool: PoolConfig{
			Fee:       consts.DefaultFee,
			Authority: "authority",
			AssetA: AssetConfig{
				Name:     "Token A",
				Symbol:   "TKA",
				Metadata: "pool asset A",
				Decimals: consts.InternalDecimals,
			},
			AssetB: AssetConfig{
				Name:     "Token B",
				Symbol:   "TKB",
				Metadata: "pool asset B",
				Decimals: consts.InternalDecimals,
			},
		},
		Log: LogConfig{
			Level:    "info",
			MaxSize:  100,
			MaxAge:   7,
			MaxFiles: 5,
		},
	}
}

// Load reads configuration from [configPath] if given, otherwise from
// pairpoold.yaml in the working directory or $HOME/.pairpool. Values not
// present fall back to Default. PAIRPOOL_* environment variables override
// file values.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("pairpoold")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pairpool")
	}

	viper.SetEnvPrefix("PAIRPOOL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.HTTP.ListenAddress == "" {
		return errors.New("http.listenAddress must be set")
	}
	if c.Database.Directory == "" {
		return errors.New("database.directory must be set")
	}
	if c.Pool.Authority == "" {
		return errors.New("pool.authority must be set")
	}
	return nil
}
