package config

// Package config provides a reusable loader for client configuration files
// and environment variables. It is versioned so that applications can depend
// on a stable API contract.
//
// Version: v0.2.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hashnet-labs/hedera-core-sdk/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.2.0"

// Config mirrors the client construction options of spec.md §6 in a form
// viper can populate from a YAML file plus environment overrides.
type Config struct {
	Network struct {
		Preset string            `mapstructure:"preset" json:"preset"`
		Nodes  map[string]string `mapstructure:"nodes" json:"nodes"`
	} `mapstructure:"network" json:"network"`

	MirrorEndpoints []string `mapstructure:"mirror_endpoints" json:"mirror_endpoints"`

	Operator struct {
		PayerID    string `mapstructure:"payer_id" json:"payer_id"`
		PrivateKey string `mapstructure:"private_key" json:"private_key"`
	} `mapstructure:"operator" json:"operator"`

	MaxAttempts     int    `mapstructure:"max_attempts" json:"max_attempts"`
	GRPCDeadlineMS  int    `mapstructure:"grpc_deadline_ms" json:"grpc_deadline_ms"`
	MinBackoffMS    int    `mapstructure:"min_backoff_ms" json:"min_backoff_ms"`
	MaxBackoffMS    int    `mapstructure:"max_backoff_ms" json:"max_backoff_ms"`
	RegenerateTxID  bool   `mapstructure:"regenerate_tx_id" json:"regenerate_tx_id"`
	MaxTxFeeTinybar int64  `mapstructure:"max_transaction_fee_tinybar" json:"max_transaction_fee_tinybar"`
	LedgerID        string `mapstructure:"ledger_id" json:"ledger_id"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the SDK_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("SDK_ENV", ""))
}
