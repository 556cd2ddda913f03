package client

import (
	"crypto/ed25519"
	"encoding/hex"
	"time"

	pkgconfig "github.com/hashnet-labs/hedera-core-sdk/pkg/config"
	"github.com/hashnet-labs/hedera-core-sdk/pkg/utils"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/keys"
)

// OptionsFromConfig translates a loaded pkg/config.Config into the
// Option surface New expects, so callers can drive construction entirely
// from a YAML file plus environment overrides rather than hand-assembling
// options. The attempt-bound and deadline fields additionally accept a
// per-field environment override, so an operator can tune retry behavior
// for one deployment without forking the YAML file.
func OptionsFromConfig(cfg *pkgconfig.Config) ([]Option, error) {
	var opts []Option

	if len(cfg.Network.Nodes) > 0 {
		opts = append(opts, WithNodes(cfg.Network.Nodes))
	}
	if len(cfg.MirrorEndpoints) > 0 {
		opts = append(opts, WithMirrorEndpoints(cfg.MirrorEndpoints...))
	}

	if cfg.Operator.PayerID != "" {
		payerID, err := ids.ParseAccountID(cfg.Operator.PayerID)
		if err != nil {
			return nil, &ConfigError{Reason: "operator.payer_id: " + err.Error()}
		}
		key, err := parseEd25519Hex(cfg.Operator.PrivateKey)
		if err != nil {
			return nil, &ConfigError{Reason: "operator.private_key: " + err.Error()}
		}
		opts = append(opts, WithOperator(payerID, key))
	}

	maxAttempts := utils.EnvOrDefaultInt("HGCLI_MAX_ATTEMPTS", cfg.MaxAttempts)
	if maxAttempts > 0 {
		opts = append(opts, WithMaxAttempts(maxAttempts))
	}
	grpcDeadlineMS := utils.EnvOrDefaultInt("HGCLI_GRPC_DEADLINE_MS", cfg.GRPCDeadlineMS)
	if grpcDeadlineMS > 0 {
		opts = append(opts, WithGRPCDeadline(time.Duration(grpcDeadlineMS)*time.Millisecond))
	}
	minBackoffMS := utils.EnvOrDefaultInt("HGCLI_MIN_BACKOFF_MS", cfg.MinBackoffMS)
	maxBackoffMS := utils.EnvOrDefaultInt("HGCLI_MAX_BACKOFF_MS", cfg.MaxBackoffMS)
	if minBackoffMS > 0 && maxBackoffMS > 0 {
		opts = append(opts, WithBackoffRange(
			time.Duration(minBackoffMS)*time.Millisecond,
			time.Duration(maxBackoffMS)*time.Millisecond,
		))
	}
	opts = append(opts, WithRegenerateTransactionID(cfg.RegenerateTxID))
	maxTxFeeTinybar := utils.EnvOrDefaultUint64("HGCLI_MAX_TX_FEE_TINYBAR", uint64(cfg.MaxTxFeeTinybar))
	if maxTxFeeTinybar > 0 {
		opts = append(opts, WithMaxTransactionFee(int64(maxTxFeeTinybar)))
	}
	if cfg.LedgerID != "" {
		ledgerID, err := hex.DecodeString(cfg.LedgerID)
		if err != nil {
			return nil, &ConfigError{Reason: "ledger_id: " + err.Error()}
		}
		opts = append(opts, WithLedgerID(ledgerID))
	}

	return opts, nil
}

// NewFromConfig loads env-specific configuration via pkg/config and
// constructs a Client from it directly.
func NewFromConfig(env string) (*Client, error) {
	cfg, err := pkgconfig.Load(env)
	if err != nil {
		return nil, &ConfigError{Reason: "loading config: " + err.Error()}
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(opts...)
}

// parseEd25519Hex decodes a hex-encoded 64-byte Ed25519 seed+key, the
// format of the config file's operator key field.
func parseEd25519Hex(text string) (keys.Ed25519PrivateKey, error) {
	if text == "" {
		return keys.Ed25519PrivateKey{}, nil
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return keys.Ed25519PrivateKey{}, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		return keys.Ed25519PrivateKey{}, &ConfigError{Reason: "expected a 64-byte ed25519 private key"}
	}
	return keys.Ed25519PrivateKey{Raw: ed25519.PrivateKey(raw)}, nil
}
