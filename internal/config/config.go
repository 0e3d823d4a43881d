// Package config resolves CLI settings from defaults, an optional YAML file,
// SENTINEL_* environment variables and bound flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/shared"
	"github.com/spf13/viper"
)

const EnvPrefix = "SENTINEL"

const (
	KeyLedger       = "ledger"
	KeyNetwork      = "network"
	KeyRPCURL       = "rpc_url"
	KeyExplorerURL  = "explorer_url"
	KeyAmountDrops  = "amount_drops"
	KeyWaitTimeout  = "wait_timeout"
	KeyPollInterval = "poll_interval"
	KeyTopicID      = "hedera_topic_id"
	KeyMirrorURL    = "mirror_url"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyWorkers      = "workers"
)

type Settings struct {
	Ledger       string
	Network      string
	RPCURL       string
	ExplorerURL  string
	AmountDrops  string
	WaitTimeout  time.Duration
	PollInterval time.Duration
	TopicID      string
	MirrorURL    string
	LogLevel     string
	LogFormat    string
	Workers      int
}

// New returns a viper instance with defaults and environment binding. When
// configFile is empty ~/.sentinel/config.yaml is read if it exists.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyLedger, shared.LedgerXRPL)
	v.SetDefault(KeyNetwork, "")
	v.SetDefault(KeyRPCURL, "")
	v.SetDefault(KeyExplorerURL, "")
	v.SetDefault(KeyAmountDrops, "10")
	v.SetDefault(KeyWaitTimeout, "60s")
	v.SetDefault(KeyPollInterval, "1s")
	v.SetDefault(KeyTopicID, "")
	v.SetDefault(KeyMirrorURL, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyWorkers, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return v, nil
	}
	v.AddConfigPath(filepath.Join(home, ".sentinel"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Resolve reads and validates Settings.
func Resolve(v *viper.Viper) (Settings, error) {
	ledgerName, err := shared.NormalizeLedger(v.GetString(KeyLedger))
	if err != nil {
		return Settings{}, err
	}
	network, err := shared.NormalizeLedgerNetwork(ledgerName, v.GetString(KeyNetwork))
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		Ledger:       ledgerName,
		Network:      network,
		RPCURL:       strings.TrimSpace(v.GetString(KeyRPCURL)),
		ExplorerURL:  strings.TrimSpace(v.GetString(KeyExplorerURL)),
		AmountDrops:  strings.TrimSpace(v.GetString(KeyAmountDrops)),
		WaitTimeout:  v.GetDuration(KeyWaitTimeout),
		PollInterval: v.GetDuration(KeyPollInterval),
		TopicID:      strings.TrimSpace(v.GetString(KeyTopicID)),
		MirrorURL:    strings.TrimSpace(v.GetString(KeyMirrorURL)),
		LogLevel:     strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFormat:    strings.TrimSpace(v.GetString(KeyLogFormat)),
		Workers:      v.GetInt(KeyWorkers),
	}
	if settings.WaitTimeout <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive", KeyWaitTimeout)
	}
	if settings.PollInterval <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive", KeyPollInterval)
	}
	if settings.Workers < 0 {
		return Settings{}, fmt.Errorf("%s cannot be negative", KeyWorkers)
	}
	return settings, nil
}
