package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"LEDGER", "NETWORK", "RPC_URL", "WAIT_TIMEOUT", "WORKERS", "HEDERA_TOPIC_ID"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
}

func TestResolveDefaults(t *testing.T) {
	isolateHome(t)
	v, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	settings, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.Ledger != "xrpl" || settings.Network != "mainnet" {
		t.Fatalf("unexpected ledger defaults: %+v", settings)
	}
	if settings.AmountDrops != "10" || settings.WaitTimeout != 60*time.Second || settings.PollInterval != time.Second {
		t.Fatalf("unexpected submission defaults: %+v", settings)
	}
}

func TestResolveConfigFileAndEnv(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "sentinel.yaml")
	content := "ledger: hedera\nhedera_topic_id: 0.0.5005\nwait_timeout: 30s\nworkers: 8\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SENTINEL_WORKERS", "2")

	v, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	settings, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.Ledger != "hedera" || settings.Network != "testnet" || settings.TopicID != "0.0.5005" {
		t.Fatalf("unexpected file settings: %+v", settings)
	}
	if settings.WaitTimeout != 30*time.Second {
		t.Fatalf("unexpected wait timeout: %s", settings.WaitTimeout)
	}
	if settings.Workers != 2 {
		t.Fatalf("environment should override file, got workers=%d", settings.Workers)
	}
}

func TestResolveReadsHomeConfig(t *testing.T) {
	isolateHome(t)
	home := os.Getenv("HOME")
	if err := os.MkdirAll(filepath.Join(home, ".sentinel"), 0o700); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".sentinel", "config.yaml"), []byte("network: testnet\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	v, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	settings, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.Network != "testnet" {
		t.Fatalf("unexpected network: %s", settings.Network)
	}
}

func TestResolveValidation(t *testing.T) {
	isolateHome(t)
	testCases := map[string]string{
		KeyLedger:       "bitcoin",
		KeyNetwork:      "previewnet",
		KeyWaitTimeout:  "0s",
		KeyPollInterval: "-1s",
		KeyWorkers:      "-3",
	}
	for key, value := range testCases {
		v, err := New("")
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		v.Set(key, value)
		if _, err := Resolve(v); err == nil {
			t.Fatalf("expected error for %s=%s", key, value)
		}
	}
}

func TestNewMissingExplicitFile(t *testing.T) {
	isolateHome(t)
	if _, err := New(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
