package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  kind: in_memory\n")
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxBatchSize != 100 {
		t.Fatalf("expected default max_batch_size 100, got %d", cfg.MaxBatchSize)
	}
	if cfg.FlushIntervalMS != 5000 {
		t.Fatalf("expected default flush_interval_ms 5000, got %d", cfg.FlushIntervalMS)
	}
	if !cfg.BatchingEnabled {
		t.Fatalf("expected batching_enabled to default to true when omitted")
	}
}

func TestLoad_RespectsExplicitBatchingDisabled(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  kind: in_memory\nbatching_enabled: false\n")
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BatchingEnabled {
		t.Fatalf("expected an explicit batching_enabled: false to be honored")
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, "max_batch_size: 10\nbogus_field: true\n")
	if _, err := Load(path, ""); err == nil {
		t.Fatalf("expected an error for an unknown configuration key")
	}
}

func TestValidate_RemoteRequiresGatewayURL(t *testing.T) {
	cfg := Config{MaxBatchSize: 10, FlushIntervalMS: 100, Storage: StorageConfig{Kind: "remote"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error when storage.kind is remote without a gateway_url")
	}
}

func TestValidate_RejectsOutOfRangeBatchSize(t *testing.T) {
	cfg := Config{MaxBatchSize: 0, FlushIntervalMS: 100, Storage: StorageConfig{Kind: "in_memory"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for max_batch_size 0")
	}
}

func TestValidate_RejectsUnknownStorageKind(t *testing.T) {
	cfg := Config{MaxBatchSize: 10, FlushIntervalMS: 100, Storage: StorageConfig{Kind: "carrier_pigeon"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for an unrecognized storage kind")
	}
}
