package core

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// StorageKind selects an ObjectStore backend. Selection is configuration,
// not API: callers depend only on the ObjectStore interface.
type StorageKind string

const (
	StorageInMemory StorageKind = "in_memory"
	StorageRemote   StorageKind = "remote"
)

// StorageConfig is the closed configuration envelope for an ObjectStore,
// per spec §6.
type StorageConfig struct {
	Kind           StorageKind   `mapstructure:"kind" json:"kind"`
	GatewayURL     string        `mapstructure:"gateway_url" json:"gateway_url"`
	Disabled       bool          `mapstructure:"disabled" json:"disabled"`
	GatewayTimeout time.Duration `mapstructure:"-" json:"-"`
	CacheDir       string        `mapstructure:"-" json:"-"`
	CacheEntries   int           `mapstructure:"-" json:"-"`
}

// NodeInfo describes an ObjectStore backend for diagnostics.
type NodeInfo struct {
	Kind      StorageKind
	Gateway   string
	Disabled  bool
	ObjectCnt int
}

// ObjectStore is the content-addressed storage capability set used by
// the Batcher. Implementations must be concurrency-safe: they are
// shared and mutated by many callers (spec §5).
type ObjectStore interface {
	// Put computes key = ContentDigestOf(bytes) and stores bytes under
	// it. Idempotent: a second Put of identical bytes returns the same
	// key and is a no-op. Returns ErrStorageDisabled if storage is
	// disabled by configuration; the key is still computable and
	// returned even when disabled.
	Put(ctx context.Context, bytes []byte) (StorageKey, error)
	// Get returns the bytes stored under key, or a NotFoundError /
	// ErrStorageDisabled.
	Get(ctx context.Context, key StorageKey) ([]byte, error)
	// Exists never fails; it reports false for unknown, evicted, or
	// (when disabled) any key.
	Exists(ctx context.Context, key StorageKey) bool
	// Pin marks key non-evictable. Fails with NotFoundError if key is
	// unknown.
	Pin(ctx context.Context, key StorageKey) error
	// Unpin reverses Pin. Fails with NotFoundError if key is unknown.
	Unpin(ctx context.Context, key StorageKey) error
	// NodeInfo describes the backend for diagnostics/CLI use.
	NodeInfo() NodeInfo
}

// NewObjectStore is the composition-root factory for an ObjectStore: it
// picks the backend named by cfg.Kind, the same way a caller would wire
// a pkg/config.StorageConfig into a concrete store without depending on
// the concrete types directly.
func NewObjectStore(cfg StorageConfig, cacheDir string, logger *logrus.Logger) (ObjectStore, error) {
	switch cfg.Kind {
	case StorageInMemory, "":
		return NewInMemoryObjectStore(cfg, logger), nil
	case StorageRemote:
		return NewRemoteObjectStore(cfg, cacheDir, logger)
	default:
		return nil, fmt.Errorf("core: unknown storage kind %q", cfg.Kind)
	}
}
