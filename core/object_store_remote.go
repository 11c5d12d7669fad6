package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	logrus "github.com/sirupsen/logrus"
)

const defaultCacheEntries = 10_000

// diskEntry is one on-disk cache slot, adapted from the teacher's
// storage.go cache implementation.
type diskEntry struct {
	path string
	size int64
	at   time.Time
}

// diskLRU is a bounded on-disk cache in front of a RemoteObjectStore.
// Pinned entries are never evicted by put.
type diskLRU struct {
	mu     sync.Mutex
	dir    string
	max    int
	index  map[StorageKey]*diskEntry
	order  []StorageKey
	pinned map[StorageKey]bool
}

func newDiskLRU(dir string, maxEntries int) (*diskLRU, error) {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &diskLRU{
		dir:    dir,
		max:    maxEntries,
		index:  make(map[StorageKey]*diskEntry),
		pinned: make(map[StorageKey]bool),
	}, nil
}

func (l *diskLRU) put(key StorageKey, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.index[key]; ok {
		ent.at = time.Now()
		return nil
	}

	if len(l.index) >= l.max {
		victim := -1
		for i, k := range l.order {
			if l.pinned[k] {
				continue
			}
			if victim < 0 || l.index[k].at.Before(l.index[l.order[victim]].at) {
				victim = i
			}
		}
		if victim >= 0 {
			k := l.order[victim]
			_ = os.Remove(l.index[k].path)
			delete(l.index, k)
			l.order = append(l.order[:victim], l.order[victim+1:]...)
		}
	}

	p := filepath.Join(l.dir, key.Hex())
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return err
	}
	ent := &diskEntry{path: p, size: int64(len(data)), at: time.Now()}
	l.index[key] = ent
	l.order = append(l.order, key)
	return nil
}

func (l *diskLRU) get(key StorageKey) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.index[key]
	if !ok {
		return nil, false
	}
	ent.at = time.Now()
	b, err := os.ReadFile(ent.path)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (l *diskLRU) pin(key StorageKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.index[key]; !ok {
		return false
	}
	l.pinned[key] = true
	return true
}

func (l *diskLRU) unpin(key StorageKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.index[key]; !ok {
		return false
	}
	delete(l.pinned, key)
	return true
}

func (l *diskLRU) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.index)
}

// RemoteObjectStore is the HTTP-backed ObjectStore variant. It PUTs and
// GETs against a configurable gateway and fronts the network with a
// bounded on-disk cache, adapted from the teacher's IPFS gateway wrapper
// (core/storage.go's Storage.Pin/Retrieve).
type RemoteObjectStore struct {
	cfg     StorageConfig
	client  *http.Client
	cache   *diskLRU
	logger  *logrus.Logger
	putURL  string
	getBase string
	delBase string
}

// NewRemoteObjectStore wires a RemoteObjectStore against cfg.GatewayURL,
// caching accepted objects under cacheDir.
func NewRemoteObjectStore(cfg StorageConfig, cacheDir string, logger *logrus.Logger) (*RemoteObjectStore, error) {
	if cfg.GatewayURL == "" {
		return nil, NewInvariantViolated("remote object store requires a gateway url")
	}
	if logger == nil {
		logger = logrus.New()
	}
	cache, err := newDiskLRU(cacheDir, cfg.CacheEntries)
	if err != nil {
		return nil, NewStorageFailed(fmt.Errorf("cache: %w", err))
	}
	timeout := cfg.GatewayTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RemoteObjectStore{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		logger:  logger,
		putURL:  cfg.GatewayURL + "/objects",
		getBase: cfg.GatewayURL + "/objects/",
		delBase: cfg.GatewayURL + "/objects/",
	}, nil
}

// cidOf mirrors the teacher's Storage.Pin: compute a CIDv1(raw, sha2-256)
// of data. Put calls it only as a multihash check before uploading; the
// CID is neither stored nor returned, and StorageKey stays the raw digest.
func cidOf(data []byte) (cid.Cid, error) {
	encodedMH, err := mh.Sum(data, mh.SHA2_256, -1)
	if err != nil {
		return cid.Cid{}, err
	}
	return cid.NewCidV1(cid.Raw, encodedMH), nil
}

func (s *RemoteObjectStore) Put(ctx context.Context, data []byte) (StorageKey, error) {
	key := NewHasher().ContentDigestOf(data)
	if s.cfg.Disabled {
		return key, ErrStorageDisabled
	}
	if _, ok := s.cache.get(key); ok {
		return key, nil
	}
	if _, err := cidOf(data); err != nil {
		return key, NewStorageFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.putURL, bytes.NewReader(data))
	if err != nil {
		return key, NewStorageFailed(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := s.client.Do(req)
	if err != nil {
		return key, NewStorageFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return key, NewStorageFailed(fmt.Errorf("gateway put %d: %s", resp.StatusCode, string(b)))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 128))
	if err != nil {
		return key, NewStorageFailed(err)
	}
	returned, err := DigestFromHex(string(bytes.TrimSpace(body)))
	if err != nil {
		return key, NewStorageFailed(fmt.Errorf("gateway returned malformed key: %w", err))
	}
	if returned != key {
		return key, NewInvariantViolated("gateway key mismatch with local content digest")
	}

	_ = s.cache.put(key, data)
	s.logger.Infof("object store: put %s (%d bytes)", key.Hex(), len(data))
	return key, nil
}

func (s *RemoteObjectStore) Get(ctx context.Context, key StorageKey) ([]byte, error) {
	if s.cfg.Disabled {
		return nil, ErrStorageDisabled
	}
	if b, ok := s.cache.get(key); ok {
		return b, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.getBase+key.Hex(), nil)
	if err != nil {
		return nil, NewStorageFailed(err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NewStorageFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, NewNotFound(key.Hex())
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 128))
		return nil, NewStorageFailed(fmt.Errorf("gateway get %d: %s", resp.StatusCode, string(b)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewStorageFailed(err)
	}
	_ = s.cache.put(key, data)
	s.logger.Infof("object store: retrieved %s (%d bytes)", key.Hex(), len(data))
	return data, nil
}

func (s *RemoteObjectStore) Exists(ctx context.Context, key StorageKey) bool {
	if s.cfg.Disabled {
		return false
	}
	if _, ok := s.cache.get(key); ok {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.getBase+key.Hex(), nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *RemoteObjectStore) Pin(_ context.Context, key StorageKey) error {
	if s.cfg.Disabled {
		return ErrStorageDisabled
	}
	if !s.cache.pin(key) {
		return NewNotFound(key.Hex())
	}
	return nil
}

func (s *RemoteObjectStore) Unpin(_ context.Context, key StorageKey) error {
	if s.cfg.Disabled {
		return ErrStorageDisabled
	}
	if !s.cache.unpin(key) {
		return NewNotFound(key.Hex())
	}
	return nil
}

func (s *RemoteObjectStore) NodeInfo() NodeInfo {
	return NodeInfo{
		Kind:      StorageRemote,
		Gateway:   s.cfg.GatewayURL,
		Disabled:  s.cfg.Disabled,
		ObjectCnt: s.cache.count(),
	}
}
