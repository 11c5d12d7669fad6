package core

import (
	"bytes"
	"context"
	"sync"

	logrus "github.com/sirupsen/logrus"
)

// InMemoryObjectStore is the default ObjectStore backend: used in tests
// and whenever the deployment disables remote storage. It is
// concurrency-safe via a single mutex, the same pattern as
// MessageQueue's guarded slice.
type InMemoryObjectStore struct {
	mu       sync.Mutex
	objects  map[StorageKey][]byte
	pinned   map[StorageKey]bool
	disabled bool
	logger   *logrus.Logger
}

// NewInMemoryObjectStore constructs an InMemoryObjectStore. cfg.Disabled
// opts the store out of persisting bytes entirely; logger may be nil, in
// which case a default logrus.Logger is used.
func NewInMemoryObjectStore(cfg StorageConfig, logger *logrus.Logger) *InMemoryObjectStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &InMemoryObjectStore{
		objects:  make(map[StorageKey][]byte),
		pinned:   make(map[StorageKey]bool),
		disabled: cfg.Disabled,
		logger:   logger,
	}
}

func (s *InMemoryObjectStore) Put(_ context.Context, data []byte) (StorageKey, error) {
	key := NewHasher().ContentDigestOf(data)
	if s.disabled {
		return key, ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.objects[key]; ok {
		if !bytes.Equal(existing, data) {
			return key, NewInvariantViolated("content digest collision with differing bytes")
		}
		return key, nil
	}
	s.objects[key] = append([]byte(nil), data...)
	s.logger.Debugf("object store: put %s (%d bytes)", key.Hex(), len(data))
	return key, nil
}

func (s *InMemoryObjectStore) Get(_ context.Context, key StorageKey) ([]byte, error) {
	if s.disabled {
		return nil, ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, NewNotFound(key.Hex())
	}
	return append([]byte(nil), data...), nil
}

func (s *InMemoryObjectStore) Exists(_ context.Context, key StorageKey) bool {
	if s.disabled {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *InMemoryObjectStore) Pin(_ context.Context, key StorageKey) error {
	if s.disabled {
		return ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return NewNotFound(key.Hex())
	}
	s.pinned[key] = true
	return nil
}

func (s *InMemoryObjectStore) Unpin(_ context.Context, key StorageKey) error {
	if s.disabled {
		return ErrStorageDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return NewNotFound(key.Hex())
	}
	delete(s.pinned, key)
	return nil
}

func (s *InMemoryObjectStore) NodeInfo() NodeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NodeInfo{
		Kind:      StorageInMemory,
		Disabled:  s.disabled,
		ObjectCnt: len(s.objects),
	}
}
