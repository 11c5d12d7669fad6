package services

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"github.com/yousif123412321/pod-protocol/core"
)

// ObjectService wraps the server-side ObjectStore exposed by the HTTP
// CAS gateway described in spec §6.
type ObjectService struct {
	store core.ObjectStore
}

// NewService wires an ObjectService around store.
func NewService(store core.ObjectStore) *ObjectService {
	return &ObjectService{store: store}
}

// Put accepts raw bytes and returns the storage key they were filed
// under.
func (s *ObjectService) Put(ctx context.Context, data []byte) (core.StorageKey, error) {
	return s.store.Put(ctx, data)
}

// Get returns the bytes stored under key.
func (s *ObjectService) Get(ctx context.Context, key core.StorageKey) ([]byte, error) {
	return s.store.Get(ctx, key)
}

// Delete unpins key; the stored bytes themselves are kept. It is
// idempotent: unpinning an unknown key is not an error at the HTTP
// boundary (spec §6: "DELETE is idempotent").
func (s *ObjectService) Delete(ctx context.Context, key core.StorageKey, logger *logrus.Logger) {
	if err := s.store.Unpin(ctx, key); err != nil {
		logger.Debugf("gateway: delete %s: %v", key.Hex(), err)
	}
}
