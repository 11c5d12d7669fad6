package core

import (
	"context"
	"testing"
)

func TestInMemoryObjectStore_PutGetRoundTrip(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory}, nil)
	ctx := context.Background()
	key, err := s.Put(ctx, []byte("payload"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

func TestInMemoryObjectStore_PutIsIdempotent(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory}, nil)
	ctx := context.Background()
	k1, err := s.Put(ctx, []byte("same"))
	if err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	k2, err := s.Put(ctx, []byte("same"))
	if err != nil {
		t.Fatalf("second put failed: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("expected identical keys for identical content, got %s vs %s", k1.Hex(), k2.Hex())
	}
}

func TestInMemoryObjectStore_GetMissingReturnsNotFound(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory}, nil)
	_, err := s.Get(context.Background(), Digest{0x42})
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected *NotFoundError, got %v (%T)", err, err)
	}
}

func TestInMemoryObjectStore_DisabledRejectsAllOps(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory, Disabled: true}, nil)
	ctx := context.Background()
	key, err := s.Put(ctx, []byte("x"))
	if err != ErrStorageDisabled {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
	if _, err := s.Get(ctx, key); err != ErrStorageDisabled {
		t.Fatalf("expected Get to return ErrStorageDisabled, got %v", err)
	}
	if err := s.Pin(ctx, key); err != ErrStorageDisabled {
		t.Fatalf("expected Pin to return ErrStorageDisabled, got %v", err)
	}
	if err := s.Unpin(ctx, key); err != ErrStorageDisabled {
		t.Fatalf("expected Unpin to return ErrStorageDisabled, got %v", err)
	}
	if info := s.NodeInfo(); !info.Disabled {
		t.Fatalf("expected NodeInfo().Disabled == true")
	}
}

func TestInMemoryObjectStore_PinUnpin(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory}, nil)
	ctx := context.Background()
	key, err := s.Put(ctx, []byte("pin me"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Pin(ctx, key); err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	if err := s.Unpin(ctx, key); err != nil {
		t.Fatalf("unpin failed: %v", err)
	}
	if err := s.Pin(ctx, Digest{0x99}); err == nil {
		t.Fatalf("expected error pinning an unknown key")
	}
}

func TestInMemoryObjectStore_Exists(t *testing.T) {
	s := NewInMemoryObjectStore(StorageConfig{Kind: StorageInMemory}, nil)
	ctx := context.Background()
	key, err := s.Put(ctx, []byte("exists"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !s.Exists(ctx, key) {
		t.Fatalf("expected Exists to return true for a stored key")
	}
	if s.Exists(ctx, Digest{0x7}) {
		t.Fatalf("expected Exists to return false for an unknown key")
	}
}
