package core

import "testing"

func TestNewObjectStore_InMemory(t *testing.T) {
	s, err := NewObjectStore(StorageConfig{Kind: StorageInMemory}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*InMemoryObjectStore); !ok {
		t.Fatalf("expected *InMemoryObjectStore, got %T", s)
	}
}

func TestNewObjectStore_DefaultsToInMemory(t *testing.T) {
	s, err := NewObjectStore(StorageConfig{}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*InMemoryObjectStore); !ok {
		t.Fatalf("expected *InMemoryObjectStore, got %T", s)
	}
}

func TestNewObjectStore_Remote(t *testing.T) {
	s, err := NewObjectStore(StorageConfig{Kind: StorageRemote, GatewayURL: "http://127.0.0.1:0"}, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*RemoteObjectStore); !ok {
		t.Fatalf("expected *RemoteObjectStore, got %T", s)
	}
}

func TestNewObjectStore_UnknownKind(t *testing.T) {
	if _, err := NewObjectStore(StorageConfig{Kind: "carrier_pigeon"}, "", nil); err == nil {
		t.Fatalf("expected an error for an unknown storage kind")
	}
}
