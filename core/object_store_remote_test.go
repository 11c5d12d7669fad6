package core

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yousif123412321/pod-protocol/internal/testutil"
)

func newTestGateway(t *testing.T) *httptest.Server {
	t.Helper()
	objects := map[string][]byte{}
	mux := http.NewServeMux()
	mux.HandleFunc("/objects", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		data, _ := io.ReadAll(r.Body)
		key := NewHasher().ContentDigestOf(data)
		objects[key.Hex()] = data
		w.Write([]byte(key.Hex()))
	})
	mux.HandleFunc("/objects/", func(w http.ResponseWriter, r *http.Request) {
		keyHex := r.URL.Path[len("/objects/"):]
		data, ok := objects[keyHex]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write(data)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRemoteStore(t *testing.T, gatewayURL string) *RemoteObjectStore {
	t.Helper()
	sandbox, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("sandbox: %v", err)
	}
	t.Cleanup(func() { _ = sandbox.Cleanup() })
	store, err := NewRemoteObjectStore(StorageConfig{Kind: StorageRemote, GatewayURL: gatewayURL}, sandbox.Root, nil)
	if err != nil {
		t.Fatalf("new remote store: %v", err)
	}
	return store
}

func TestRemoteObjectStore_PutGetRoundTrip(t *testing.T) {
	srv := newTestGateway(t)
	store := newTestRemoteStore(t, srv.URL)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("remote payload"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "remote payload" {
		t.Fatalf("got %q, want %q", got, "remote payload")
	}
}

func TestRemoteObjectStore_GetMissingReturnsNotFound(t *testing.T) {
	srv := newTestGateway(t)
	store := newTestRemoteStore(t, srv.URL)
	_, err := store.Get(context.Background(), Digest{0x1})
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected *NotFoundError, got %v (%T)", err, err)
	}
}

func TestRemoteObjectStore_GetServesFromCacheWithoutNetwork(t *testing.T) {
	srv := newTestGateway(t)
	store := newTestRemoteStore(t, srv.URL)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("cached"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	srv.Close()

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("expected cache hit after gateway shutdown, got error: %v", err)
	}
	if string(got) != "cached" {
		t.Fatalf("got %q, want %q", got, "cached")
	}
}

func TestRemoteObjectStore_Disabled(t *testing.T) {
	srv := newTestGateway(t)
	sandbox, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("sandbox: %v", err)
	}
	t.Cleanup(func() { _ = sandbox.Cleanup() })
	store, err := NewRemoteObjectStore(StorageConfig{Kind: StorageRemote, GatewayURL: srv.URL, Disabled: true}, sandbox.Root, nil)
	if err != nil {
		t.Fatalf("new remote store: %v", err)
	}
	if _, err := store.Put(context.Background(), []byte("x")); err != ErrStorageDisabled {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
}
