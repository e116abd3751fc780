package driver

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}

	content := []byte("a\r\nb")
	report := scanContent("x.c", content, 10)
	key := contentKey("x.c", content)

	if err := cache.Store(key, report); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok := cache.Load(key)
	if !ok {
		t.Fatal("Load: unexpected miss")
	}
	if diff := cmp.Diff(report, got); diff != "" {
		t.Errorf("report changed across cache round-trip (-want +got):\n%s", diff)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	if _, ok := cache.Load(contentKey("x.c", []byte("never stored"))); ok {
		t.Error("Load hit for a key that was never stored")
	}
}

func TestDiskCacheRejectsCorruptPayload(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := contentKey("x.c", []byte("x"))
	if err := os.WriteFile(cache.payloadPath(key), []byte("not msgpack"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Load(key); ok {
		t.Error("Load hit on corrupt payload")
	}
}

func TestDiskCacheRejectsOldSchema(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := contentKey("x.c", []byte("x"))
	raw, err := msgpack.Marshal(diskPayload{Schema: diskCacheSchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache.payloadPath(key), raw, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Load(key); ok {
		t.Error("Load hit on payload with a different schema version")
	}
}

func TestDiskCacheNilIsNoop(t *testing.T) {
	var cache *DiskCache
	if _, ok := cache.Load("k"); ok {
		t.Error("nil cache must always miss")
	}
	if err := cache.Store("k", &Report{}); err != nil {
		t.Errorf("nil cache Store: %v", err)
	}
}

func TestNewDiskCacheEmptyDir(t *testing.T) {
	if _, err := NewDiskCache(""); err == nil {
		t.Error("expected error for empty cache directory")
	}
}

func TestContentKeyDependsOnPath(t *testing.T) {
	content := []byte("same bytes")
	if contentKey("a.c", content) == contentKey("b.c", content) {
		t.Error("keys for different paths must differ")
	}
}
