package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when diskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит отчёты сканирования по хэшу содержимого на диске,
// чтобы повторный scan неизменённых файлов ничего не пересчитывал.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload wraps a Report with a schema version for safe
// invalidation when the format changes.
type diskPayload struct {
	Schema uint16
	Report Report
}

// NewDiskCache opens (creating if needed) a cache directory.
func NewDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

// contentKey derives the cache key. The path participates so identical
// content under two names keeps per-file positions in its findings.
func contentKey(path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *DiskCache) payloadPath(key string) string {
	return filepath.Join(c.dir, key+".msgpack")
}

// Load returns the cached report for key, or false on any miss:
// absent, unreadable, wrong schema. Cache errors are never fatal.
func (c *DiskCache) Load(key string) (*Report, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.payloadPath(key))
	if err != nil {
		return nil, false
	}
	var payload diskPayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return &payload.Report, true
}

// Store persists the report under key.
func (c *DiskCache) Store(key string, r *Report) error {
	if c == nil || r == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := msgpack.Marshal(diskPayload{
		Schema: diskCacheSchemaVersion,
		Report: *r,
	})
	if err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}
	if err := os.WriteFile(c.payloadPath(key), raw, 0o600); err != nil {
		return fmt.Errorf("write cache payload: %w", err)
	}
	return nil
}
