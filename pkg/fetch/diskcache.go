package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Feustey/T4G-sub000/pkg/logging"
)

// DefaultMaxAge is how long a persisted response stays usable as a
// degraded-mode substitute for live data.
const DefaultMaxAge = 24 * time.Hour

// diskEntry is the persisted envelope: the raw response plus when it was
// captured.
type diskEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// DiskCache persists successful responses so a freshly started process
// with no network still has something to show. Entries older than the
// configured age are treated as absent. All failures are best-effort:
// a broken cache degrades to "no cached data", never to an error.
type DiskCache struct {
	dir    string
	logger logging.Logger
}

// NewDiskCache creates a cache rooted at dir. An empty dir defaults to
// ~/.t4g/cache.
func NewDiskCache(dir string, logger logging.Logger) *DiskCache {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".t4g", "cache")
		}
	}
	return &DiskCache{dir: dir, logger: logger}
}

// entryPath maps a cache key to a filename. Keys are request paths, so
// they are hashed rather than sanitized.
func (d *DiskCache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:16])+".json")
}

// Set persists a response under key.
func (d *DiskCache) Set(key string, value interface{}) {
	if d.dir == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		d.debugf("cache encode failed for %s: %v", key, err)
		return
	}
	envelope, err := json.Marshal(diskEntry{Data: raw, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return
	}
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		d.debugf("cache dir unavailable: %v", err)
		return
	}
	if err := os.WriteFile(d.entryPath(key), envelope, 0o600); err != nil {
		d.debugf("cache persist failed for %s: %v", key, err)
	}
}

// Get loads the persisted response for key into out. It returns false
// when no entry exists, the entry is older than maxAge, or it cannot be
// decoded. A maxAge of zero means DefaultMaxAge.
func (d *DiskCache) Get(key string, maxAge time.Duration, out interface{}) bool {
	if d.dir == "" {
		return false
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	raw, err := os.ReadFile(d.entryPath(key))
	if err != nil {
		return false
	}
	var envelope diskEntry
	if err := json.Unmarshal(raw, &envelope); err != nil {
		d.debugf("cache entry corrupt for %s: %v", key, err)
		return false
	}
	captured := time.UnixMilli(envelope.Timestamp)
	if time.Since(captured) > maxAge {
		return false
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		d.debugf("cache decode failed for %s: %v", key, err)
		return false
	}
	return true
}

// Remove drops the entry for key.
func (d *DiskCache) Remove(key string) {
	if d.dir == "" {
		return
	}
	if err := os.Remove(d.entryPath(key)); err != nil && !os.IsNotExist(err) {
		d.debugf("cache remove failed for %s: %v", key, err)
	}
}

// Clear drops every persisted entry.
func (d *DiskCache) Clear() {
	if d.dir == "" {
		return
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(d.dir, e.Name())) //nolint:errcheck
		}
	}
}

func (d *DiskCache) debugf(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debugf(format, args...)
	}
}
