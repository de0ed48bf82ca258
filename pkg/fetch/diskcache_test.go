package fetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDiskCacheRoundTrip(t *testing.T) {
	d := NewDiskCache(t.TempDir(), nil)
	d.Set("/api/metrics", samplePayload{Name: "metrics", Count: 7})

	var out samplePayload
	if !d.Get("/api/metrics", time.Hour, &out) {
		t.Fatal("expected a cached entry")
	}
	if out.Name != "metrics" || out.Count != 7 {
		t.Errorf("decoded %+v", out)
	}
}

func TestDiskCacheMissingKey(t *testing.T) {
	d := NewDiskCache(t.TempDir(), nil)
	var out samplePayload
	if d.Get("/api/unknown", time.Hour, &out) {
		t.Error("missing key must miss")
	}
}

func TestDiskCacheExpiredEntry(t *testing.T) {
	dir := t.TempDir()
	d := NewDiskCache(dir, nil)

	raw, _ := json.Marshal(samplePayload{Name: "stale"})
	envelope, _ := json.Marshal(diskEntry{
		Data:      raw,
		Timestamp: time.Now().Add(-25 * time.Hour).UnixMilli(),
	})
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(d.entryPath("/api/metrics"), envelope, 0o600); err != nil {
		t.Fatal(err)
	}

	var out samplePayload
	if d.Get("/api/metrics", DefaultMaxAge, &out) {
		t.Error("entries past max age must not be served")
	}
	if !d.Get("/api/metrics", 48*time.Hour, &out) {
		t.Error("a longer max age should still accept the entry")
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	d := NewDiskCache(dir, nil)
	if err := os.WriteFile(d.entryPath("/api/metrics"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out samplePayload
	if d.Get("/api/metrics", time.Hour, &out) {
		t.Error("corrupt entries must degrade to a miss")
	}
}

func TestDiskCacheRemoveAndClear(t *testing.T) {
	dir := t.TempDir()
	d := NewDiskCache(dir, nil)
	d.Set("a", samplePayload{Name: "a"})
	d.Set("b", samplePayload{Name: "b"})

	d.Remove("a")
	var out samplePayload
	if d.Get("a", time.Hour, &out) {
		t.Error("removed entry must miss")
	}
	if !d.Get("b", time.Hour, &out) {
		t.Error("other entries must survive a remove")
	}

	d.Clear()
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			t.Errorf("Clear left %s behind", e.Name())
		}
	}
}
