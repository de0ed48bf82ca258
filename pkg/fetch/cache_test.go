package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheServesFreshValue(t *testing.T) {
	c := NewCache(CacheOptions{TTL: time.Minute})
	var loads int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "v1", nil
	}

	for i := 0; i < 3; i++ {
		value, ok, err := c.Get(context.Background(), "k", load)
		if err != nil || !ok || value != "v1" {
			t.Fatalf("Get #%d = %v, %t, %v", i, value, ok, err)
		}
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Errorf("fresh hits must not reload, got %d loads", got)
	}
}

func TestCacheCoalescesConcurrentLoads(t *testing.T) {
	c := NewCache(CacheOptions{TTL: time.Minute})
	var loads int32
	release := make(chan struct{})
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return "v1", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get(context.Background(), "k", load) //nolint:errcheck
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Errorf("concurrent gets must collapse into one load, got %d", got)
	}
}

func TestCacheLoadErrorNotCached(t *testing.T) {
	c := NewCache(CacheOptions{TTL: time.Minute})
	var loads int32
	load := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&loads, 1) == 1 {
			return nil, errors.New("backend down")
		}
		return "v2", nil
	}

	if _, ok, err := c.Get(context.Background(), "k", load); ok || err == nil {
		t.Fatalf("first Get should fail, got ok=%t err=%v", ok, err)
	}
	value, ok, err := c.Get(context.Background(), "k", load)
	if err != nil || !ok || value != "v2" {
		t.Fatalf("second Get should reload, got %v, %t, %v", value, ok, err)
	}
}

func TestCacheServesStaleWhileRevalidating(t *testing.T) {
	c := NewCache(CacheOptions{TTL: 10 * time.Millisecond, StaleWhileRevalidate: time.Minute})
	var loads int32
	load := func(ctx context.Context) (interface{}, error) {
		n := atomic.AddInt32(&loads, 1)
		if n == 1 {
			return "old", nil
		}
		return "new", nil
	}

	if _, _, err := c.Get(context.Background(), "k", load); err != nil {
		t.Fatalf("initial load failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond) // past TTL, inside stale window

	value, ok, err := c.Get(context.Background(), "k", load)
	if err != nil || !ok || value != "old" {
		t.Fatalf("stale read should serve the old value immediately, got %v, %t, %v", value, ok, err)
	}

	// The background refresh lands eventually.
	deadline := time.After(2 * time.Second)
	for {
		value, _, _ := c.Get(context.Background(), "k", load)
		if value == "new" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("background refresh never replaced the stale value")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(CacheOptions{TTL: time.Minute, MaxEntries: 2})
	load := func(v string) LoadFunc {
		return func(ctx context.Context) (interface{}, error) { return v, nil }
	}

	c.Get(context.Background(), "a", load("va")) //nolint:errcheck
	c.Get(context.Background(), "b", load("vb")) //nolint:errcheck
	c.Get(context.Background(), "a", load("va")) //nolint:errcheck
	c.Get(context.Background(), "c", load("vc")) //nolint:errcheck

	if c.Len() != 2 {
		t.Errorf("cache should hold 2 entries, has %d", c.Len())
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(CacheOptions{TTL: time.Minute})
	var loads int32
	load := func(ctx context.Context) (interface{}, error) {
		return atomic.AddInt32(&loads, 1), nil
	}

	c.Get(context.Background(), "k", load) //nolint:errcheck
	c.Invalidate("k")
	c.Get(context.Background(), "k", load) //nolint:errcheck

	if got := atomic.LoadInt32(&loads); got != 2 {
		t.Errorf("invalidate must force a reload, got %d loads", got)
	}
}
