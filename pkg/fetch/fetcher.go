package fetch

import (
	"context"
	"time"

	"github.com/Feustey/T4G-sub000/pkg/clients/t4g"
	"github.com/Feustey/T4G-sub000/pkg/logging"
	"github.com/Feustey/T4G-sub000/pkg/monitoring"
	"github.com/Feustey/T4G-sub000/pkg/network"
)

// Result is what a resilient fetch resolves to. Data is always usable:
// live when the backend answered, cached when it did not but a recent
// response was persisted, and the caller's fallback otherwise.
type Result[T any] struct {
	Data T
	// Err is the load error, if any. Cached or fallback data may
	// accompany a non-nil Err.
	Err error
	// IsUsingCache is true when Data is real (not fallback) but the
	// backend is currently unreachable or degraded.
	IsUsingCache bool
	// HasNetworkIssue is true when the client is offline, the backend
	// fails health probes, or the load failed at the transport level.
	HasNetworkIssue bool
}

// Config wires a Fetcher. Monitor may be nil, in which case the network
// is presumed healthy and only load errors signal trouble.
type Config struct {
	Cache   *Cache
	Disk    *DiskCache
	Monitor *network.Monitor
	Metrics *monitoring.ClientMetrics
	Logger  logging.Logger
	// MaxAge bounds how old persisted responses may be before they stop
	// counting as cached data. Zero means DefaultMaxAge.
	MaxAge time.Duration
}

// Fetcher resolves backend reads with graceful degradation.
type Fetcher struct {
	cache   *Cache
	disk    *DiskCache
	monitor *network.Monitor
	metrics *monitoring.ClientMetrics
	logger  logging.Logger
	maxAge  time.Duration
}

// NewFetcher creates a fetcher. A nil Cache disables request coalescing;
// a nil Disk disables persistence.
func NewFetcher(cfg Config) *Fetcher {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Fetcher{
		cache:   cfg.Cache,
		disk:    cfg.Disk,
		monitor: cfg.Monitor,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		maxAge:  maxAge,
	}
}

// Do fetches key through load and degrades on failure: persisted data
// within MaxAge first, then fallback. The returned flags let callers
// present degraded data honestly (a "showing cached data" banner rather
// than a silent lie or a hard error).
func Do[T any](ctx context.Context, f *Fetcher, key string, fallback T, load func(ctx context.Context) (T, error)) Result[T] {
	value, ok, err := f.lookup(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})

	var state network.State
	if f.monitor != nil {
		state = f.monitor.Snapshot()
	} else {
		state = network.State{IsOnline: true, APIAvailable: true}
	}
	networkIssue := !state.IsOnline || !state.APIAvailable || t4g.IsNetworkError(err)

	if ok {
		data, _ := value.(T)
		f.observeSource("live")
		return Result[T]{
			Data:            data,
			IsUsingCache:    networkIssue,
			HasNetworkIssue: networkIssue,
		}
	}

	if f.disk != nil {
		var cached T
		if f.disk.Get(key, f.maxAge, &cached) {
			if f.logger != nil {
				f.logger.WithFields(logging.Fields{"key": key}).Debug("Serving persisted response")
			}
			f.observeSource("cache")
			return Result[T]{
				Data:            cached,
				Err:             err,
				IsUsingCache:    networkIssue,
				HasNetworkIssue: networkIssue,
			}
		}
	}

	f.observeSource("fallback")
	return Result[T]{
		Data:            fallback,
		Err:             err,
		IsUsingCache:    false,
		HasNetworkIssue: networkIssue,
	}
}

// lookup runs the load through the in-memory cache when one is wired.
// ok reports whether a real value (live or cached) was produced.
func (f *Fetcher) lookup(ctx context.Context, key string, loadAny func(ctx context.Context) (any, error)) (any, bool, error) {
	if f.cache == nil {
		value, err := loadAny(ctx)
		if err != nil {
			return nil, false, err
		}
		f.persist(key, value)
		return value, true, nil
	}
	return f.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		value, err := loadAny(ctx)
		if err != nil {
			return nil, err
		}
		f.persist(key, value)
		return value, nil
	})
}

func (f *Fetcher) persist(key string, value interface{}) {
	if f.disk != nil {
		f.disk.Set(key, value)
	}
}

func (f *Fetcher) observeSource(source string) {
	if f.metrics != nil {
		f.metrics.ObserveFetchSource(source)
	}
}
