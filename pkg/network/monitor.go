// Package network tracks connectivity from the client's point of view:
// whether the machine believes it is online at all, and whether the
// backend actually answers health probes. The two signals are distinct
// on purpose; captive portals and half-dead links routinely pass one
// and fail the other.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/Feustey/T4G-sub000/pkg/logging"
)

// HealthPinger probes backend reachability. *t4g.Client satisfies this.
type HealthPinger interface {
	PingHealth(ctx context.Context) error
}

// State is a point-in-time connectivity snapshot.
type State struct {
	// IsOnline is the locally-known link state (set by the host
	// environment, not by probing).
	IsOnline bool
	// APIAvailable is whether the last health probe succeeded. It is
	// always false while offline.
	APIAvailable bool
}

// Config configures a Monitor. Zero values get the standard cadence:
// a probe every 30 seconds with a 5 second deadline per probe.
type Config struct {
	Pinger        HealthPinger
	Logger        logging.Logger
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	// OnChange is invoked (without locks held) whenever the snapshot
	// changes.
	OnChange func(State)
}

// Monitor periodically probes the backend and folds the result together
// with the host's online/offline signal.
type Monitor struct {
	pinger   HealthPinger
	logger   logging.Logger
	interval time.Duration
	timeout  time.Duration
	onChange func(State)

	mu    sync.Mutex
	state State

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a stopped monitor. The initial snapshot is
// optimistic: online with the backend presumed available, so nothing
// shows a degraded banner before the first probe has had a chance to
// land.
func NewMonitor(cfg Config) *Monitor {
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = 30 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	return &Monitor{
		pinger:   cfg.Pinger,
		logger:   cfg.Logger,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		onChange: cfg.OnChange,
		state:    State{IsOnline: true, APIAvailable: true},
	}
}

// Start launches the probe loop: one probe immediately, then one per
// interval until Stop or ctx cancellation. Start is not reentrant.
func (m *Monitor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		m.CheckAPI(runCtx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				m.CheckAPI(runCtx)
			}
		}
	}()
}

// Stop halts the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}

// SetOnline feeds the host's link state in. Going offline marks the
// backend unavailable immediately without wasting a probe; coming back
// online triggers exactly one probe so the snapshot converges fast
// instead of waiting out the interval.
func (m *Monitor) SetOnline(online bool) {
	if !online {
		m.update(State{IsOnline: false, APIAvailable: false})
		return
	}

	m.mu.Lock()
	changed := !m.state.IsOnline
	m.state.IsOnline = true
	snapshot := m.state
	m.mu.Unlock()
	if changed {
		m.notify(snapshot)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	m.CheckAPI(ctx)
}

// CheckAPI runs a single probe and updates APIAvailable, leaving the
// online signal untouched. It probes even while offline so an explicit
// retry can recover from a stale offline signal.
func (m *Monitor) CheckAPI(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.PingHealth(probeCtx)
	available := err == nil
	if err != nil && m.logger != nil {
		m.logger.WithFields(logging.Fields{"error": err.Error()}).Debug("Health probe failed")
	}

	m.mu.Lock()
	next := State{IsOnline: m.state.IsOnline, APIAvailable: available}
	changed := m.state != next
	m.state = next
	m.mu.Unlock()
	if changed {
		m.notify(next)
	}
	return available
}

// Snapshot returns the current connectivity state.
func (m *Monitor) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) update(next State) {
	m.mu.Lock()
	changed := m.state != next
	m.state = next
	m.mu.Unlock()
	if changed {
		m.notify(next)
	}
}

func (m *Monitor) notify(s State) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
