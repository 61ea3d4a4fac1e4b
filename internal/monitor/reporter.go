// Package monitor periodically reports link and render statistics and
// turns staleness-window crossings into events.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/lednode/internal/arbiter"
	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/metrics"
)

// DefaultInterval is how often stats are logged.
const DefaultInterval = 10 * time.Second

// Reporter logs periodic stats and publishes LinkStateChangedEvent
// when connectivity flips. The arbiter itself never watches the clock;
// this is the only place link transitions are observed.
type Reporter struct {
	arbiter  *arbiter.Arbiter
	bus      *events.Bus
	logger   *slog.Logger
	interval time.Duration

	lastConnected bool
}

// New creates a reporter. An interval of 0 selects DefaultInterval.
func New(arb *arbiter.Arbiter, bus *events.Bus, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		arbiter:  arb,
		bus:      bus,
		logger:   slog.With("component", "monitor"),
		interval: interval,
	}
}

// Run reports until the context is canceled. Connectivity is checked
// every second so transitions are not delayed by the stats interval.
func (r *Reporter) Run(ctx context.Context) error {
	statsTicker := time.NewTicker(r.interval)
	defer statsTicker.Stop()
	linkTicker := time.NewTicker(time.Second)
	defer linkTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-linkTicker.C:
			r.checkLink(now)
		case now := <-statsTicker.C:
			r.logStats(now)
		}
	}
}

func (r *Reporter) checkLink(now time.Time) {
	connected := r.arbiter.IsConnected(now)
	if connected == r.lastConnected {
		return
	}
	r.lastConnected = connected
	metrics.SetConnected(connected)

	if connected {
		r.logger.Info("Command link up")
	} else {
		r.logger.Warn("Command link stale, holding last command")
	}
	r.bus.Publish(events.LinkStateChangedEvent{
		Connected: connected,
		Timestamp: now.Format(time.RFC3339),
	})
}

func (r *Reporter) logStats(now time.Time) {
	st := r.arbiter.Snapshot(now)
	counters := metrics.GetSnapshot()

	r.logger.Info("Node stats",
		"pattern", st.Pattern,
		"connected", st.Connected,
		"received", counters.Received,
		"rejected", counters.Rejected,
		"frames", counters.Frames,
	)
}
