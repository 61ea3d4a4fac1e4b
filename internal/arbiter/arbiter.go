// Package arbiter reconciles asynchronously arriving commands with the
// periodic render loop. It owns the active command and the link state.
package arbiter

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/metrics"
	"github.com/smazurov/lednode/internal/pattern"
	"github.com/smazurov/lednode/internal/wire"
)

// StalenessWindow is how long after the last accepted command the link
// is still considered alive.
const StalenessWindow = 5000 * time.Millisecond

// Arbiter holds the active command behind an atomic pointer so the
// render loop reads a consistent command without locking. Adoption is
// serialized across ingestion paths with a mutex.
type Arbiter struct {
	catalog *pattern.Catalog
	decoder *wire.Decoder
	bus     *events.Bus
	logger  *slog.Logger

	adoptMu     sync.Mutex
	active      atomic.Pointer[pattern.Command]
	lastReceive atomic.Int64 // UnixMilli of last adoption, 0 = never
	received    atomic.Uint64
	generation  atomic.Uint64
}

// New creates an arbiter with no active command. Until the first
// adoption the node renders the IDLE default and reports disconnected.
func New(catalog *pattern.Catalog, bus *events.Bus) *Arbiter {
	return &Arbiter{
		catalog: catalog,
		decoder: wire.NewDecoder(catalog),
		bus:     bus,
		logger:  slog.With("component", "arbiter"),
	}
}

// Ingest decodes a raw payload and adopts the resulting command.
// Rejected payloads are counted and published but never change state.
func (a *Arbiter) Ingest(payload []byte) error {
	metrics.IncReceived()

	cmd, err := a.decoder.Decode(payload)
	if err != nil {
		reason := wire.Reason(err)
		a.logger.Warn("Rejected command payload", "reason", reason, "size", len(payload), "error", err)
		metrics.IncRejected(reason)
		a.bus.Publish(events.CommandRejectedEvent{
			Reason:    reason,
			Detail:    err.Error(),
			Size:      len(payload),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return err
	}

	a.Adopt(cmd, time.Now())
	return nil
}

// Adopt installs cmd as the active command. The receive timestamp and
// message counter refresh on every call, including identical
// re-adoptions. The generation only advances when the command differs
// by value from the current one, so re-sending the same command does
// not restart the animation.
func (a *Arbiter) Adopt(cmd pattern.Command, now time.Time) {
	a.adoptMu.Lock()
	defer a.adoptMu.Unlock()

	a.lastReceive.Store(now.UnixMilli())
	a.received.Add(1)
	metrics.IncAdopted()

	prev := a.active.Load()
	changed := prev == nil || *prev != cmd
	if changed {
		a.active.Store(&cmd)
		a.generation.Add(1)

		from := pattern.Idle
		if prev != nil {
			from = prev.Pattern
		}
		if from != cmd.Pattern {
			metrics.IncPatternChange()
			a.logger.Info("Pattern changed", "from", from.Name(), "to", cmd.Pattern.Name())
			a.bus.Publish(events.PatternChangedEvent{
				From:      from.Name(),
				To:        cmd.Pattern.Name(),
				Timestamp: now.Format(time.RFC3339),
			})
		}
	}

	a.bus.Publish(events.CommandAdoptedEvent{
		Pattern:    cmd.Pattern.Name(),
		Color:      [3]uint8{cmd.Color.R, cmd.Color.G, cmd.Color.B},
		Brightness: cmd.Brightness,
		Speed:      cmd.Speed,
		Timestamp:  now.Format(time.RFC3339),
	})
}

// Current returns the active command, or the IDLE catalog default when
// nothing has been adopted yet.
func (a *Arbiter) Current() pattern.Command {
	if cmd := a.active.Load(); cmd != nil {
		return *cmd
	}
	return a.catalog.DefaultFor(pattern.Idle)
}

// Generation returns a counter that advances whenever the active
// command changes by value. The render loop polls it to detect when
// animation cursors must reset.
func (a *Arbiter) Generation() uint64 {
	return a.generation.Load()
}

// IsConnected reports whether a command was adopted within the
// staleness window. A node that never received a command is
// disconnected.
func (a *Arbiter) IsConnected(now time.Time) bool {
	last := a.lastReceive.Load()
	if last == 0 {
		return false
	}
	return now.UnixMilli()-last < StalenessWindow.Milliseconds()
}

// Status is a point-in-time view of the arbiter for the API and the
// stats reporter.
type Status struct {
	Pattern     string
	Color       [3]uint8
	Brightness  uint8
	Speed       uint16
	Connected   bool
	LastReceive time.Time // zero when nothing was received
	Received    uint64
	Generation  uint64
}

// Snapshot returns the current status.
func (a *Arbiter) Snapshot(now time.Time) Status {
	cmd := a.Current()
	st := Status{
		Pattern:    cmd.Pattern.Name(),
		Color:      [3]uint8{cmd.Color.R, cmd.Color.G, cmd.Color.B},
		Brightness: cmd.Brightness,
		Speed:      cmd.Speed,
		Connected:  a.IsConnected(now),
		Received:   a.received.Load(),
		Generation: a.generation.Load(),
	}
	if last := a.lastReceive.Load(); last != 0 {
		st.LastReceive = time.UnixMilli(last)
	}
	return st
}
