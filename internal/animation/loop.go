package animation

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/lednode/internal/arbiter"
	"github.com/smazurov/lednode/internal/driver"
	"github.com/smazurov/lednode/internal/metrics"
)

// DefaultTick is the default render interval, roughly 60 frames per
// second.
const DefaultTick = 16 * time.Millisecond

// Loop renders the arbiter's current command to the driver on a fixed
// tick. It is the sole owner of the animation cursor; new commands are
// picked up by polling the arbiter's generation counter, never by
// blocking on it.
type Loop struct {
	arbiter *arbiter.Arbiter
	driver  driver.Driver
	logger  *slog.Logger
	pixels  int
	tick    time.Duration

	cursor  Cursor
	lastGen uint64
}

// NewLoop creates a render loop. A tick of 0 selects DefaultTick.
func NewLoop(arb *arbiter.Arbiter, drv driver.Driver, pixels int, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Loop{
		arbiter: arb,
		driver:  drv,
		logger:  slog.With("component", "render_loop"),
		pixels:  pixels,
		tick:    tick,
	}
}

// Run renders until the context is canceled. Driver errors are logged
// and the loop keeps going; the light show must outlive a flaky
// device.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Render loop started", "pixels", l.pixels, "tick", l.tick)
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.cursor.Reset(time.Now())
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Render loop stopped")
			return nil
		case now := <-ticker.C:
			l.renderTick(now)
		}
	}
}

// renderTick draws one frame. A command adopted mid-render is picked
// up here on the next tick via the generation counter.
func (l *Loop) renderTick(now time.Time) {
	if gen := l.arbiter.Generation(); gen != l.lastGen {
		l.lastGen = gen
		l.cursor.Reset(now)
	}

	cmd := l.arbiter.Current()
	frame := Render(now, cmd, &l.cursor, l.pixels)
	if err := l.driver.Render(frame); err != nil {
		l.logger.Warn("Driver render failed", "error", err)
		return
	}
	metrics.IncFrame()
}
