package arbiter

import (
	"testing"
	"time"

	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/pattern"
)

func newTestArbiter() *Arbiter {
	return New(pattern.NewCatalog(), events.New())
}

func TestCurrentBeforeFirstCommand(t *testing.T) {
	a := newTestArbiter()

	got := a.Current()
	want := pattern.DefaultFor(pattern.Idle)
	if got != want {
		t.Errorf("Current() = %+v, want IDLE default %+v", got, want)
	}
	if a.IsConnected(time.Now()) {
		t.Error("IsConnected() = true before any command")
	}
}

func TestAdoptChangesActiveCommand(t *testing.T) {
	a := newTestArbiter()
	now := time.Now()

	cmd := pattern.DefaultFor(pattern.Flying)
	a.Adopt(cmd, now)

	if got := a.Current(); got != cmd {
		t.Errorf("Current() = %+v, want %+v", got, cmd)
	}
	if !a.IsConnected(now) {
		t.Error("IsConnected() = false right after adoption")
	}
	if a.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", a.Generation())
	}
}

func TestIdenticalReadoptionKeepsGeneration(t *testing.T) {
	a := newTestArbiter()
	now := time.Now()

	cmd := pattern.DefaultFor(pattern.Hovering)
	a.Adopt(cmd, now)
	gen := a.Generation()

	// Re-sending the same command refreshes the link but must not
	// restart the animation.
	a.Adopt(cmd, now.Add(time.Second))
	if a.Generation() != gen {
		t.Errorf("Generation() = %d after identical re-adoption, want %d", a.Generation(), gen)
	}

	st := a.Snapshot(now.Add(time.Second))
	if st.Received != 2 {
		t.Errorf("Received = %d, want 2", st.Received)
	}
}

func TestFieldChangeBumpsGeneration(t *testing.T) {
	a := newTestArbiter()
	now := time.Now()

	cmd := pattern.DefaultFor(pattern.Hovering)
	a.Adopt(cmd, now)
	gen := a.Generation()

	// Same pattern, different color: still a new command by value.
	cmd.Color = pattern.RGB{R: 10, G: 20, B: 30}
	a.Adopt(cmd, now)
	if a.Generation() != gen+1 {
		t.Errorf("Generation() = %d, want %d", a.Generation(), gen+1)
	}
}

func TestStalenessWindow(t *testing.T) {
	a := newTestArbiter()
	now := time.Now()
	a.Adopt(pattern.DefaultFor(pattern.Flying), now)

	if !a.IsConnected(now.Add(StalenessWindow - time.Millisecond)) {
		t.Error("IsConnected() = false just inside the window")
	}
	if a.IsConnected(now.Add(StalenessWindow)) {
		t.Error("IsConnected() = true at the window boundary")
	}

	// Connectivity is derived, not stored: the stale command stays active.
	if got := a.Current(); got.Pattern != pattern.Flying {
		t.Errorf("Current().Pattern = %v after staleness, want Flying", got.Pattern)
	}
}

func TestIngestRejectionLeavesStateUntouched(t *testing.T) {
	a := newTestArbiter()
	now := time.Now()
	a.Adopt(pattern.DefaultFor(pattern.Landing), now)
	gen := a.Generation()

	if err := a.Ingest([]byte(`{"type":"telemetry"}`)); err == nil {
		t.Fatal("Ingest accepted an unsupported type")
	}

	if got := a.Current(); got.Pattern != pattern.Landing {
		t.Errorf("Current().Pattern = %v after rejection, want Landing", got.Pattern)
	}
	if a.Generation() != gen {
		t.Errorf("Generation() = %d after rejection, want %d", a.Generation(), gen)
	}
}

func TestIngestAdoptsDecodedCommand(t *testing.T) {
	a := newTestArbiter()

	payload := []byte(`{"type":"led_command","data":{"pattern":"EMERGENCY"}}`)
	if err := a.Ingest(payload); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if got := a.Current(); got != pattern.DefaultFor(pattern.Emergency) {
		t.Errorf("Current() = %+v, want EMERGENCY default", got)
	}
}

func TestPatternChangedEventOnlyOnChange(t *testing.T) {
	bus := events.New()
	a := New(pattern.NewCatalog(), bus)

	changes := make(chan events.PatternChangedEvent, 4)
	unsub := bus.Subscribe(func(e events.PatternChangedEvent) { changes <- e })
	defer unsub()

	now := time.Now()
	a.Adopt(pattern.DefaultFor(pattern.TakingOff), now)
	a.Adopt(pattern.DefaultFor(pattern.TakingOff), now)
	a.Adopt(pattern.DefaultFor(pattern.Flying), now)

	first := <-changes
	if first.From != "IDLE" || first.To != "TAKING_OFF" {
		t.Errorf("first change = %s -> %s, want IDLE -> TAKING_OFF", first.From, first.To)
	}
	second := <-changes
	if second.From != "TAKING_OFF" || second.To != "FLYING" {
		t.Errorf("second change = %s -> %s, want TAKING_OFF -> FLYING", second.From, second.To)
	}

	select {
	case extra := <-changes:
		t.Errorf("unexpected extra change event: %+v", extra)
	case <-time.After(10 * time.Millisecond):
	}
}
