package animation

import (
	"testing"
	"time"

	"github.com/smazurov/lednode/internal/pattern"
)

const testPixels = 30

func fullBright(cmd pattern.Command) pattern.Command {
	cmd.Brightness = 255
	return cmd
}

func TestRenderStatic(t *testing.T) {
	cmd := pattern.DefaultFor(pattern.Idle)
	var cur Cursor
	now := time.Now()
	cur.Reset(now)

	frame := Render(now, cmd, &cur, testPixels)
	if len(frame) != testPixels {
		t.Fatalf("frame length = %d, want %d", len(frame), testPixels)
	}

	want := cmd.Color.Scale(cmd.Brightness)
	for i, px := range frame {
		if px != want {
			t.Fatalf("pixel %d = %v, want %v", i, px, want)
		}
	}

	// Static patterns never advance the cursor.
	later := Render(now.Add(time.Minute), cmd, &cur, testPixels)
	if later[0] != want || cur.Step != 0 {
		t.Error("static pattern changed over time")
	}
}

func TestRenderBlinkLitFirstWindow(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.Hovering)) // speed 1000
	var cur Cursor
	start := time.Now()
	cur.Reset(start)

	lit := func(offset time.Duration) bool {
		frame := Render(start.Add(offset), cmd, &cur, testPixels)
		return frame[0] != (pattern.RGB{})
	}

	if !lit(0) {
		t.Error("strip off at t=0, want lit")
	}
	if !lit(999 * time.Millisecond) {
		t.Error("strip off at t=999ms, want lit")
	}
	if lit(1000 * time.Millisecond) {
		t.Error("strip lit at t=1000ms, want off")
	}
	if lit(1999 * time.Millisecond) {
		t.Error("strip lit at t=1999ms, want off")
	}
	if !lit(2000 * time.Millisecond) {
		t.Error("strip off at t=2000ms, want lit")
	}
}

func TestRenderBlinkPhaseContinuity(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.Hovering)) // speed 1000
	var cur Cursor
	start := time.Now()
	cur.Reset(start)

	// A single late tick crossing two and a half periods lands in the
	// lit window, and CycleStart advances by whole half-periods only.
	frame := Render(start.Add(2500*time.Millisecond), cmd, &cur, testPixels)
	if frame[0] == (pattern.RGB{}) {
		t.Error("strip off at t=2500ms, want lit (third window)")
	}
	if cur.Step != 2 {
		t.Errorf("Step = %d, want 2", cur.Step)
	}
	if got := cur.CycleStart; !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("CycleStart advanced to +%v, want +2s", got.Sub(start))
	}
}

func TestRenderBlinkZeroSpeedIsStatic(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.Flying))
	cmd.Speed = 0
	var cur Cursor
	now := time.Now()
	cur.Reset(now)

	frame := Render(now.Add(time.Hour), cmd, &cur, testPixels)
	for i, px := range frame {
		if px != cmd.Color {
			t.Fatalf("pixel %d = %v, want constant %v", i, px, cmd.Color)
		}
	}
}

func TestRenderFlowUpTail(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.TakingOff))
	now := time.Now()
	cur := Cursor{CycleStart: now, Step: 12}

	frame := Render(now, cmd, &cur, testPixels)

	if cur.Step != 12 {
		t.Fatalf("Step advanced within the same step window, now %d", cur.Step)
	}
	// Head at full intensity, fading linearly toward the tail end.
	if frame[12] != cmd.Color {
		t.Errorf("head pixel = %v, want %v", frame[12], cmd.Color)
	}
	wantMid := cmd.Color.Scale(255 * 5 / 10)
	if frame[7] != wantMid {
		t.Errorf("mid-tail pixel = %v, want %v", frame[7], wantMid)
	}
	if frame[2] != (pattern.RGB{}) {
		t.Errorf("pixel behind the tail = %v, want off", frame[2])
	}
	if frame[13] != (pattern.RGB{}) {
		t.Errorf("pixel ahead of the head = %v, want off", frame[13])
	}
}

func TestRenderFlowDownMirrors(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.Landing))
	now := time.Now()
	cur := Cursor{CycleStart: now, Step: 0}

	frame := Render(now, cmd, &cur, testPixels)

	if frame[testPixels-1] != cmd.Color {
		t.Errorf("top pixel = %v, want head %v", frame[testPixels-1], cmd.Color)
	}
	if frame[0] != (pattern.RGB{}) {
		t.Errorf("bottom pixel = %v, want off at step 0", frame[0])
	}
}

func TestRenderFlowSingleStepPerTick(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.TakingOff)) // speed 100
	var cur Cursor
	start := time.Now()
	cur.Reset(start)

	// Even a very late tick advances exactly one step.
	Render(start.Add(time.Second), cmd, &cur, testPixels)
	if cur.Step != 1 {
		t.Errorf("Step = %d after one late tick, want 1", cur.Step)
	}
}

func TestRenderFlowWrapsAroundStrip(t *testing.T) {
	cmd := fullBright(pattern.DefaultFor(pattern.TakingOff))
	now := time.Now()
	steps := testPixels + tailLength
	cur := Cursor{CycleStart: now.Add(-time.Second), Step: steps - 1}

	Render(now, cmd, &cur, testPixels)
	if cur.Step != 0 {
		t.Errorf("Step = %d after full sweep, want wrap to 0", cur.Step)
	}
}

func TestRenderBrainwaveGradient(t *testing.T) {
	cmd := pattern.DefaultFor(pattern.Brainwave)
	now := time.Now()
	cur := Cursor{CycleStart: now, Step: 0}

	frame := Render(now, cmd, &cur, testPixels)

	// Every pixel is lit and the gradient varies across the strip.
	for i, px := range frame {
		if px == (pattern.RGB{}) {
			t.Fatalf("pixel %d is off", i)
		}
	}
	if frame[0] == frame[testPixels/2] {
		t.Error("gradient is flat across the strip")
	}
	// The low end of the gradient is blue-dominant.
	if frame[0].B <= frame[0].R {
		t.Errorf("pixel 0 = %v, want blue-dominant", frame[0])
	}
}

func TestRenderBrainwaveStepWraps(t *testing.T) {
	cmd := pattern.DefaultFor(pattern.Brainwave) // speed 50
	now := time.Now()
	cur := Cursor{CycleStart: now.Add(-time.Second), Step: 255}

	Render(now, cmd, &cur, testPixels)
	if cur.Step != 0 {
		t.Errorf("Step = %d, want wrap to 0", cur.Step)
	}
}

func TestRenderAppliesBrightness(t *testing.T) {
	cmd := pattern.DefaultFor(pattern.Idle)
	cmd.Brightness = 0
	var cur Cursor
	now := time.Now()
	cur.Reset(now)

	frame := Render(now, cmd, &cur, testPixels)
	for i, px := range frame {
		if px != (pattern.RGB{}) {
			t.Fatalf("pixel %d = %v at brightness 0, want off", i, px)
		}
	}
}
