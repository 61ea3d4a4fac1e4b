package animation

import (
	"math"
	"time"

	"github.com/smazurov/lednode/internal/pattern"
)

// tailLength is the lit segment length for the flow patterns. The
// sweep runs pixels+tailLength steps so the tail fully exits the strip
// before the head re-enters.
const tailLength = 10

// Render produces one frame for the command at the given instant,
// advancing the cursor. Timing is relative to cursor.CycleStart, so
// any monotonic clock works. Brightness is applied as a final scale
// over the whole frame.
func Render(now time.Time, cmd pattern.Command, cur *Cursor, pixels int) []pattern.RGB {
	frame := make([]pattern.RGB, pixels)

	switch cmd.Pattern {
	case pattern.Idle:
		renderStatic(frame, cmd)
	case pattern.TakingOff:
		renderFlow(now, frame, cmd, cur, false)
	case pattern.Hovering, pattern.Flying, pattern.Emergency, pattern.LowBattery:
		renderBlink(now, frame, cmd, cur)
	case pattern.Landing:
		renderFlow(now, frame, cmd, cur, true)
	case pattern.Brainwave:
		renderBrainwave(now, frame, cmd, cur)
	}

	for i := range frame {
		frame[i] = frame[i].Scale(cmd.Brightness)
	}
	return frame
}

func renderStatic(frame []pattern.RGB, cmd pattern.Command) {
	for i := range frame {
		frame[i] = cmd.Color
	}
}

// renderBlink toggles the whole strip every cmd.Speed milliseconds,
// lit during the first window. CycleStart is advanced by whole
// half-periods rather than snapped to now, so phase stays continuous
// under uneven tick spacing.
func renderBlink(now time.Time, frame []pattern.RGB, cmd pattern.Command, cur *Cursor) {
	if cmd.Speed == 0 {
		renderStatic(frame, cmd)
		return
	}

	half := time.Duration(cmd.Speed) * time.Millisecond
	elapsed := now.Sub(cur.CycleStart)
	if elapsed >= half {
		crossed := int(elapsed / half)
		cur.Step += crossed
		cur.CycleStart = cur.CycleStart.Add(time.Duration(crossed) * half)
	}

	if cur.Step%2 == 0 {
		for i := range frame {
			frame[i] = cmd.Color
		}
	}
}

// renderFlow sweeps a fading segment across the strip, one full pass
// per cmd.Speed milliseconds split into pixels+tailLength steps. The
// cursor advances at most one step per tick so motion stays uniform
// under tick jitter. down mirrors the step-to-pixel mapping.
func renderFlow(now time.Time, frame []pattern.RGB, cmd pattern.Command, cur *Cursor, down bool) {
	if cmd.Speed == 0 {
		renderStatic(frame, cmd)
		return
	}

	steps := len(frame) + tailLength
	stepDur := time.Duration(cmd.Speed) * time.Millisecond / time.Duration(steps)
	if now.Sub(cur.CycleStart) >= stepDur {
		cur.CycleStart = now
		cur.Step = (cur.Step + 1) % steps
	}

	for i := range tailLength {
		idx := cur.Step - i
		if down {
			idx = (len(frame) - 1) - (cur.Step - i)
		}
		if idx >= 0 && idx < len(frame) {
			fade := uint8(255 * (tailLength - i) / tailLength)
			frame[idx] = cmd.Color.Scale(fade)
		}
	}
}

// renderBrainwave cycles a blue-purple-pink gradient across the strip,
// advancing one gradient unit per cmd.Speed milliseconds, with a
// sinusoidal intensity modulation layered on top. The command color is
// not used; the gradient is the point of the pattern.
func renderBrainwave(now time.Time, frame []pattern.RGB, cmd pattern.Command, cur *Cursor) {
	if cmd.Speed != 0 {
		stepDur := time.Duration(cmd.Speed) * time.Millisecond
		if now.Sub(cur.CycleStart) >= stepDur {
			cur.CycleStart = now
			cur.Step = (cur.Step + 1) % 256
		}
	}

	for i := range frame {
		gradientPos := (cur.Step + i*256/len(frame)) % 256

		var color pattern.RGB
		switch {
		case gradientPos < 85:
			// Blue into purple.
			progress := uint8(gradientPos * 3)
			color = pattern.RGB{R: progress, G: progress / 2, B: 255}
		case gradientPos < 170:
			// Purple into pink.
			progress := uint8((gradientPos - 85) * 3)
			color = pattern.RGB{R: 255, G: 127 - progress/2, B: 255 - progress}
		default:
			// Pink back to blue.
			progress := uint8((gradientPos - 170) * 3)
			color = pattern.RGB{R: 255 - progress, G: 0, B: progress}
		}

		// Pulsing intensity in the 0.7 to 1.0 range.
		wave := math.Sin(float64(gradientPos+cur.Step)*0.05)*0.3 + 0.7
		frame[i] = color.Scale(uint8(wave * 255))
	}
}
