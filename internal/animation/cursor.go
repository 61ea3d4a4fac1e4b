// Package animation turns the active command plus elapsed time into
// per-pixel frames, one frame per render tick.
package animation

import "time"

// Cursor is the per-session animation phase. It is owned by the render
// loop and reset whenever the active command changes by value.
type Cursor struct {
	CycleStart time.Time
	Step       int
}

// Reset restarts the animation phase at now.
func (c *Cursor) Reset(now time.Time) {
	c.CycleStart = now
	c.Step = 0
}
