// Package driver abstracts the physical pixel output. Drivers receive
// one frame per render tick and are responsible for getting it onto
// the strip, screen, or nowhere at all.
package driver

import "github.com/smazurov/lednode/internal/pattern"

// Driver renders frames to a pixel sink.
type Driver interface {
	// Render displays a frame of per-pixel colors. Called once per tick
	// from the render loop, so implementations must not block for long.
	Render(frame []pattern.RGB) error
	// Close releases the underlying device.
	Close() error
}
