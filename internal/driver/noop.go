package driver

import "github.com/smazurov/lednode/internal/pattern"

// Noop discards frames. Used when no output device is configured and
// as the fallback when a real driver fails to open.
type Noop struct{}

// NewNoop creates a no-op driver.
func NewNoop() *Noop {
	return &Noop{}
}

// Render discards the frame.
func (*Noop) Render(_ []pattern.RGB) error {
	return nil
}

// Close is a no-op.
func (*Noop) Close() error {
	return nil
}
