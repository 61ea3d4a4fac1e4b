package driver

import (
	"fmt"
	"log/slog"
)

// New creates a driver by kind: "noop", "spidev", or "terminal".
// When a hardware driver fails to open, the error is logged and the
// no-op driver is returned so the node keeps running headless.
func New(kind, device string) (Driver, error) {
	switch kind {
	case "", "noop":
		return NewNoop(), nil
	case "spidev":
		drv, err := NewSpidev(device)
		if err != nil {
			slog.Warn("LED driver unavailable, falling back to noop", "kind", kind, "device", device, "error", err)
			return NewNoop(), nil
		}
		return drv, nil
	case "terminal":
		drv, err := NewTerminal()
		if err != nil {
			slog.Warn("Terminal preview unavailable, falling back to noop", "kind", kind, "error", err)
			return NewNoop(), nil
		}
		return drv, nil
	default:
		return nil, fmt.Errorf("unknown driver kind: %s", kind)
	}
}
