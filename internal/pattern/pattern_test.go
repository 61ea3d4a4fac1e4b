package pattern

import "testing"

func TestNameRoundTrip(t *testing.T) {
	for _, p := range All() {
		if got := FromName(p.Name()); got != p {
			t.Errorf("FromName(%q) = %v, want %v", p.Name(), got, p)
		}
	}
}

func TestFromNameFallback(t *testing.T) {
	tests := []string{
		"INVALID_PATTERN",
		"",
		"flying",      // case mismatch
		"FLYING ",     // trailing space
		"FLY",         // substring
		"LOW_BATTERY2",
	}

	for _, name := range tests {
		if got := FromName(name); got != Idle {
			t.Errorf("FromName(%q) = %v, want Idle", name, got)
		}
	}
}

func TestDefaultTable(t *testing.T) {
	tests := []struct {
		pattern    Pattern
		color      RGB
		brightness uint8
		speed      uint16
	}{
		{Idle, RGB{0, 0, 255}, 128, 0},
		{TakingOff, RGB{0, 255, 0}, 128, 100},
		{Hovering, RGB{0, 255, 0}, 128, 1000},
		{Flying, RGB{255, 255, 255}, 128, 200},
		{Landing, RGB{255, 255, 0}, 128, 100},
		{Emergency, RGB{255, 0, 0}, 128, 200},
		{LowBattery, RGB{255, 165, 0}, 128, 1000},
		{Brainwave, RGB{0, 100, 255}, 180, 50},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.Name(), func(t *testing.T) {
			got := DefaultFor(tt.pattern)
			if got.Pattern != tt.pattern {
				t.Errorf("Pattern = %v, want %v", got.Pattern, tt.pattern)
			}
			if got.Color != tt.color {
				t.Errorf("Color = %v, want %v", got.Color, tt.color)
			}
			if got.Brightness != tt.brightness {
				t.Errorf("Brightness = %d, want %d", got.Brightness, tt.brightness)
			}
			if got.Speed != tt.speed {
				t.Errorf("Speed = %d, want %d", got.Speed, tt.speed)
			}
		})
	}
}

func TestRGBScale(t *testing.T) {
	c := RGB{255, 128, 0}

	if got := c.Scale(255); got != c {
		t.Errorf("Scale(255) = %v, want identity %v", got, c)
	}
	if got := c.Scale(0); got != (RGB{}) {
		t.Errorf("Scale(0) = %v, want zero", got)
	}
	if got := c.Scale(127); got.R != 127 {
		t.Errorf("Scale(127).R = %d, want 127", got.R)
	}
}

func TestCatalogOverrides(t *testing.T) {
	cat := NewCatalog()

	// No overrides: identical to the built-in table.
	if got := cat.DefaultFor(Flying); got != DefaultFor(Flying) {
		t.Errorf("DefaultFor(Flying) = %v, want built-in default", got)
	}

	color := RGB{10, 20, 30}
	speed := uint16(500)
	cat.SetOverrides(Overrides{
		Flying: {Color: &color, Speed: &speed},
	})

	got := cat.DefaultFor(Flying)
	if got.Color != color {
		t.Errorf("overridden Color = %v, want %v", got.Color, color)
	}
	if got.Speed != speed {
		t.Errorf("overridden Speed = %d, want %d", got.Speed, speed)
	}
	// Brightness untouched.
	if got.Brightness != 128 {
		t.Errorf("Brightness = %d, want 128", got.Brightness)
	}
	// Other patterns untouched.
	if got := cat.DefaultFor(Idle); got != DefaultFor(Idle) {
		t.Errorf("DefaultFor(Idle) = %v, want built-in default", got)
	}

	// Clearing restores built-ins.
	cat.SetOverrides(nil)
	if got := cat.DefaultFor(Flying); got != DefaultFor(Flying) {
		t.Errorf("after clear, DefaultFor(Flying) = %v, want built-in default", got)
	}
}
