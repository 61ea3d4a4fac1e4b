// Package pattern defines the closed set of flight-status LED patterns
// and their default visual parameters.
package pattern

// Pattern identifies a visual intent for the LED strip.
type Pattern uint8

// The full catalog of patterns. Adding one requires extending the name
// table, the defaults table, and the renderer dispatch.
const (
	Idle Pattern = iota
	TakingOff
	Hovering
	Flying
	Landing
	Emergency
	LowBattery
	Brainwave
)

// patternNames holds the canonical wire names, indexed by Pattern.
var patternNames = [...]string{
	Idle:       "IDLE",
	TakingOff:  "TAKING_OFF",
	Hovering:   "HOVERING",
	Flying:     "FLYING",
	Landing:    "LANDING",
	Emergency:  "EMERGENCY",
	LowBattery: "LOW_BATTERY",
	Brainwave:  "BRAINWAVE",
}

// All returns every pattern in catalog order.
func All() []Pattern {
	out := make([]Pattern, len(patternNames))
	for i := range patternNames {
		out[i] = Pattern(i)
	}
	return out
}

// Name returns the canonical wire name for p.
func (p Pattern) Name() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "UNKNOWN"
}

// FromName maps a wire name to a Pattern. The match is exact and
// case-sensitive; any non-matching name (including empty) resolves to
// Idle. This is defined fallback behavior, not an error.
func FromName(name string) Pattern {
	for i, n := range patternNames {
		if n == name {
			return Pattern(i)
		}
	}
	return Idle
}

// RGB is a single pixel color.
type RGB struct {
	R, G, B uint8
}

// Scale returns c with each channel scaled by s/255.
func (c RGB) Scale(s uint8) RGB {
	return RGB{
		R: uint8(uint16(c.R) * uint16(s) / 255),
		G: uint8(uint16(c.G) * uint16(s) / 255),
		B: uint8(uint16(c.B) * uint16(s) / 255),
	}
}

// Command is a fully resolved pattern command, ready to render.
// Commands are immutable values; a new command replaces, never mutates,
// the active one.
type Command struct {
	Pattern    Pattern
	Color      RGB
	Brightness uint8
	Speed      uint16 // milliseconds per animation cycle, 0 = static
}
