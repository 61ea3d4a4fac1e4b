package pattern

import "sync/atomic"

// Default appearance constants, matching the drone controller firmware.
const (
	DefaultBrightness uint8 = 128

	SpeedStatic    uint16 = 0
	SpeedSlowBlink uint16 = 1000
	SpeedFastBlink uint16 = 200
	SpeedFlow      uint16 = 100
	SpeedBrainwave uint16 = 50
)

// Base colors.
var (
	ColorBlue     = RGB{0, 0, 255}
	ColorGreen    = RGB{0, 255, 0}
	ColorWhite    = RGB{255, 255, 255}
	ColorYellow   = RGB{255, 255, 0}
	ColorRed      = RGB{255, 0, 0}
	ColorOrange   = RGB{255, 165, 0}
	ColorCyanBlue = RGB{0, 100, 255}
)

// defaults is the fixed pattern table, indexed by Pattern.
var defaults = [...]Command{
	Idle:       {Pattern: Idle, Color: ColorBlue, Brightness: DefaultBrightness, Speed: SpeedStatic},
	TakingOff:  {Pattern: TakingOff, Color: ColorGreen, Brightness: DefaultBrightness, Speed: SpeedFlow},
	Hovering:   {Pattern: Hovering, Color: ColorGreen, Brightness: DefaultBrightness, Speed: SpeedSlowBlink},
	Flying:     {Pattern: Flying, Color: ColorWhite, Brightness: DefaultBrightness, Speed: SpeedFastBlink},
	Landing:    {Pattern: Landing, Color: ColorYellow, Brightness: DefaultBrightness, Speed: SpeedFlow},
	Emergency:  {Pattern: Emergency, Color: ColorRed, Brightness: DefaultBrightness, Speed: SpeedFastBlink},
	LowBattery: {Pattern: LowBattery, Color: ColorOrange, Brightness: DefaultBrightness, Speed: SpeedSlowBlink},
	Brainwave:  {Pattern: Brainwave, Color: ColorCyanBlue, Brightness: 180, Speed: SpeedBrainwave},
}

// DefaultFor returns the built-in default command for p.
func DefaultFor(p Pattern) Command {
	if int(p) < len(defaults) {
		return defaults[p]
	}
	return defaults[Idle]
}

// Override replaces selected default fields for one pattern. Nil fields
// keep the built-in value.
type Override struct {
	Color      *RGB
	Brightness *uint8
	Speed      *uint16
}

// Overrides maps patterns to their configured overrides.
type Overrides map[Pattern]Override

// Catalog resolves pattern defaults, optionally adjusted by overrides
// loaded from configuration. Overrides may be swapped at runtime (the
// patterns file is hot-reloaded) while decoders read concurrently, so
// the map is held behind an atomic pointer.
type Catalog struct {
	overrides atomic.Pointer[Overrides]
}

// NewCatalog returns a catalog with no overrides.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// SetOverrides atomically replaces the active override set.
func (c *Catalog) SetOverrides(o Overrides) {
	c.overrides.Store(&o)
}

// DefaultFor returns the default command for p with any configured
// overrides applied.
func (c *Catalog) DefaultFor(p Pattern) Command {
	cmd := DefaultFor(p)

	ptr := c.overrides.Load()
	if ptr == nil {
		return cmd
	}
	o, ok := (*ptr)[p]
	if !ok {
		return cmd
	}
	if o.Color != nil {
		cmd.Color = *o.Color
	}
	if o.Brightness != nil {
		cmd.Brightness = *o.Brightness
	}
	if o.Speed != nil {
		cmd.Speed = *o.Speed
	}
	return cmd
}
