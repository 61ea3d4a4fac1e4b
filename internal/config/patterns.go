package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/pattern"
)

// patternOverride is the TOML shape of one pattern section. All fields
// are optional; absent fields keep the built-in default.
type patternOverride struct {
	Color      []int `toml:"color"`
	Brightness *int  `toml:"brightness"`
	Speed      *int  `toml:"speed"`
}

// LoadPatternOverrides parses a pattern overrides file. Sections are
// keyed by canonical pattern name:
//
//	[FLYING]
//	color = [255, 200, 0]
//	speed = 150
//
// Sections with unknown names are skipped with a warning so a typo
// cannot take the node down.
func LoadPatternOverrides(path string) (pattern.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern overrides: %w", err)
	}

	var raw map[string]patternOverride
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing pattern overrides: %w", err)
	}

	logger := logging.GetLogger("config")
	overrides := make(pattern.Overrides, len(raw))
	for name, section := range raw {
		p, ok := patternByName(name)
		if !ok {
			logger.Warn("Skipping unknown pattern in overrides file", "pattern", name, "path", path)
			continue
		}

		var ov pattern.Override
		if len(section.Color) >= 3 {
			color := pattern.RGB{
				R: uint8(section.Color[0]),
				G: uint8(section.Color[1]),
				B: uint8(section.Color[2]),
			}
			ov.Color = &color
		} else if len(section.Color) > 0 {
			logger.Warn("Ignoring short color array in overrides file", "pattern", name, "length", len(section.Color))
		}
		if section.Brightness != nil {
			b := uint8(*section.Brightness)
			ov.Brightness = &b
		}
		if section.Speed != nil {
			s := uint16(*section.Speed)
			ov.Speed = &s
		}
		overrides[p] = ov
	}

	return overrides, nil
}

// patternByName resolves a canonical name without the IDLE fallback
// that decoding uses; override files should not silently retarget IDLE.
func patternByName(name string) (pattern.Pattern, bool) {
	for _, p := range pattern.All() {
		if p.Name() == name {
			return p, true
		}
	}
	return pattern.Idle, false
}
