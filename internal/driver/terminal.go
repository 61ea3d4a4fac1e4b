package driver

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/smazurov/lednode/internal/pattern"
)

// Terminal previews frames as a row of colored cells. Useful for
// developing patterns on a machine without a strip attached.
type Terminal struct {
	screen tcell.Screen
	done   chan struct{}
}

// NewTerminal initializes a full-screen preview.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.Clear()

	t := &Terminal{
		screen: screen,
		done:   make(chan struct{}),
	}
	go t.consumeEvents()
	return t, nil
}

// Render draws one cell per pixel on the top row.
func (t *Terminal) Render(frame []pattern.RGB) error {
	for i, px := range frame {
		color := tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B))
		style := tcell.StyleDefault.Foreground(color)
		t.screen.SetContent(i*2, 1, '█', []rune{'█'}, style)
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	close(t.done)
	t.screen.Fini()
	return nil
}

// consumeEvents drains the event queue so resizes are handled and the
// screen does not back up.
func (t *Terminal) consumeEvents() {
	for {
		select {
		case <-t.done:
			return
		default:
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			t.screen.Sync()
		}
	}
}
