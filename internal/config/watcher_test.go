package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/smazurov/lednode/internal/pattern"
)

func TestWatcherReloadsPatternOverrides(t *testing.T) {
	path := writeTempFile(t, "patterns.toml", `
[FLYING]
speed = 150
`)

	watcher := NewConfigWatcher(path, LoadPatternOverrides, slog.Default(),
		WithDebounce[pattern.Overrides](50*time.Millisecond))

	reloaded := make(chan pattern.Overrides, 1)
	watcher.OnReload(func(ov pattern.Overrides) {
		reloaded <- ov
	})

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	updated := `
[FLYING]
speed = 300
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case ov := <-reloaded:
		flying := ov[pattern.Flying]
		if flying.Speed == nil || *flying.Speed != 300 {
			t.Errorf("reloaded FLYING speed = %v, want 300", flying.Speed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never fired")
	}
}

func TestWatcherBrokenFileDoesNotNotify(t *testing.T) {
	path := writeTempFile(t, "patterns.toml", "[FLYING]\nspeed = 150\n")

	watcher := NewConfigWatcher(path, LoadPatternOverrides, slog.Default(),
		WithDebounce[pattern.Overrides](10*time.Millisecond))

	fired := make(chan struct{}, 1)
	watcher.OnReload(func(pattern.Overrides) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(path, []byte("[FLYING\nspeed ="), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case <-fired:
		t.Error("handler was notified for an unparseable file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherUnsubscribe(t *testing.T) {
	path := writeTempFile(t, "patterns.toml", "[FLYING]\nspeed = 150\n")

	watcher := NewConfigWatcher(path, LoadPatternOverrides, slog.Default(),
		WithDebounce[pattern.Overrides](10*time.Millisecond))

	fired := make(chan struct{}, 1)
	unsub := watcher.OnReload(func(pattern.Overrides) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	unsub()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(path, []byte("[FLYING]\nspeed = 200\n"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case <-fired:
		t.Error("unsubscribed handler was called")
	case <-time.After(200 * time.Millisecond):
	}
}
