package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/lednode/internal/arbiter"
	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/pattern"
)

func newTestServer(opts *Options) (*Server, *arbiter.Arbiter) {
	if opts == nil {
		opts = &Options{}
	}
	catalog := pattern.NewCatalog()
	bus := events.New()
	arb := arbiter.New(catalog, bus)
	return NewServer(opts, arb, catalog, bus), arb
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(nil)
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestStatusEndpoint(t *testing.T) {
	server, arb := newTestServer(nil)
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	arb.Adopt(pattern.DefaultFor(pattern.Flying), time.Now())

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status failed: %v", err)
	}
	defer resp.Body.Close()

	var status StatusData
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if status.Pattern != "FLYING" {
		t.Errorf("pattern = %q, want FLYING", status.Pattern)
	}
	if !status.Connected {
		t.Error("connected = false right after adoption")
	}
	if status.Received != 1 {
		t.Errorf("received = %d, want 1", status.Received)
	}
}

func TestCommandEndpoint(t *testing.T) {
	server, arb := newTestServer(nil)
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	body := `{"pattern":"EMERGENCY","brightness":200}`
	resp, err := http.Post(ts.URL+"/api/command", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/command failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	cmd := arb.Current()
	if cmd.Pattern != pattern.Emergency {
		t.Errorf("adopted pattern = %v, want Emergency", cmd.Pattern)
	}
	if cmd.Brightness != 200 {
		t.Errorf("adopted brightness = %d, want 200", cmd.Brightness)
	}
}

func TestCommandEndpointUnknownPatternFallsBack(t *testing.T) {
	server, arb := newTestServer(nil)
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	// Unknown names are defined fallback behavior, not an error.
	body := `{"pattern":"NO_SUCH_PATTERN"}`
	resp, err := http.Post(ts.URL+"/api/command", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/command failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := arb.Current(); got.Pattern != pattern.Idle {
		t.Errorf("adopted pattern = %v, want Idle fallback", got.Pattern)
	}
}

func TestPatternsEndpoint(t *testing.T) {
	server, _ := newTestServer(nil)
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/patterns")
	if err != nil {
		t.Fatalf("GET /api/patterns failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Patterns []PatternInfo `json:"patterns"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(payload.Patterns) != len(pattern.All()) {
		t.Fatalf("pattern count = %d, want %d", len(payload.Patterns), len(pattern.All()))
	}
	for _, info := range payload.Patterns {
		if info.Name == "BRAINWAVE" && info.Brightness != 180 {
			t.Errorf("BRAINWAVE brightness = %d, want 180", info.Brightness)
		}
	}
}

func TestBasicAuthRequired(t *testing.T) {
	server, _ := newTestServer(&Options{AuthUsername: "admin", AuthPassword: "secret"})
	ts := httptest.NewServer(server.GetMux())
	defer ts.Close()

	// Status requires auth.
	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	// Health does not.
	resp, err = http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}

	// Valid credentials pass.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/status", nil)
	req.SetBasicAuth("admin", "secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("authenticated GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", resp.StatusCode)
	}
}
