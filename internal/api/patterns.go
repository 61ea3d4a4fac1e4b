package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lednode/internal/pattern"
)

// PatternInfo describes one catalog entry with overrides applied.
type PatternInfo struct {
	Name       string   `json:"name" example:"FLYING" doc:"Canonical pattern name"`
	Color      [3]uint8 `json:"color" doc:"Default RGB color"`
	Brightness uint8    `json:"brightness" example:"128" doc:"Default brightness"`
	Speed      uint16   `json:"speed" example:"200" doc:"Default speed in ms per cycle, 0 = static"`
}

// PatternsResponse lists the pattern catalog.
type PatternsResponse struct {
	Body struct {
		Patterns []PatternInfo `json:"patterns"`
	}
}

func (s *Server) registerPatternRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-patterns",
		Method:      http.MethodGet,
		Path:        "/api/patterns",
		Summary:     "Pattern catalog",
		Description: "All known patterns with their effective default commands",
		Tags:        []string{"patterns"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*PatternsResponse, error) {
		resp := &PatternsResponse{}
		for _, p := range pattern.All() {
			cmd := s.catalog.DefaultFor(p)
			resp.Body.Patterns = append(resp.Body.Patterns, PatternInfo{
				Name:       p.Name(),
				Color:      [3]uint8{cmd.Color.R, cmd.Color.G, cmd.Color.B},
				Brightness: cmd.Brightness,
				Speed:      cmd.Speed,
			})
		}
		return resp, nil
	})
}
