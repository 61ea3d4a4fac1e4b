package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// StatusData is the observable node state.
type StatusData struct {
	Pattern     string   `json:"pattern" example:"FLYING" doc:"Active pattern name"`
	Color       [3]uint8 `json:"color" doc:"Active RGB color"`
	Brightness  uint8    `json:"brightness" example:"128" doc:"Active brightness"`
	Speed       uint16   `json:"speed" example:"200" doc:"Active speed in ms per cycle, 0 = static"`
	Connected   bool     `json:"connected" doc:"Whether a command arrived within the staleness window"`
	LastReceive string   `json:"last_receive,omitempty" doc:"Timestamp of the last accepted command"`
	Received    uint64   `json:"received" doc:"Total commands adopted"`
}

// StatusResponse is the status endpoint response.
type StatusResponse struct {
	Body StatusData
}

func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Node status",
		Description: "Current command, link health, and message counters",
		Tags:        []string{"status"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*StatusResponse, error) {
		st := s.arbiter.Snapshot(time.Now())

		data := StatusData{
			Pattern:    st.Pattern,
			Color:      st.Color,
			Brightness: st.Brightness,
			Speed:      st.Speed,
			Connected:  st.Connected,
			Received:   st.Received,
		}
		if !st.LastReceive.IsZero() {
			data.LastReceive = st.LastReceive.Format(time.RFC3339)
		}
		return &StatusResponse{Body: data}, nil
	})
}
