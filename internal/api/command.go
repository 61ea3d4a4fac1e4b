package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lednode/internal/wire"
)

// CommandRequest is a command injected over HTTP. It is re-encoded
// into the wire envelope and pushed through the same ingestion path as
// radio commands, so validation and defaulting behave identically.
type CommandRequest struct {
	Body struct {
		Pattern    string  `json:"pattern" example:"FLYING" doc:"Pattern name, unknown names fall back to IDLE"`
		Color      []uint8 `json:"color,omitempty" doc:"RGB override, arrays shorter than 3 are ignored"`
		Brightness *uint8  `json:"brightness,omitempty" doc:"Brightness override 0-255"`
		Speed      *uint16 `json:"speed,omitempty" doc:"Speed override in ms per cycle"`
	}
}

// CommandResponse reports the command state after adoption.
type CommandResponse struct {
	Body StatusData
}

func (s *Server) registerCommandRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "post-command",
		Method:      http.MethodPost,
		Path:        "/api/command",
		Summary:     "Inject command",
		Description: "Adopt a pattern command as if it arrived over the radio link",
		Tags:        []string{"command"},
		Security:    withAuth(),
		Errors:      []int{401, 422},
	}, func(_ context.Context, input *CommandRequest) (*CommandResponse, error) {
		env := wire.Envelope{
			Type: wire.CommandType,
			Data: wire.EnvelopeData{
				Pattern:    input.Body.Pattern,
				Color:      input.Body.Color,
				Brightness: input.Body.Brightness,
				Speed:      input.Body.Speed,
			},
			Timestamp: time.Now().UnixMilli(),
		}

		payload, err := wire.Encode(env)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("encoding command", err)
		}
		if err := s.arbiter.Ingest(payload); err != nil {
			return nil, huma.Error422UnprocessableEntity(wire.Reason(err), err)
		}

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
		return &CommandResponse{Body: data}, nil
	})
}
