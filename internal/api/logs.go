package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lednode/internal/logging"
)

// LogsInput selects how many recent entries to return.
type LogsInput struct {
	Limit int `query:"limit" default:"100" minimum:"1" maximum:"1000" doc:"Maximum entries to return, newest last"`
}

// LogsResponse returns recent log entries from the ring buffer.
type LogsResponse struct {
	Body struct {
		Entries []logging.LogEntry `json:"entries"`
	}
}

func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Recent logs",
		Description: "Log history from the in-memory ring buffer",
		Tags:        []string{"system"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, input *LogsInput) (*LogsResponse, error) {
		resp := &LogsResponse{}

		buffer := logging.GetBuffer()
		if buffer == nil {
			return resp, nil
		}

		entries := buffer.ReadAll()
		if input.Limit > 0 && len(entries) > input.Limit {
			entries = entries[len(entries)-input.Limit:]
		}
		resp.Body.Entries = entries
		return resp, nil
	})
}
