package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/lednode/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of command adoptions, rejections, pattern changes, and link transitions",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"command-adopted":    events.CommandAdoptedEvent{},
		"command-rejected":   events.CommandRejectedEvent{},
		"pattern-changed":    events.PatternChangedEvent{},
		"link-state-changed": events.LinkStateChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.CommandAdoptedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CommandRejectedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PatternChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.LinkStateChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Initial snapshot so clients render state before the next event.
		st := s.arbiter.Snapshot(time.Now())
		if err := send.Data(events.CommandAdoptedEvent{
			Pattern:    st.Pattern,
			Color:      st.Color,
			Brightness: st.Brightness,
			Speed:      st.Speed,
			Timestamp:  time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					// Connection failed, clean up and exit
					return
				}
			}
		}
	})
}
