package events

// Event type constants for kelindar/event.
const (
	TypeCommandAdopted uint32 = iota + 1
	TypeCommandRejected
	TypePatternChanged
	TypeLinkStateChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// CommandAdoptedEvent is published every time a decoded command is
// adopted as the active command, including identical re-adoptions.
type CommandAdoptedEvent struct {
	Pattern    string   `json:"pattern" example:"FLYING" doc:"Canonical pattern name"`
	Color      [3]uint8 `json:"color" doc:"RGB color channels"`
	Brightness uint8    `json:"brightness" example:"128" doc:"Brightness 0-255"`
	Speed      uint16   `json:"speed" example:"200" doc:"Milliseconds per animation cycle, 0 = static"`
	Timestamp  string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Adoption timestamp"`
}

// Type returns the event type identifier for CommandAdoptedEvent.
func (e CommandAdoptedEvent) Type() uint32 { return TypeCommandAdopted }

// CommandRejectedEvent is published when an inbound payload fails
// decoding. Rejections never change node state.
type CommandRejectedEvent struct {
	Reason    string `json:"reason" example:"malformed_payload" doc:"Rejection cause"`
	Detail    string `json:"detail,omitempty" doc:"Human-readable decode error"`
	Size      int    `json:"size" example:"42" doc:"Payload size in bytes"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Rejection timestamp"`
}

// Type returns the event type identifier for CommandRejectedEvent.
func (e CommandRejectedEvent) Type() uint32 { return TypeCommandRejected }

// PatternChangedEvent is published when adoption changes the active
// command by value; identical re-adoptions do not produce one.
type PatternChangedEvent struct {
	From      string `json:"from" example:"IDLE" doc:"Previous pattern name"`
	To        string `json:"to" example:"TAKING_OFF" doc:"New pattern name"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Change timestamp"`
}

// Type returns the event type identifier for PatternChangedEvent.
func (e PatternChangedEvent) Type() uint32 { return TypePatternChanged }

// LinkStateChangedEvent reports connectivity transitions derived from
// the receive-staleness window.
type LinkStateChangedEvent struct {
	Connected bool   `json:"connected" example:"true" doc:"Whether the link is considered alive"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Transition timestamp"`
}

// Type returns the event type identifier for LinkStateChangedEvent.
func (e LinkStateChangedEvent) Type() uint32 { return TypeLinkStateChanged }
