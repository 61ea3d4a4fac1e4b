// Package wire decodes untrusted command payloads received over the
// radio link into typed pattern commands.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smazurov/lednode/internal/pattern"
)

// MaxPayloadSize is the transport MTU. Larger datagrams are dropped at
// the transport boundary and never reach the decoder.
const MaxPayloadSize = 250

// CommandType is the only accepted value of the envelope "type" field.
const CommandType = "led_command"

// Decode rejection causes. Every rejection wraps exactly one of these.
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnsupportedType  = errors.New("unsupported message type")
	ErrMissingPayload   = errors.New("missing data object")
	ErrMissingPattern   = errors.New("missing pattern field")
)

// Reason returns a short stable label for a decode error, used as a
// metrics dimension. Unknown errors map to "unknown".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrMissingPayload):
		return "missing_payload"
	case errors.Is(err, ErrMissingPattern):
		return "missing_pattern"
	default:
		return "unknown"
	}
}

// Decoder turns raw payloads into commands, resolving defaults through
// a catalog. A Decoder is a pure function of its input: it keeps no
// state and has no side effects.
type Decoder struct {
	catalog *pattern.Catalog
}

// NewDecoder creates a decoder resolving defaults from catalog.
func NewDecoder(catalog *pattern.Catalog) *Decoder {
	return &Decoder{catalog: catalog}
}

// Decode validates and decodes a single payload. On error no command is
// returned; there is no notion of a partially decoded command.
//
// Validation rules, in order:
//  1. the payload must be a well-formed JSON object
//  2. "type" must equal "led_command"
//  3. "data" must be present and an object
//  4. "data.pattern" must be present and a string
//
// A literal JSON null never satisfies a presence rule.
//
// An unrecognized pattern name resolves to IDLE; that is defined
// fallback behavior, not an error. A "timestamp" field is accepted but
// unused.
func (d *Decoder) Decode(payload []byte) (pattern.Command, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return pattern.Command{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var msgType string
	raw, ok := root["type"]
	if !ok {
		return pattern.Command{}, fmt.Errorf("%w: type field absent", ErrUnsupportedType)
	}
	if err := json.Unmarshal(raw, &msgType); err != nil || msgType != CommandType {
		return pattern.Command{}, fmt.Errorf("%w: %q", ErrUnsupportedType, string(raw))
	}

	rawData, ok := root["data"]
	if !ok {
		return pattern.Command{}, ErrMissingPayload
	}
	// Unmarshaling a JSON null into a map is a silent no-op, so the nil
	// check is what actually catches "data": null.
	var data map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &data); err != nil || data == nil {
		return pattern.Command{}, fmt.Errorf("%w: data is not an object", ErrMissingPayload)
	}

	var name *string
	rawPattern, ok := data["pattern"]
	if !ok {
		return pattern.Command{}, ErrMissingPattern
	}
	if err := json.Unmarshal(rawPattern, &name); err != nil || name == nil {
		return pattern.Command{}, fmt.Errorf("%w: pattern is not a string", ErrMissingPattern)
	}

	cmd := d.catalog.DefaultFor(pattern.FromName(*name))

	// Field overrides. Out-of-range numbers truncate per fixed-width
	// unsigned conversion; this mirrors the wire contract, it is not an
	// overflow guard.
	if rawColor, ok := data["color"]; ok {
		var channels []float64
		if err := json.Unmarshal(rawColor, &channels); err == nil && len(channels) >= 3 {
			cmd.Color = pattern.RGB{
				R: uint8(int64(channels[0])),
				G: uint8(int64(channels[1])),
				B: uint8(int64(channels[2])),
			}
		}
		// Shorter arrays keep the default color entirely.
	}
	if rawBrightness, ok := data["brightness"]; ok {
		var v *float64
		if err := json.Unmarshal(rawBrightness, &v); err == nil && v != nil {
			cmd.Brightness = uint8(int64(*v))
		}
	}
	if rawSpeed, ok := data["speed"]; ok {
		var v *float64
		if err := json.Unmarshal(rawSpeed, &v); err == nil && v != nil {
			cmd.Speed = uint16(int64(*v))
		}
	}

	return cmd, nil
}

// Envelope is the outbound wire format, used by the sender side.
type Envelope struct {
	Type      string       `json:"type"`
	Data      EnvelopeData `json:"data"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// EnvelopeData carries the command fields inside an envelope. Optional
// fields are omitted so defaults resolve on the receiving node.
type EnvelopeData struct {
	Pattern    string  `json:"pattern"`
	Color      []uint8 `json:"color,omitempty"`
	Brightness *uint8  `json:"brightness,omitempty"`
	Speed      *uint16 `json:"speed,omitempty"`
}

// Encode serializes an envelope for transmission.
func Encode(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
