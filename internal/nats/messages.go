package nats

import (
	"encoding/json"
	"fmt"
)

// Subject prefix for NATS topics.
const SubjectNodesPrefix = "lednode.nodes"

// SubjectNodeCommand returns the NATS subject a node listens on for
// command payloads. Payloads use the same wire envelope as UDP.
func SubjectNodeCommand(nodeID string) string {
	return fmt.Sprintf("%s.%s.command", SubjectNodesPrefix, nodeID)
}

// SubjectNodeStatus returns the NATS subject a node publishes status
// snapshots to.
func SubjectNodeStatus(nodeID string) string {
	return fmt.Sprintf("%s.%s.status", SubjectNodesPrefix, nodeID)
}

// StatusMessage represents a node status snapshot sent over NATS.
type StatusMessage struct {
	NodeID      string `json:"node_id"`
	Timestamp   string `json:"timestamp"`
	Pattern     string `json:"pattern"`
	Connected   bool   `json:"connected"`
	Received    uint64 `json:"received"`
	LastReceive string `json:"last_receive,omitempty"`
}

// Marshal serializes the message to JSON.
func (m StatusMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStatus deserializes a StatusMessage from JSON.
func UnmarshalStatus(data []byte) (StatusMessage, error) {
	var m StatusMessage
	err := json.Unmarshal(data, &m)
	return m, err
}
