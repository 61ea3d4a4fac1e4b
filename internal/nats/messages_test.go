package nats

import "testing"

func TestSubjects(t *testing.T) {
	if got := SubjectNodeCommand("drone1"); got != "lednode.nodes.drone1.command" {
		t.Errorf("SubjectNodeCommand = %q", got)
	}
	if got := SubjectNodeStatus("drone1"); got != "lednode.nodes.drone1.status" {
		t.Errorf("SubjectNodeStatus = %q", got)
	}
}

func TestStatusMessageRoundTrip(t *testing.T) {
	msg := StatusMessage{
		NodeID:    "drone1",
		Timestamp: "2025-01-27T10:30:00Z",
		Pattern:   "FLYING",
		Connected: true,
		Received:  42,
	}

	data, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := UnmarshalStatus(data)
	if err != nil {
		t.Fatalf("UnmarshalStatus failed: %v", err)
	}
	if got != msg {
		t.Errorf("round trip = %+v, want %+v", got, msg)
	}
}

func TestClientOfflineDegradation(t *testing.T) {
	client := NewNodeClient("nats://127.0.0.1:1", "drone1", nil)

	if err := client.Connect(); err == nil {
		t.Error("Connect succeeded against a dead broker")
	}
	if client.IsConnected() {
		t.Error("IsConnected = true without a broker")
	}

	// Publishing while offline must be a silent no-op.
	client.PublishStatus(StatusMessage{NodeID: "drone1"})
	client.Close()
}
