// Package nats provides an alternative command ingestion path and
// status publishing over a NATS broker. The node works fully without
// it; everything here degrades gracefully when the broker is away.
package nats

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// IngestFunc receives raw command payloads, the same bytes that would
// arrive in a UDP datagram.
type IngestFunc func(payload []byte)

// NodeClient is a NATS client for one LED node. It subscribes to the
// node's command subject and publishes status snapshots.
type NodeClient struct {
	url    string
	nodeID string
	logger *slog.Logger
	ingest IngestFunc

	mu        sync.RWMutex
	conn      *nats.Conn
	sub       *nats.Subscription
	connected bool
}

// NewNodeClient creates a NATS client for the given node.
func NewNodeClient(url, nodeID string, ingest IngestFunc) *NodeClient {
	return &NodeClient{
		url:    url,
		nodeID: nodeID,
		logger: slog.With("component", "nats-client", "node_id", nodeID),
		ingest: ingest,
	}
}

// Connect establishes a connection to the NATS server.
// Returns the error for logging, but the caller may keep running
// without NATS (graceful degradation).
func (c *NodeClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := []nats.Option{
		nats.Name("lednode-" + c.nodeID),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1), // Infinite reconnects
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			if err != nil {
				c.logger.Warn("NATS disconnected", "error", err)
			} else {
				c.logger.Debug("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			c.mu.Lock()
			c.connected = true
			// Resubscribe to commands after reconnect
			c.subscribeCommandsLocked()
			c.mu.Unlock()
			c.logger.Info("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(c.url, opts...)
	if err != nil {
		c.logger.Warn("Failed to connect to NATS, running in offline mode", "error", err)
		return err
	}

	c.conn = conn
	c.connected = true
	c.logger.Info("Connected to NATS", "url", c.url)

	c.subscribeCommandsLocked()
	return nil
}

// subscribeCommandsLocked subscribes to command payloads (must hold lock).
func (c *NodeClient) subscribeCommandsLocked() {
	if c.conn == nil || c.ingest == nil {
		return
	}

	subject := SubjectNodeCommand(c.nodeID)
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		c.ingest(msg.Data)
	})
	if err != nil {
		c.logger.Warn("Failed to subscribe to command subject", "subject", subject, "error", err)
		return
	}

	if c.sub != nil {
		_ = c.sub.Unsubscribe()
	}
	c.sub = sub
}

// PublishStatus publishes a status snapshot.
// No-op if not connected (graceful degradation).
func (c *NodeClient) PublishStatus(m StatusMessage) {
	c.mu.RLock()
	conn := c.conn
	connected := c.connected
	c.mu.RUnlock()

	if conn == nil || !connected {
		return
	}

	data, err := m.Marshal()
	if err != nil {
		c.logger.Warn("Failed to marshal status", "error", err)
		return
	}

	if err := conn.Publish(SubjectNodeStatus(c.nodeID), data); err != nil {
		c.logger.Warn("Failed to publish status", "error", err)
	}
}

// IsConnected returns true if connected to NATS.
func (c *NodeClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.conn != nil
}

// Close closes the NATS connection.
func (c *NodeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		_ = c.sub.Unsubscribe()
		c.sub = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
	c.logger.Debug("NATS client closed")
}
