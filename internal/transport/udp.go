// Package transport delivers raw command payloads from the network to
// the ingestion point. It knows nothing about payload contents beyond
// the size limit.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/smazurov/lednode/internal/wire"
)

// Handler receives each datagram payload. It runs on the listener's
// read goroutine, so it must not block on rendering.
type Handler func(payload []byte)

// UDPListener receives command datagrams. Oversize packets are dropped
// before they reach the handler.
type UDPListener struct {
	logger  *slog.Logger
	addr    string
	handler Handler

	conn     *net.UDPConn
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewUDPListener creates a listener for addr, e.g. ":8266".
func NewUDPListener(addr string, handler Handler) *UDPListener {
	return &UDPListener{
		logger:  slog.With("component", "udp_listener", "addr", addr),
		addr:    addr,
		handler: handler,
	}
}

// Start binds the socket and begins reading datagrams.
func (l *UDPListener) Start(ctx context.Context) error {
	udpAddr, err := net.ResolveUDPAddr("udp", l.addr)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", l.addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}
	l.conn = conn

	ctx, l.cancel = context.WithCancel(ctx)
	go l.readLoop(ctx)
	l.logger.Info("UDP listener started")
	return nil
}

// Stop closes the socket and ends the read loop.
func (l *UDPListener) Stop() error {
	var err error
	l.stopOnce.Do(func() {
		if l.cancel != nil {
			l.cancel()
		}
		if l.conn != nil {
			err = l.conn.Close()
		}
	})
	return err
}

func (l *UDPListener) readLoop(ctx context.Context) {
	// One extra byte so oversize packets are detectable rather than
	// silently truncated to the limit.
	buf := make([]byte, wire.MaxPayloadSize+1)
	for {
		n, remote, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.logger.Warn("UDP read failed", "error", err)
			continue
		}

		if n > wire.MaxPayloadSize {
			l.logger.Warn("Dropping oversize datagram", "size", n, "limit", wire.MaxPayloadSize, "remote", remote)
			continue
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		l.handler(payload)
	}
}

// Send transmits one command payload to addr. Used by the CLI sender.
func Send(addr string, payload []byte) error {
	if len(payload) > wire.MaxPayloadSize {
		return fmt.Errorf("payload %d bytes exceeds limit %d", len(payload), wire.MaxPayloadSize)
	}
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("sending payload: %w", err)
	}
	return nil
}
