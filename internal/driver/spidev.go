package driver

import (
	"fmt"
	"os"

	"github.com/smazurov/lednode/internal/pattern"
)

// WS281x strips sample the data line at fixed intervals, so each LED
// bit is stretched into 3 SPI bits at 2.4 MHz: 0b100 for zero, 0b110
// for one. The strip latches after the line idles low for >50us.
const (
	spiBitZero = 0b100
	spiBitOne  = 0b110

	// 27 zero bytes at 2.4 MHz is roughly 90us of idle line.
	latchBytes = 27
)

// Spidev drives a WS281x strip through the kernel spidev interface.
// The device must be configured for 2.4 MHz via the spi-max-frequency
// device tree property.
// TODO: set the clock with SPI_IOC_WR_MAX_SPEED_HZ instead of relying
// on the device tree default.
type Spidev struct {
	file   *os.File
	buf    []byte
	pixels int
}

// NewSpidev opens the SPI device, e.g. /dev/spidev0.0.
func NewSpidev(device string) (*Spidev, error) {
	file, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening SPI device %s: %w", device, err)
	}
	return &Spidev{file: file}, nil
}

// Render encodes the frame as WS281x SPI bits and writes it out.
func (s *Spidev) Render(frame []pattern.RGB) error {
	needed := len(frame)*9 + latchBytes
	if cap(s.buf) < needed {
		s.buf = make([]byte, 0, needed)
	}
	buf := s.buf[:0]
	s.pixels = len(frame)

	for _, px := range frame {
		// WS281x wire order is GRB.
		buf = appendExpanded(buf, px.G)
		buf = appendExpanded(buf, px.R)
		buf = appendExpanded(buf, px.B)
	}
	for range latchBytes {
		buf = append(buf, 0)
	}
	s.buf = buf

	if _, err := s.file.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close blanks the strip and closes the device. Without the blanking
// write the strip would keep showing the last frame after shutdown.
func (s *Spidev) Close() error {
	if s.pixels > 0 {
		_ = s.Render(make([]pattern.RGB, s.pixels))
	}
	return s.file.Close()
}

// appendExpanded stretches one LED byte into 24 SPI bits (3 bytes).
func appendExpanded(buf []byte, b byte) []byte {
	var bits uint32
	for i := 7; i >= 0; i-- {
		bits <<= 3
		if b&(1<<uint(i)) != 0 {
			bits |= spiBitOne
		} else {
			bits |= spiBitZero
		}
	}
	return append(buf, byte(bits>>16), byte(bits>>8), byte(bits))
}
