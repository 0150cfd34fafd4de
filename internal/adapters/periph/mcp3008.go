package periph

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// MCP3008 reads the photoresistor divider on one channel of the 10-bit ADC.
// Implements ports.AnalogChannel.
type MCP3008 struct {
	port    spi.PortCloser
	conn    spi.Conn
	channel byte
	vref    float64
}

// NewMCP3008 opens the named SPI port ("" picks the first available) and
// selects a channel. vref is the ADC reference voltage, 3.3V on a Pi.
func NewMCP3008(portName string, channel byte, vref float64) (*MCP3008, error) {
	if channel > 7 {
		return nil, fmt.Errorf("mcp3008 channel %d out of range", channel)
	}
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}
	conn, err := port.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect mcp3008: %w", err)
	}
	return &MCP3008{port: port, conn: conn, channel: channel, vref: vref}, nil
}

// ReadVoltage performs one single-ended conversion.
func (s *MCP3008) ReadVoltage(ctx context.Context) (uint16, float64, error) {
	if ctx.Err() != nil {
		return 0, 0, ctx.Err()
	}

	// Start bit, single-ended mode + channel, one clocking byte.
	w := []byte{0x01, 0x80 | s.channel<<4, 0x00}
	r := make([]byte, 3)
	if err := s.conn.Tx(w, r); err != nil {
		return 0, 0, fmt.Errorf("mcp3008 read: %w", err)
	}

	raw := uint16(r[1]&0x03)<<8 | uint16(r[2])
	voltage := float64(raw) / 1023.0 * s.vref
	return raw, voltage, nil
}

// Close releases the port.
func (s *MCP3008) Close() error {
	return s.port.Close()
}
