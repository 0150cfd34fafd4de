package periph

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// MAX7219 registers.
const (
	maxRegDecodeMode  = 0x09
	maxRegIntensity   = 0x0A
	maxRegScanLimit   = 0x0B
	maxRegShutdown    = 0x0C
	maxRegDisplayTest = 0x0F
)

// Matrix drives a single 8x8 LED matrix behind a MAX7219 over SPI.
// Implements ports.MatrixDisplay.
type Matrix struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewMatrix opens the named SPI port and brings the driver out of shutdown
// with all rows enabled.
func NewMatrix(portName string) (*Matrix, error) {
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}
	conn, err := port.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect max7219: %w", err)
	}
	m := &Matrix{port: port, conn: conn}

	setup := [][2]byte{
		{maxRegDisplayTest, 0x00},
		{maxRegDecodeMode, 0x00}, // raw pixel rows, no BCD decode
		{maxRegScanLimit, 0x07},  // all 8 rows
		{maxRegIntensity, 0x04},
		{maxRegShutdown, 0x01}, // normal operation
	}
	for _, s := range setup {
		if err := m.writeReg(s[0], s[1]); err != nil {
			port.Close()
			return nil, fmt.Errorf("max7219 setup: %w", err)
		}
	}
	if err := m.DrawBitmap([8]byte{}); err != nil {
		port.Close()
		return nil, err
	}
	return m, nil
}

func (m *Matrix) writeReg(reg, value byte) error {
	return m.conn.Tx([]byte{reg, value}, nil)
}

// DrawBitmap writes one byte per row into the digit registers. The pattern
// stays lit until the next draw.
func (m *Matrix) DrawBitmap(bitmap [8]byte) error {
	for row, bits := range bitmap {
		if err := m.writeReg(byte(row+1), bits); err != nil {
			return fmt.Errorf("max7219 row %d: %w", row, err)
		}
	}
	return nil
}

// Close blanks the matrix, puts the driver in shutdown and releases the port.
func (m *Matrix) Close() error {
	_ = m.DrawBitmap([8]byte{})
	_ = m.writeReg(maxRegShutdown, 0x00)
	return m.port.Close()
}
