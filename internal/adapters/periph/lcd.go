package periph

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// DefaultLCDAddr is the PCF8574 backpack address of the 16x2 LCD.
const DefaultLCDAddr = 0x21

// PCF8574 backpack bit layout.
const (
	lcdBacklight = 0x08
	lcdEnable    = 0x04
	lcdRegSelect = 0x01
)

// HD44780 commands.
const (
	lcdCmdClear      = 0x01
	lcdCmdEntryMode  = 0x06 // increment, no shift
	lcdCmdDisplayOn  = 0x0C // display on, cursor off
	lcdCmdFunction4b = 0x28 // 4-bit, 2 lines, 5x8 font
)

// LCD drives a 16x2 HD44780 character display behind a PCF8574 I2C backpack.
// Implements ports.TextDisplay.
type LCD struct {
	bus     i2c.BusCloser
	dev     *i2c.Dev
	columns int
	rows    int
}

// NewLCD opens the bus and runs the 4-bit initialization sequence, leaving
// the backlight on.
func NewLCD(busName string, addr uint16, columns, rows int) (*LCD, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	d := &LCD{
		bus:     bus,
		dev:     &i2c.Dev{Bus: bus, Addr: addr},
		columns: columns,
		rows:    rows,
	}
	if err := d.init(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("lcd init: %w", err)
	}
	return d, nil
}

func (d *LCD) init() error {
	// Reset into 4-bit mode per the HD44780 datasheet.
	time.Sleep(50 * time.Millisecond)
	for _, nibble := range []byte{0x30, 0x30, 0x30, 0x20} {
		if err := d.pulse(nibble); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}
	for _, cmd := range []byte{lcdCmdFunction4b, lcdCmdDisplayOn, lcdCmdEntryMode, lcdCmdClear} {
		if err := d.command(cmd); err != nil {
			return err
		}
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// pulse latches the high nibble of b with an enable strobe.
func (d *LCD) pulse(b byte) error {
	b |= lcdBacklight
	if err := d.dev.Tx([]byte{b | lcdEnable}, nil); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	return d.dev.Tx([]byte{b &^ lcdEnable}, nil)
}

func (d *LCD) write(b byte, mode byte) error {
	if err := d.pulse(b&0xF0 | mode); err != nil {
		return err
	}
	return d.pulse(b<<4 | mode)
}

func (d *LCD) command(cmd byte) error {
	return d.write(cmd, 0)
}

func (d *LCD) data(b byte) error {
	return d.write(b, lcdRegSelect)
}

// Clear blanks the display.
func (d *LCD) Clear() error {
	if err := d.command(lcdCmdClear); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// WriteLines clears and writes one line per argument, truncated to the
// display width.
func (d *LCD) WriteLines(lines ...string) error {
	if err := d.Clear(); err != nil {
		return err
	}
	rowAddr := []byte{0x00, 0x40, 0x14, 0x54}
	for row, line := range lines {
		if row >= d.rows {
			break
		}
		if err := d.command(0x80 | rowAddr[row]); err != nil {
			return err
		}
		if len(line) > d.columns {
			line = line[:d.columns]
		}
		for _, c := range []byte(line) {
			if err := d.data(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close blanks the display and releases the bus.
func (d *LCD) Close() error {
	_ = d.Clear()
	return d.bus.Close()
}
