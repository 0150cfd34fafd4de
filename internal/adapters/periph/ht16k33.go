package periph

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// DefaultSegmentAddr is the HT16K33 backpack address of the 7-segment display.
const DefaultSegmentAddr = 0x70

// HT16K33 commands.
const (
	segCmdOscillatorOn = 0x21
	segCmdDisplayOn    = 0x81
	segCmdBrightness   = 0xE0 // low nibble is the level, 0-15
)

// segmentFont maps printable characters to segment masks (dp g f e d c b a).
// '%' has no faithful rendering on seven segments; the degree-like upper
// circle is the closest glyph.
var segmentFont = map[byte]byte{
	'0': 0x3F, '1': 0x06, '2': 0x5B, '3': 0x4F, '4': 0x66,
	'5': 0x6D, '6': 0x7D, '7': 0x07, '8': 0x7F, '9': 0x6F,
	'-': 0x40, 'C': 0x39, '%': 0x63, ' ': 0x00,
}

// digitOffsets are the display RAM addresses of the four digits; address 4
// belongs to the colon and is skipped.
var digitOffsets = [4]byte{0x00, 0x02, 0x06, 0x08}

// Segment drives a 4-digit seven-segment display behind an HT16K33.
// Implements ports.SegmentDisplay.
type Segment struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// NewSegment opens the bus, starts the oscillator and turns the display on
// at medium brightness.
func NewSegment(busName string, addr uint16) (*Segment, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	d := &Segment{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}
	for _, cmd := range []byte{segCmdOscillatorOn, segCmdDisplayOn, segCmdBrightness | 0x07} {
		if err := d.dev.Tx([]byte{cmd}, nil); err != nil {
			bus.Close()
			return nil, fmt.Errorf("ht16k33 setup: %w", err)
		}
	}
	if err := d.Clear(); err != nil {
		bus.Close()
		return nil, err
	}
	return d, nil
}

// Clear blanks all digits.
func (d *Segment) Clear() error {
	// 16 bytes of display RAM starting at address 0.
	buf := make([]byte, 17)
	if err := d.dev.Tx(buf, nil); err != nil {
		return fmt.Errorf("ht16k33 clear: %w", err)
	}
	return nil
}

// Print renders up to four glyphs left-aligned. A '.' sets the decimal point
// of the preceding digit instead of consuming a position. Unknown characters
// render blank.
func (d *Segment) Print(s string) error {
	masks := make([]byte, 0, 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if len(masks) > 0 {
				masks[len(masks)-1] |= 0x80
			}
			continue
		}
		if len(masks) == 4 {
			break
		}
		masks = append(masks, segmentFont[c])
	}

	for pos, offset := range digitOffsets {
		var mask byte
		if pos < len(masks) {
			mask = masks[pos]
		}
		if err := d.dev.Tx([]byte{offset, mask}, nil); err != nil {
			return fmt.Errorf("ht16k33 digit %d: %w", pos, err)
		}
	}
	return nil
}

// Close blanks the display and releases the bus.
func (d *Segment) Close() error {
	_ = d.Clear()
	return d.bus.Close()
}
