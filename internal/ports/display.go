package ports

// Display ports. Each output device is a separate capability so that a
// missing or broken device can be swapped for an inert placeholder at
// construction time - call sites never branch on availability.

// TextDisplay is the 16x2 character LCD.
type TextDisplay interface {
	Clear() error
	// WriteLines clears and writes one line per argument, top to bottom.
	WriteLines(lines ...string) error
}

// MatrixDisplay is the 8x8 LED matrix. A drawn bitmap persists on the device
// until the next draw.
type MatrixDisplay interface {
	// DrawBitmap lights the pixels of an 8x8 pattern, one byte per row,
	// most significant bit leftmost.
	DrawBitmap(bitmap [8]byte) error
}

// SegmentDisplay is the 4-digit seven-segment display.
type SegmentDisplay interface {
	Clear() error
	Print(s string) error
}
