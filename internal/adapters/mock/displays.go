package mock

import "sync"

// Recording display doubles. Each records every call so tests can assert on
// exactly what the fan-out rendered, and each can be told to fail.

// RecordingText implements ports.TextDisplay.
type RecordingText struct {
	mu     sync.Mutex
	Err    error
	Writes [][]string
	Clears int
}

func (d *RecordingText) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Clears++
	return nil
}

func (d *RecordingText) WriteLines(lines ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Writes = append(d.Writes, lines)
	return nil
}

// Written returns a copy of all recorded writes.
func (d *RecordingText) Written() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]string, len(d.Writes))
	copy(out, d.Writes)
	return out
}

// RecordingMatrix implements ports.MatrixDisplay.
type RecordingMatrix struct {
	mu    sync.Mutex
	Err   error
	Draws [][8]byte
}

func (d *RecordingMatrix) DrawBitmap(bitmap [8]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Draws = append(d.Draws, bitmap)
	return nil
}

// Drawn returns a copy of all recorded draws.
func (d *RecordingMatrix) Drawn() [][8]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][8]byte, len(d.Draws))
	copy(out, d.Draws)
	return out
}

// RecordingSegment implements ports.SegmentDisplay.
type RecordingSegment struct {
	mu     sync.Mutex
	Err    error
	Prints []string
	Clears int
}

func (d *RecordingSegment) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Clears++
	return nil
}

func (d *RecordingSegment) Print(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Prints = append(d.Prints, s)
	return nil
}

// Printed returns a copy of all recorded prints.
func (d *RecordingSegment) Printed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.Prints))
	copy(out, d.Prints)
	return out
}
