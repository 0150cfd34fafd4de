// Package noop provides inert display placeholders. When a physical device
// fails to initialize, the wiring substitutes one of these so the pipeline
// never branches on device availability at the call site.
package noop

import "github.com/rs/zerolog/log"

// Text is an absent LCD.
type Text struct{}

func (Text) Clear() error {
	return nil
}

func (Text) WriteLines(lines ...string) error {
	log.Warn().Strs("lines", lines).Msg("text display not available, skipping")
	return nil
}

// Matrix is an absent LED matrix.
type Matrix struct{}

func (Matrix) DrawBitmap(bitmap [8]byte) error {
	log.Warn().Msg("matrix display not available, skipping symbol")
	return nil
}

// Segment is an absent seven-segment display.
type Segment struct{}

func (Segment) Clear() error {
	return nil
}

func (Segment) Print(s string) error {
	log.Warn().Str("value", s).Msg("segment display not available, skipping")
	return nil
}
