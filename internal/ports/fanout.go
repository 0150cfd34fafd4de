package ports

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// SunBitmap and MoonBitmap are the two 8x8 day/night symbols. One byte per
// row, most significant bit leftmost.
var (
	SunBitmap = [8]byte{
		0b00111100,
		0b01111110,
		0b11111111,
		0b11111111,
		0b11111111,
		0b01111110,
		0b00111100,
		0b00000000,
	}

	MoonBitmap = [8]byte{
		0b00111100,
		0b01111110,
		0b01110000,
		0b01100000,
		0b01100000,
		0b01110000,
		0b01111110,
		0b00111100,
	}
)

// DefaultSegmentHold is how long the seven-segment display shows the
// temperature before switching to humidity.
const DefaultSegmentHold = 1 * time.Second

// Fanout renders a reading to the three output devices. Update never fails
// as a whole: each device update is isolated, so one device's error cannot
// prevent the remaining devices from being attempted.
type Fanout struct {
	text    TextDisplay
	matrix  MatrixDisplay
	segment SegmentDisplay

	// Hold is how long the segment display shows temperature before
	// switching to humidity.
	Hold time.Duration
}

// NewFanout creates a fan-out over the given devices. Devices must not be
// nil; substitute inert placeholders for missing hardware.
func NewFanout(text TextDisplay, matrix MatrixDisplay, segment SegmentDisplay) *Fanout {
	return &Fanout{
		text:    text,
		matrix:  matrix,
		segment: segment,
		Hold:    DefaultSegmentHold,
	}
}

// Update renders the reading on every device, logging and swallowing
// per-device errors.
func (f *Fanout) Update(state domain.DisplayState) {
	if err := f.UpdateText(state.Temperature, state.Humidity); err != nil {
		log.Error().Err(err).Msg("text display update failed")
	}
	if err := f.UpdateMatrix(state.Brightness); err != nil {
		log.Error().Err(err).Msg("matrix display update failed")
	}
	if err := f.UpdateSegment(state.Temperature, state.Humidity); err != nil {
		log.Error().Err(err).Msg("segment display update failed")
	}
}

// UpdateText writes the temperature and humidity lines to the LCD.
func (f *Fanout) UpdateText(temperature, humidity float64) error {
	return f.text.WriteLines(
		fmt.Sprintf("Temp: %.1fC", temperature),
		fmt.Sprintf("Humidity: %.1f%%", humidity),
	)
}

// UpdateMatrix draws the day or night symbol. The symbol persists on the
// device until the next draw.
func (f *Fanout) UpdateMatrix(brightness int) error {
	symbol := MoonBitmap
	if domain.IsDay(brightness) {
		symbol = SunBitmap
	}
	if err := f.matrix.DrawBitmap(symbol); err != nil {
		return err
	}
	log.Debug().Bool("day", domain.IsDay(brightness)).Int("brightness", brightness).Msg("matrix symbol drawn")
	return nil
}

// UpdateSegment shows temperature then humidity sequentially; the device has
// too few digits for both at once.
func (f *Fanout) UpdateSegment(temperature, humidity float64) error {
	if err := f.segment.Clear(); err != nil {
		return err
	}
	if err := f.segment.Print(domain.SegmentTemperature(temperature)); err != nil {
		return err
	}

	time.Sleep(f.Hold)

	if err := f.segment.Clear(); err != nil {
		return err
	}
	return f.segment.Print(domain.SegmentHumidity(humidity))
}
