package mock

import (
	"context"
	"math/rand"
)

// FakeLight simulates the digital light sensor.
type FakeLight struct {
	Lux       int
	Variation int
	Err       error
}

// NewFakeLight creates a sensor around the given base lux.
func NewFakeLight(lux, variation int) *FakeLight {
	return &FakeLight{Lux: lux, Variation: variation}
}

// ReadLux returns the configured lux (with variance) or the configured error.
func (s *FakeLight) ReadLux(ctx context.Context) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	lux := s.Lux
	if s.Variation > 0 {
		lux += rand.Intn(2*s.Variation) - s.Variation
	}
	if lux < 0 {
		lux = 0
	}
	return lux, nil
}

// FakeAnalog simulates the photoresistor channel behind the ADC.
type FakeAnalog struct {
	Raw     uint16
	Voltage float64
	Err     error
}

// ReadVoltage returns the configured conversion or the configured error.
func (s *FakeAnalog) ReadVoltage(ctx context.Context) (uint16, float64, error) {
	if s.Err != nil {
		return 0, 0, s.Err
	}
	return s.Raw, s.Voltage, nil
}
