package mock

import (
	"context"
	"math/rand"

	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

// FakeClimate simulates the digital climate sensor for development.
// This implements the ports.ClimateSensor interface.
type FakeClimate struct {
	baseTemperature float64
	baseHumidity    float64
	variation       float64
}

// NewFakeClimate creates a sensor that returns realistic values around the
// given base readings.
func NewFakeClimate(baseTemperature, baseHumidity, variation float64) *FakeClimate {
	return &FakeClimate{
		baseTemperature: baseTemperature,
		baseHumidity:    baseHumidity,
		variation:       variation,
	}
}

// Read returns a simulated, always-valid sample with some variance.
func (s *FakeClimate) Read(ctx context.Context) (ports.ClimateSample, error) {
	jitter := func(base float64) float64 {
		return base + (rand.Float64()-0.5)*2*s.variation
	}
	humidity := jitter(s.baseHumidity)
	if humidity < 0 {
		humidity = 0
	}
	if humidity > 100 {
		humidity = 100
	}
	return ports.ClimateSample{
		Valid:       true,
		Temperature: jitter(s.baseTemperature),
		Humidity:    humidity,
	}, nil
}

// ScriptedClimate replays a fixed sequence of samples, then repeats the last
// one. Used by the retry tests to control exactly which attempt succeeds.
type ScriptedClimate struct {
	Samples []ports.ClimateSample
	Errs    []error
	Reads   int
}

// Read returns the next scripted sample.
func (s *ScriptedClimate) Read(ctx context.Context) (ports.ClimateSample, error) {
	i := s.Reads
	s.Reads++
	if i >= len(s.Samples) {
		i = len(s.Samples) - 1
	}
	if i < 0 {
		return ports.ClimateSample{}, nil
	}
	var err error
	if i < len(s.Errs) {
		err = s.Errs[i]
	}
	return s.Samples[i], err
}
