package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Acquisition defaults: the sensor protocol is a fixed-latency one-shot read,
// so a simple bounded poll with a fixed pause beats exponential backoff.
const (
	DefaultMaxAttempts  = 10
	DefaultRetryBackoff = 500 * time.Millisecond
)

// Default last-known-good values used before the first successful read.
const (
	DefaultTemperature = 20.0
	DefaultHumidity    = 50.0
)

// Acquirer resolves a valid (temperature, humidity) pair from a flaky climate
// sensor. Acquire never fails: when every attempt is exhausted it degrades to
// the last known good values, trading freshness for availability.
type Acquirer struct {
	sensor      ClimateSensor
	maxAttempts int
	backoff     time.Duration

	// last known good; mutated only on a successful read, read only on an
	// exhausted-retry fallback. Owned by the single acquisition loop.
	lastTemperature float64
	lastHumidity    float64
}

// NewAcquirer creates an acquirer with the given retry bounds.
func NewAcquirer(sensor ClimateSensor, maxAttempts int, backoff time.Duration) *Acquirer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Acquirer{
		sensor:          sensor,
		maxAttempts:     maxAttempts,
		backoff:         backoff,
		lastTemperature: DefaultTemperature,
		lastHumidity:    DefaultHumidity,
	}
}

// Acquire reads the sensor, retrying up to the attempt ceiling with a fixed
// pause between attempts. A dead sensor degrades to stale-but-plausible data
// rather than halting the pipeline.
func (a *Acquirer) Acquire(ctx context.Context) (temperature, humidity float64) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		sample, err := a.sensor.Read(ctx)
		if err == nil && sample.Valid {
			a.lastTemperature = sample.Temperature
			a.lastHumidity = sample.Humidity
			return sample.Temperature, sample.Humidity
		}

		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("climate sensor read failed")
		}

		if attempt < a.maxAttempts && !sleepCtx(ctx, a.backoff) {
			break
		}
	}

	log.Warn().
		Int("max_attempts", a.maxAttempts).
		Float64("temperature", a.lastTemperature).
		Float64("humidity", a.lastHumidity).
		Msg("no valid climate reading, falling back to last known good")

	return a.lastTemperature, a.lastHumidity
}

// sleepCtx pauses for d, returning false if the context was cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
