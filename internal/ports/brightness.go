package ports

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// BrightnessResolver resolves ambient brightness from a primary/fallback
// sensor pair. Resolve never fails: tier errors are internal control flow
// between tier attempts, and a double failure degrades to the documented
// default.
type BrightnessResolver struct {
	primary    LightSensor   // tier 1: digital light sensor
	fallback   AnalogChannel // tier 2: photoresistor behind the ADC
	defaultLux int
}

// NewBrightnessResolver creates a resolver. Either sensor may be nil; a nil
// tier fails over to the next.
func NewBrightnessResolver(primary LightSensor, fallback AnalogChannel) *BrightnessResolver {
	return &BrightnessResolver{
		primary:    primary,
		fallback:   fallback,
		defaultLux: domain.DefaultLux,
	}
}

// Resolve returns the ambient brightness in lux.
func (r *BrightnessResolver) Resolve(ctx context.Context) int {
	lux, err := r.resolveDigital(ctx)
	if err == nil {
		log.Debug().Int("lux", lux).Msg("brightness from digital sensor")
		return lux
	}
	log.Warn().Err(err).Msg("digital light sensor failed, trying analog channel")

	lux, err = r.resolveAnalog(ctx)
	if err == nil {
		return lux
	}
	log.Error().Err(err).Int("default_lux", r.defaultLux).Msg("all brightness tiers failed, using default")

	return r.defaultLux
}

func (r *BrightnessResolver) resolveDigital(ctx context.Context) (int, error) {
	if r.primary == nil {
		return 0, fmt.Errorf("%w: no digital sensor configured", domain.ErrTierFailed)
	}
	lux, err := r.primary.ReadLux(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTierFailed, err)
	}
	return lux, nil
}

func (r *BrightnessResolver) resolveAnalog(ctx context.Context) (int, error) {
	if r.fallback == nil {
		return 0, fmt.Errorf("%w: no analog channel configured", domain.ErrTierFailed)
	}
	raw, voltage, err := r.fallback.ReadVoltage(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTierFailed, err)
	}
	lux := domain.VoltageToLux(voltage)
	log.Debug().
		Uint16("raw", raw).
		Float64("voltage", voltage).
		Int("lux", lux).
		Msg("brightness from analog channel")
	return lux, nil
}
