package ports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quentinrf/greenhouse-monitor/internal/adapters/mock"
	"github.com/quentinrf/greenhouse-monitor/internal/domain"
	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

var errBus = errors.New("bus error")

func TestResolve_PrefersDigitalSensor(t *testing.T) {
	resolver := ports.NewBrightnessResolver(
		mock.NewFakeLight(420, 0),
		&mock.FakeAnalog{Voltage: 2.0},
	)

	if got := resolver.Resolve(context.Background()); got != 420 {
		t.Errorf("Resolve() = %v, want 420 from the digital sensor", got)
	}
}

func TestResolve_FallsBackToAnalog(t *testing.T) {
	tests := []struct {
		name    string
		voltage float64
		want    int
	}{
		{name: "dark", voltage: 0.05, want: 0},
		{name: "dim", voltage: 0.5, want: 500},
		{name: "bright", voltage: 1.5, want: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := ports.NewBrightnessResolver(
				&mock.FakeLight{Err: errBus},
				&mock.FakeAnalog{Voltage: tt.voltage},
			)

			if got := resolver.Resolve(context.Background()); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_BothTiersFailUsesDefault(t *testing.T) {
	resolver := ports.NewBrightnessResolver(
		&mock.FakeLight{Err: errBus},
		&mock.FakeAnalog{Err: errBus},
	)

	if got := resolver.Resolve(context.Background()); got != domain.DefaultLux {
		t.Errorf("Resolve() = %v, want default %v", got, domain.DefaultLux)
	}
}

func TestResolve_NilSensorsUseDefault(t *testing.T) {
	resolver := ports.NewBrightnessResolver(nil, nil)

	if got := resolver.Resolve(context.Background()); got != domain.DefaultLux {
		t.Errorf("Resolve() = %v, want default %v", got, domain.DefaultLux)
	}
}
