package periph

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

// DHT11 reads temperature and humidity over the single-wire protocol.
// Implements ports.ClimateSensor.
//
// The protocol is timing sensitive and a non-realtime kernel misses pulses
// regularly; a failed checksum comes back as an invalid sample, which the
// acquirer's bounded retry absorbs.
type DHT11 struct {
	pin gpio.PinIO
}

// NewDHT11 looks up the data pin by name (e.g. "GPIO4").
func NewDHT11(pinName string) (*DHT11, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", pinName)
	}
	return &DHT11{pin: pin}, nil
}

// Read performs one sensor transaction: an 18ms low start signal, then 40
// data bits encoded in high-pulse widths.
func (s *DHT11) Read(ctx context.Context) (ports.ClimateSample, error) {
	if ctx.Err() != nil {
		return ports.ClimateSample{}, ctx.Err()
	}

	if err := s.pin.Out(gpio.Low); err != nil {
		return ports.ClimateSample{}, fmt.Errorf("dht11 start signal: %w", err)
	}
	time.Sleep(18 * time.Millisecond)
	if err := s.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return ports.ClimateSample{}, fmt.Errorf("dht11 release bus: %w", err)
	}

	durations, ok := s.sampleHighPulses(42)
	if !ok || len(durations) < 40 {
		// Missed pulses: not a bus failure, just an unreadable frame.
		return ports.ClimateSample{}, nil
	}

	// Skip the sensor's response pulse, keep the last 40 data bits.
	bits := durations[len(durations)-40:]
	var data [5]byte
	for i, d := range bits {
		data[i/8] <<= 1
		// A high pulse near 70us is a one, near 26us a zero.
		if d > 48*time.Microsecond {
			data[i/8] |= 1
		}
	}

	checksum := data[0] + data[1] + data[2] + data[3]
	valid := checksum == data[4] && (data[0] != 0 || data[2] != 0)

	return ports.ClimateSample{
		Valid:       valid,
		Temperature: float64(data[2]) + float64(data[3])*0.1,
		Humidity:    float64(data[0]) + float64(data[1])*0.1,
	}, nil
}

// sampleHighPulses busy-polls the pin and measures the width of up to n high
// pulses. Returns false if the line stops toggling before the frame ends.
func (s *DHT11) sampleHighPulses(n int) ([]time.Duration, bool) {
	const pulseTimeout = 5 * time.Millisecond

	var pulses []time.Duration
	level := s.pin.Read()
	start := time.Now()
	highSince := time.Time{}

	for len(pulses) < n {
		next := s.pin.Read()
		if next == level {
			if time.Since(start) > pulseTimeout {
				// Frame over; whatever was collected is the result.
				return pulses, len(pulses) > 0
			}
			continue
		}
		level = next
		start = time.Now()
		if level == gpio.High {
			highSince = start
		} else if !highSince.IsZero() {
			pulses = append(pulses, start.Sub(highSince))
		}
	}
	return pulses, true
}
