package ports

import "context"

// ClimateSample is one raw read from the digital climate sensor. The sensor
// protocol is a fixed-latency one-shot read that frequently reports invalid;
// validity is part of the sample, not an error.
type ClimateSample struct {
	Valid       bool
	Temperature float64
	Humidity    float64
}

// ClimateSensor defines how to read temperature and humidity.
// This is a PORT - adapters (GPIO, Mock) will implement it.
type ClimateSensor interface {
	// Read performs one sensor read. An error means the bus itself failed;
	// a checksum miss comes back as a sample with Valid=false.
	Read(ctx context.Context) (ClimateSample, error)
}

// LightSensor reads ambient brightness from the digital light sensor.
// Used as tier 1 of brightness resolution.
type LightSensor interface {
	// ReadLux returns current light level in lux.
	ReadLux(ctx context.Context) (int, error)
}

// AnalogChannel reads the photoresistor divider behind the ADC.
// Used as tier 2 of brightness resolution.
type AnalogChannel interface {
	// ReadVoltage returns the raw conversion value and the scaled voltage.
	ReadVoltage(ctx context.Context) (raw uint16, voltage float64, err error)
}

// TimeSource resolves a trustworthy formatted local timestamp.
type TimeSource interface {
	// Resolve returns a "2006-01-02 15:04:05" timestamp in the resolved
	// timezone, or an error wrapping domain.ErrNoTimestamp when the time
	// service is unreachable. Callers must not persist on error.
	Resolve(ctx context.Context) (string, error)
}
