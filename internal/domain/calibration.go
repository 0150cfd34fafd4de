package domain

import "math"

// DefaultLux is reported when every brightness tier fails. Moderate indoor light.
const DefaultLux = 500

// DayThreshold separates the day and night matrix symbols. Observed values
// sit below 10 in the dark and below 300 under a flashlight.
const DayThreshold = 100

// LuxFromRaw converts the two raw bytes of a one-shot high-resolution light
// sensor read into lux, rounded to the nearest integer.
func LuxFromRaw(high, low byte) int {
	lux := (float64(low) + 256*float64(high)) / 1.2
	return int(math.Round(lux))
}

// VoltageToLux maps an analog channel voltage to lux. This piecewise mapping
// is a calibration approximation against the photoresistor divider, not a
// physical law.
func VoltageToLux(voltage float64) int {
	switch {
	case voltage < 0.1:
		return 0 // effectively dark
	case voltage < 1.0:
		return int(voltage * 1000) // dim light
	default:
		return int(voltage * 2000) // bright light
	}
}

// IsDay reports whether a brightness value selects the day symbol.
func IsDay(brightness int) bool {
	return brightness >= DayThreshold
}
