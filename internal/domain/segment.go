package domain

import "fmt"

// Seven-segment formatting. The device has four digits, so temperature and
// humidity are shown one after the other and the precision depends on how
// many digits the value needs.

// SegmentTemperature formats a temperature for the seven-segment display.
func SegmentTemperature(temperature float64) string {
	switch {
	case temperature < 0 && temperature > -10:
		// Negative single digit: the sign costs the suffix glyph.
		return fmt.Sprintf("%.1f", temperature)
	case temperature >= 0 && temperature < 10:
		return fmt.Sprintf("%.1fC", temperature)
	case temperature < 100:
		return fmt.Sprintf("%.0fC", temperature)
	default:
		return "99C" // max displayable
	}
}

// SegmentHumidity formats a relative humidity for the seven-segment display.
func SegmentHumidity(humidity float64) string {
	switch {
	case humidity < 10:
		return fmt.Sprintf("%.1f%%", humidity)
	case humidity < 100:
		return fmt.Sprintf("%.0f%%", humidity)
	default:
		return "99%" // max displayable
	}
}
