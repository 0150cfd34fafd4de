package domain

// Reading is one complete measurement cycle result.
// This is pure domain logic - no database, no HTTP, just business concepts.
// A Reading is immutable once constructed; the store and the display fan-out
// each get a read-only view.
type Reading struct {
	Timestamp   string // "2006-01-02 15:04:05" in the resolved timezone
	Temperature float64
	Humidity    float64
	Brightness  int // lux
}

// NewReading creates a reading with validation.
func NewReading(timestamp string, temperature, humidity float64, brightness int) (Reading, error) {
	// Business rules: humidity is a percentage, brightness cannot be negative.
	if humidity < 0 || humidity > 100 {
		return Reading{}, ErrInvalidReading
	}
	if brightness < 0 {
		return Reading{}, ErrInvalidReading
	}

	return Reading{
		Timestamp:   timestamp,
		Temperature: temperature,
		Humidity:    humidity,
		Brightness:  brightness,
	}, nil
}

// Record is a persisted measurement row. Brightness is a pointer because
// rows written before the brightness column migration carry no value.
type Record struct {
	ID          int64    `json:"id"`
	Timestamp   string   `json:"timestamp"`
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	Brightness  *int     `json:"brightness,omitempty"`
}

// DisplayState is the triple shared between the acquisition loop and the
// background display-refresh jobs. It travels by value; the mutex lives in
// ports.SharedDisplayState.
type DisplayState struct {
	Temperature float64
	Humidity    float64
	Brightness  int
}
