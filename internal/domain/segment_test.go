package domain

import "testing"

func TestSegmentTemperature(t *testing.T) {
	tests := []struct {
		temperature float64
		want        string
	}{
		{temperature: 5.2, want: "5.2C"},
		{temperature: 0.0, want: "0.0C"},
		{temperature: 9.9, want: "9.9C"},
		{temperature: 25.4, want: "25C"},
		{temperature: 99.4, want: "99C"},
		{temperature: 150, want: "99C"},
		{temperature: -5.2, want: "-5.2"},
		{temperature: -15, want: "-15C"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := SegmentTemperature(tt.temperature); got != tt.want {
				t.Errorf("SegmentTemperature(%v) = %q, want %q", tt.temperature, got, tt.want)
			}
		})
	}
}

func TestSegmentHumidity(t *testing.T) {
	tests := []struct {
		humidity float64
		want     string
	}{
		{humidity: 5.2, want: "5.2%"},
		{humidity: 45.6, want: "46%"},
		{humidity: 99.2, want: "99%"},
		{humidity: 150, want: "99%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := SegmentHumidity(tt.humidity); got != tt.want {
				t.Errorf("SegmentHumidity(%v) = %q, want %q", tt.humidity, got, tt.want)
			}
		})
	}
}
