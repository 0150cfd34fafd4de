package domain

import "testing"

func TestVoltageToLux_Boundaries(t *testing.T) {
	tests := []struct {
		voltage float64
		want    int
	}{
		{voltage: 0.0, want: 0},
		{voltage: 0.099, want: 0},
		{voltage: 0.1, want: 100},
		{voltage: 0.5, want: 500},
		{voltage: 0.999, want: 999},
		{voltage: 1.0, want: 2000},
		{voltage: 1.65, want: 3300},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := VoltageToLux(tt.voltage); got != tt.want {
				t.Errorf("VoltageToLux(%v) = %v, want %v", tt.voltage, got, tt.want)
			}
		})
	}
}

func TestVoltageToLux_Monotonic(t *testing.T) {
	prev := VoltageToLux(0)
	for v := 0.01; v <= 3.3; v += 0.01 {
		cur := VoltageToLux(v)
		if cur < prev {
			t.Fatalf("mapping not monotonic at %.2fV: %d < %d", v, cur, prev)
		}
		prev = cur
	}
}

func TestLuxFromRaw(t *testing.T) {
	tests := []struct {
		high, low byte
		want      int
	}{
		{high: 0, low: 0, want: 0},
		{high: 0, low: 120, want: 100},  // 120 / 1.2
		{high: 1, low: 0, want: 213},    // 256 / 1.2 rounded
		{high: 255, low: 255, want: 54613},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := LuxFromRaw(tt.high, tt.low); got != tt.want {
				t.Errorf("LuxFromRaw(%d, %d) = %v, want %v", tt.high, tt.low, got, tt.want)
			}
		})
	}
}

func TestIsDay_ThresholdExact(t *testing.T) {
	if IsDay(99) {
		t.Error("brightness 99 should be night")
	}
	if !IsDay(100) {
		t.Error("brightness 100 should be day")
	}
}
