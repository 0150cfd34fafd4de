package ports_test

import (
	"errors"
	"testing"

	"github.com/quentinrf/greenhouse-monitor/internal/adapters/mock"
	"github.com/quentinrf/greenhouse-monitor/internal/domain"
	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

func newTestFanout() (*ports.Fanout, *mock.RecordingText, *mock.RecordingMatrix, *mock.RecordingSegment) {
	text := &mock.RecordingText{}
	matrix := &mock.RecordingMatrix{}
	segment := &mock.RecordingSegment{}
	fanout := ports.NewFanout(text, matrix, segment)
	fanout.Hold = 0
	return fanout, text, matrix, segment
}

func TestUpdate_RendersAllDevices(t *testing.T) {
	fanout, text, matrix, segment := newTestFanout()

	fanout.Update(domain.DisplayState{Temperature: 21.57, Humidity: 48.32, Brightness: 250})

	writes := text.Written()
	if len(writes) != 1 {
		t.Fatalf("expected 1 text write, got %d", len(writes))
	}
	if writes[0][0] != "Temp: 21.6C" || writes[0][1] != "Humidity: 48.3%" {
		t.Errorf("unexpected LCD lines: %v", writes[0])
	}

	draws := matrix.Drawn()
	if len(draws) != 1 || draws[0] != ports.SunBitmap {
		t.Errorf("expected one sun bitmap draw, got %v", draws)
	}

	prints := segment.Printed()
	if len(prints) != 2 || prints[0] != "22C" || prints[1] != "48%" {
		t.Errorf("expected sequential [22C 48%%], got %v", prints)
	}
}

func TestUpdateMatrix_ThresholdExact(t *testing.T) {
	tests := []struct {
		brightness int
		want       [8]byte
	}{
		{brightness: 99, want: ports.MoonBitmap},
		{brightness: 100, want: ports.SunBitmap},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			fanout, _, matrix, _ := newTestFanout()
			if err := fanout.UpdateMatrix(tt.brightness); err != nil {
				t.Fatalf("UpdateMatrix failed: %v", err)
			}
			if got := matrix.Drawn()[0]; got != tt.want {
				t.Errorf("wrong bitmap for brightness %d", tt.brightness)
			}
		})
	}
}

func TestUpdate_DeviceFailureIsIsolated(t *testing.T) {
	fanout, text, matrix, segment := newTestFanout()
	text.Err = errors.New("lcd i2c write failed")

	fanout.Update(domain.DisplayState{Temperature: 20, Humidity: 50, Brightness: 50})

	if len(matrix.Drawn()) != 1 {
		t.Error("matrix should still be updated when the LCD fails")
	}
	if len(segment.Printed()) != 2 {
		t.Error("segment display should still be updated when the LCD fails")
	}
}

func TestUpdate_AllDevicesFailingDoesNotPanic(t *testing.T) {
	fanout, text, matrix, segment := newTestFanout()
	text.Err = errors.New("down")
	matrix.Err = errors.New("down")
	segment.Err = errors.New("down")

	// Must neither panic nor propagate.
	fanout.Update(domain.DisplayState{Temperature: 20, Humidity: 50, Brightness: 500})
}
