package ports_test

import (
	"sync"
	"testing"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

// TestSharedDisplayState_NoTornReads hammers the shared state with one writer
// and two readers. Every write uses a consistent triple (humidity = temp+1,
// brightness = temp*10), so any reader observing a mismatched combination saw
// a torn write.
func TestSharedDisplayState_NoTornReads(t *testing.T) {
	shared := ports.NewSharedDisplayState()
	shared.Set(domain.DisplayState{Temperature: 0, Humidity: 1, Brightness: 0})

	const writes = 1000
	done := make(chan struct{})

	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				state := shared.Snapshot()
				if state.Humidity != state.Temperature+1 || state.Brightness != int(state.Temperature)*10 {
					t.Errorf("torn read: %+v", state)
					return
				}
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		shared.Set(domain.DisplayState{
			Temperature: float64(i),
			Humidity:    float64(i) + 1,
			Brightness:  i * 10,
		})
	}
	close(done)
	wg.Wait()

	final := shared.Snapshot()
	if final.Temperature != writes {
		t.Errorf("expected final temperature %d, got %v", writes, final.Temperature)
	}
}
