// Package scheduler runs the background display-refresh jobs. In continuous
// mode the devices repaint from the shared state on their own cadence instead
// of waiting for the next measurement cycle.
package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
	"github.com/quentinrf/greenhouse-monitor/internal/ports"
)

// Default refresh cadences. The segment display runs twice as fast because it
// alternates between two values and should show each within one text refresh.
const (
	DefaultTextEvery    = 5 * time.Second
	DefaultSegmentEvery = 2500 * time.Millisecond
)

// Refresher repaints the displays from the shared state. It only ever reads
// the state; the acquisition loop remains the sole writer.
type Refresher struct {
	scheduler *gocron.Scheduler
	fanout    *ports.Fanout
	segment   ports.SegmentDisplay
	shared    *ports.SharedDisplayState

	// TextEvery and SegmentEvery may be shortened for tests before Start.
	TextEvery    time.Duration
	SegmentEvery time.Duration

	// ticks drives the temperature/humidity alternation on the segment
	// display. Atomic because gocron may fire overlapping runs.
	ticks atomic.Int64
}

// NewRefresher creates the refresher over the given devices and shared state.
// The segment display is driven directly rather than through the fan-out: the
// fan-out shows both values back to back, while the refresher shows one per
// tick.
func NewRefresher(fanout *ports.Fanout, segment ports.SegmentDisplay, shared *ports.SharedDisplayState) *Refresher {
	return &Refresher{
		scheduler:    gocron.NewScheduler(time.UTC),
		fanout:       fanout,
		segment:      segment,
		shared:       shared,
		TextEvery:    DefaultTextEvery,
		SegmentEvery: DefaultSegmentEvery,
	}
}

// Start schedules the jobs and runs them asynchronously.
func (r *Refresher) Start() error {
	if _, err := r.scheduler.Every(r.TextEvery).Do(r.refreshText); err != nil {
		return fmt.Errorf("schedule text refresh: %w", err)
	}
	if _, err := r.scheduler.Every(r.SegmentEvery).Do(r.refreshSegment); err != nil {
		return fmt.Errorf("schedule segment refresh: %w", err)
	}

	r.scheduler.StartAsync()
	log.Info().
		Dur("text_every", r.TextEvery).
		Dur("segment_every", r.SegmentEvery).
		Msg("display refresh jobs started")
	return nil
}

// Stop halts the jobs. Running jobs finish their current repaint.
func (r *Refresher) Stop() {
	r.scheduler.Stop()
	log.Info().Msg("display refresh jobs stopped")
}

// refreshText repaints the LCD and the matrix from the latest snapshot.
func (r *Refresher) refreshText() {
	state := r.shared.Snapshot()
	if err := r.fanout.UpdateText(state.Temperature, state.Humidity); err != nil {
		log.Error().Err(err).Msg("text refresh failed")
	}
	if err := r.fanout.UpdateMatrix(state.Brightness); err != nil {
		log.Error().Err(err).Msg("matrix refresh failed")
	}
}

// refreshSegment shows temperature on even ticks, humidity on odd ones.
func (r *Refresher) refreshSegment() {
	state := r.shared.Snapshot()
	tick := r.ticks.Add(1)

	value := domain.SegmentTemperature(state.Temperature)
	if tick%2 == 0 {
		value = domain.SegmentHumidity(state.Humidity)
	}

	if err := r.segment.Clear(); err != nil {
		log.Error().Err(err).Msg("segment clear failed")
		return
	}
	if err := r.segment.Print(value); err != nil {
		log.Error().Err(err).Msg("segment refresh failed")
	}
}
