package ports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// State is the orchestrator lifecycle state.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Runner drives the measurement loop: acquire, resolve brightness and time,
// persist, fan out, wait - for a fixed number of iterations or until the
// context is cancelled. It exclusively owns the repository and the display
// handles; SharedDisplayState is the only resource other goroutines touch.
type Runner struct {
	acquirer   *Acquirer
	brightness *BrightnessResolver
	timeSource TimeSource
	repo       domain.MeasurementRepository
	fanout     *Fanout
	shared     *SharedDisplayState

	iterations int
	interval   time.Duration

	// ClockFallback stamps readings with the local clock when the time
	// service is unreachable instead of skipping persistence.
	ClockFallback bool

	// StrictPersist aborts the run on a failed insert instead of carrying
	// on; a partially written measurement log is worse than stopping.
	StrictPersist bool

	state State

	// now is swappable for the clock-fallback tests.
	now func() time.Time
}

// NewRunner assembles the orchestrator.
func NewRunner(
	acquirer *Acquirer,
	brightness *BrightnessResolver,
	timeSource TimeSource,
	repo domain.MeasurementRepository,
	fanout *Fanout,
	shared *SharedDisplayState,
	iterations int,
	interval time.Duration,
) *Runner {
	return &Runner{
		acquirer:   acquirer,
		brightness: brightness,
		timeSource: timeSource,
		repo:       repo,
		fanout:     fanout,
		shared:     shared,
		iterations: iterations,
		interval:   interval,
		state:      StateIdle,
		now:        time.Now,
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run executes the full lifecycle. It returns an error only for fatal-init
// conditions (the store cannot be brought up) or, under StrictPersist, for an
// integrity-risk insert failure. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) error {
	r.transition(StateInitializing)

	if err := r.repo.EnsureSchema(ctx); err != nil {
		r.transition(StateStopped)
		return fmt.Errorf("ensure schema: %w", err)
	}

	r.transition(StateRunning)

	for i := 1; i <= r.iterations; i++ {
		if ctx.Err() != nil {
			log.Info().Msg("cancelled, skipping remaining iterations")
			break
		}

		log.Info().Int("iteration", i).Int("total", r.iterations).Msg("measurement cycle")

		if err := r.runOnce(ctx); err != nil {
			r.drain()
			return err
		}

		// Wait out the configured interval, except after the last cycle.
		if i < r.iterations && !sleepCtx(ctx, r.interval) {
			log.Info().Msg("cancelled during interval wait")
			break
		}
	}

	r.dumpMeasurements(ctx)
	r.drain()
	return nil
}

// runOnce performs one acquire-resolve-persist-display sweep.
func (r *Runner) runOnce(ctx context.Context) error {
	temperature, humidity := r.acquirer.Acquire(ctx)
	brightness := r.brightness.Resolve(ctx)

	state := domain.DisplayState{
		Temperature: temperature,
		Humidity:    humidity,
		Brightness:  brightness,
	}

	// Publish before anything can fail so the refresh jobs always see the
	// freshest values.
	r.shared.Set(state)

	timestamp, err := r.timeSource.Resolve(ctx)
	if err != nil {
		if r.ClockFallback {
			timestamp = r.now().Format("2006-01-02 15:04:05")
			log.Warn().Err(err).Str("timestamp", timestamp).Msg("time service unreachable, stamping with local clock")
		} else {
			// Soft fail: skip persistence, but still refresh the displays
			// so the operator sees live numbers.
			log.Warn().Err(err).Msg("time service unreachable, skipping persistence this cycle")
			r.fanout.Update(state)
			return nil
		}
	}

	reading, err := domain.NewReading(timestamp, temperature, humidity, brightness)
	if err != nil {
		log.Error().Err(err).Msg("measured values violate a business rule, not persisting")
		r.fanout.Update(state)
		return nil
	}

	id, err := r.repo.Insert(ctx, reading)
	if err != nil {
		log.Error().Err(err).Msg("failed to persist measurement, data integrity may be compromised")
		if r.StrictPersist {
			return fmt.Errorf("persist measurement: %w", err)
		}
	} else {
		log.Info().
			Int64("id", id).
			Str("timestamp", reading.Timestamp).
			Float64("temperature", reading.Temperature).
			Float64("humidity", reading.Humidity).
			Int("brightness", reading.Brightness).
			Msg("measurement persisted")
	}

	r.fanout.Update(state)
	return nil
}

// drain releases resources best-effort and transitions to Stopped. Errors are
// swallowed; there is nothing left to do with them.
func (r *Runner) drain() {
	r.transition(StateDraining)
	if err := r.repo.Close(); err != nil {
		log.Warn().Err(err).Msg("closing measurement store")
	}
	r.transition(StateStopped)
}

// dumpMeasurements logs the whole table as aligned columns, one row per line.
func (r *Runner) dumpMeasurements(ctx context.Context) {
	records, err := r.repo.ReadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read measurements for dump")
		return
	}
	if len(records) == 0 {
		log.Info().Msg("measurements table is empty")
		return
	}

	header := []string{"id", "timestamp", "temperature", "humidity", "brightness"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		brightness := ""
		if rec.Brightness != nil {
			brightness = fmt.Sprintf("%d", *rec.Brightness)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", rec.ID),
			rec.Timestamp,
			fmt.Sprintf("%.1f", rec.Temperature),
			fmt.Sprintf("%.1f", rec.Humidity),
			brightness,
		})
	}

	widths := make([]int, len(header))
	for i, name := range header {
		widths[i] = len(name)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	log.Info().Msg(formatRow(header, widths))
	for _, row := range rows {
		log.Info().Msg(formatRow(row, widths))
	}
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.Join(padded, " | ")
}

func (r *Runner) transition(next State) {
	log.Debug().Stringer("from", r.state).Stringer("to", next).Msg("state transition")
	r.state = next
}
