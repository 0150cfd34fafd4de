package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-monitor/internal/adapters/console"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/memory"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/mock"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/noop"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/ntptime"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/periph"
	"github.com/quentinrf/greenhouse-monitor/internal/adapters/sqlite"
	httpapi "github.com/quentinrf/greenhouse-monitor/internal/api/http"
	"github.com/quentinrf/greenhouse-monitor/internal/config"
	"github.com/quentinrf/greenhouse-monitor/internal/domain"
	"github.com/quentinrf/greenhouse-monitor/internal/ports"
	"github.com/quentinrf/greenhouse-monitor/internal/scheduler"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("starting greenhouse monitor")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// CLI flags override the environment.
	iterations := flag.Int("iterations", cfg.Iterations, "number of measurement cycles to run")
	interval := flag.Duration("interval", cfg.Interval, "pause between measurement cycles")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg.Iterations = *iterations
	cfg.Interval = *interval
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	zerolog.SetGlobalLevel(level)

	// Initialize repository
	var repo domain.MeasurementRepository
	switch cfg.RepoType {
	case "sqlite":
		r, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open SQLite database")
		}
		repo = r
		log.Info().Str("db_path", cfg.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewStore()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize sensors. The brightness tiers may come up nil; the resolver
	// fails over and ultimately falls back to the default lux value.
	var (
		climate ports.ClimateSensor
		light   ports.LightSensor
		analog  ports.AnalogChannel
	)
	switch cfg.SensorType {
	case "gpio":
		if err := periph.Init(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize peripheral host")
		}
		dht, err := periph.NewDHT11(cfg.DHT11Pin)
		if err != nil {
			log.Fatal().Err(err).Str("pin", cfg.DHT11Pin).Msg("failed to open climate sensor")
		}
		climate = dht

		if bh, err := periph.NewBH1750(cfg.I2CBus, cfg.LightAddr); err != nil {
			log.Warn().Err(err).Msg("digital light sensor unavailable")
		} else {
			light = bh
		}
		if adc, err := periph.NewMCP3008(cfg.ADCPort, byte(cfg.ADCChannel), cfg.ADCVref); err != nil {
			log.Warn().Err(err).Msg("analog light channel unavailable")
		} else {
			analog = adc
		}
		log.Info().Str("pin", cfg.DHT11Pin).Msg("initialized gpio sensors")
	default:
		climate = mock.NewFakeClimate(22.0, 55.0, 2.0) // greenhouse-ish indoor climate
		light = mock.NewFakeLight(500, 100)
		analog = &mock.FakeAnalog{Raw: 512, Voltage: 1.65}
		log.Info().Msg("initialized mock sensors")
	}

	// Initialize displays. A device that fails to come up is replaced with an
	// inert placeholder so the loop never branches on availability.
	var (
		text    ports.TextDisplay    = noop.Text{}
		matrix  ports.MatrixDisplay  = noop.Matrix{}
		segment ports.SegmentDisplay = noop.Segment{}
	)
	switch cfg.DisplayType {
	case "console":
		text = console.NewText(os.Stdout)
		matrix = console.NewMatrix(os.Stdout)
		segment = console.NewSegment(os.Stdout)
		log.Info().Msg("initialized console displays")
	case "periph":
		if cfg.SensorType != "gpio" {
			if err := periph.Init(); err != nil {
				log.Fatal().Err(err).Msg("failed to initialize peripheral host")
			}
		}
		if lcd, err := periph.NewLCD(cfg.I2CBus, cfg.LCDAddr, 16, 2); err != nil {
			log.Warn().Err(err).Msg("text display unavailable, using placeholder")
		} else {
			text = lcd
		}
		if m, err := periph.NewMatrix(cfg.MatrixPort); err != nil {
			log.Warn().Err(err).Msg("matrix display unavailable, using placeholder")
		} else {
			matrix = m
		}
		if s, err := periph.NewSegment(cfg.I2CBus, cfg.SegmentAddr); err != nil {
			log.Warn().Err(err).Msg("segment display unavailable, using placeholder")
		} else {
			segment = s
		}
		log.Info().Msg("initialized hardware displays")
	default:
		log.Info().Msg("displays disabled")
	}

	fanout := ports.NewFanout(text, matrix, segment)
	shared := ports.NewSharedDisplayState()

	acquirer := ports.NewAcquirer(climate, cfg.MaxAttempts, cfg.RetryBackoff)
	brightness := ports.NewBrightnessResolver(light, analog)
	timeSource := ntptime.New(cfg.TimeServer, nil)

	runner := ports.NewRunner(acquirer, brightness, timeSource, repo, fanout, shared, cfg.Iterations, cfg.Interval)
	runner.ClockFallback = cfg.ClockFallback
	runner.StrictPersist = cfg.StrictPersist

	// Optional diagnostics API.
	var app *fiber.App
	if cfg.HTTPAddr != "" {
		app = fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Use(recover.New())
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "state": runner.State().String()})
		})
		httpapi.RegisterRoutes(app, repo)

		go func() {
			log.Info().Str("addr", cfg.HTTPAddr).Msg("diagnostics API listening")
			if err := app.Listen(cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("diagnostics API stopped")
			}
		}()
	}

	// Optional background display refresh.
	if cfg.RefreshDisplays {
		refresher := scheduler.NewRefresher(fanout, segment, shared)
		if err := refresher.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start display refresh")
		}
		defer refresher.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("iterations", cfg.Iterations).
		Dur("interval", cfg.Interval).
		Msg("measurement loop starting")

	if err := runner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("measurement loop failed")
	}

	// Graceful shutdown
	if app != nil {
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Warn().Err(err).Msg("diagnostics API shutdown")
		}
	}

	log.Info().Msg("greenhouse monitor stopped")
}
