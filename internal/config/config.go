// Package config loads the process configuration from a .env file,
// environment variables and (in cmd) CLI flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// Config holds everything the pipeline needs. CLI flags for iterations,
// interval and verbosity override the corresponding fields after Load.
type Config struct {
	// Loop shape.
	Iterations   int           `validate:"min=1"`
	Interval     time.Duration `validate:"min=0"`
	LogLevel     string        `validate:"oneof=trace debug info warn error"`
	MaxAttempts  int           `validate:"min=1"`
	RetryBackoff time.Duration `validate:"min=0"`

	// Time source.
	TimeServer    string `validate:"required"`
	ClockFallback bool
	StrictPersist bool

	// Persistence.
	RepoType string `validate:"oneof=sqlite memory"`
	DBPath   string

	// Sensors and displays.
	SensorType  string `validate:"oneof=mock gpio"`
	DisplayType string `validate:"oneof=console periph none"`
	DHT11Pin    string
	I2CBus      string
	LightAddr   uint16
	LCDAddr     uint16
	SegmentAddr uint16
	MatrixPort  string
	ADCPort     string
	ADCChannel  int `validate:"min=0,max=7"`
	ADCVref     float64

	// Background display refresh (continuous mode).
	RefreshDisplays bool

	// Diagnostics API; empty disables the server.
	HTTPAddr string
}

// Load reads configuration from the environment with the defaults of the
// original deployment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{
		Iterations:   getenvInt("ITERATIONS", 10),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
		MaxAttempts:  getenvInt("SENSOR_MAX_ATTEMPTS", 10),
		TimeServer:   getenvDefault("TIME_SERVER", "216.239.35.0"),
		RepoType:     getenvDefault("REPO_TYPE", "sqlite"),
		DBPath:       getenvDefault("DB_PATH", "greenhouse.db"),
		SensorType:   getenvDefault("SENSOR_TYPE", "mock"),
		DisplayType:  getenvDefault("DISPLAY_TYPE", "console"),
		DHT11Pin:     getenvDefault("DHT11_PIN", "GPIO4"),
		I2CBus:       getenvDefault("I2C_BUS", "1"),
		MatrixPort:   os.Getenv("MATRIX_SPI_PORT"),
		ADCPort:      os.Getenv("ADC_SPI_PORT"),
		ADCChannel:   getenvInt("ADC_CHANNEL", 0),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		LightAddr:    uint16(getenvInt("LIGHT_I2C_ADDR", 0x5C)),
		LCDAddr:      uint16(getenvInt("LCD_I2C_ADDR", 0x21)),
		SegmentAddr:  uint16(getenvInt("SEGMENT_I2C_ADDR", 0x70)),
	}

	var err error
	if cfg.Interval, err = getenvDuration("INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryBackoff, err = getenvDuration("SENSOR_RETRY_BACKOFF", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ADCVref, err = getenvFloat("ADC_VREF", 3.3); err != nil {
		return nil, err
	}
	cfg.ClockFallback = getenvBool("CLOCK_FALLBACK", false)
	cfg.StrictPersist = getenvBool("STRICT_PERSIST", false)
	cfg.RefreshDisplays = getenvBool("REFRESH_DISPLAYS", false)

	return cfg, nil
}

// Validate checks the assembled configuration, after any flag overrides.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
