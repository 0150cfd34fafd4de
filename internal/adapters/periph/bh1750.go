package periph

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// DefaultBH1750Addr is the sensor address with the ADDR pin pulled high.
const DefaultBH1750Addr = 0x5C

// oneTimeHighRes is the one-shot high-resolution measurement command; the
// sensor powers down again after the read.
const oneTimeHighRes = 0x20

// bh1750ConversionTime is the worst-case high-resolution conversion time.
const bh1750ConversionTime = 180 * time.Millisecond

// BH1750 reads ambient light over I2C. Implements ports.LightSensor.
type BH1750 struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// NewBH1750 opens the named I2C bus ("1" on a recent Raspberry Pi) and
// addresses the sensor.
func NewBH1750(busName string, addr uint16) (*BH1750, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	return &BH1750{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// ReadLux triggers a one-shot high-resolution measurement and converts the
// two raw bytes to lux.
func (s *BH1750) ReadLux(ctx context.Context) (int, error) {
	if err := s.dev.Tx([]byte{oneTimeHighRes}, nil); err != nil {
		return 0, fmt.Errorf("bh1750 trigger: %w", err)
	}

	timer := time.NewTimer(bh1750ConversionTime)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
	}

	buf := make([]byte, 2)
	if err := s.dev.Tx(nil, buf); err != nil {
		return 0, fmt.Errorf("bh1750 read: %w", err)
	}

	return domain.LuxFromRaw(buf[0], buf[1]), nil
}

// Close releases the bus.
func (s *BH1750) Close() error {
	return s.bus.Close()
}
