// Package periph implements the hardware ports on top of periph.io raw I2C
// and SPI transactions.
package periph

import (
	"fmt"

	"periph.io/x/host/v3"
)

// Init loads the periph host drivers. Must be called once before opening any
// bus.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}
