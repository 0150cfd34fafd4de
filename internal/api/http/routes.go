// Package httpapi exposes the measurement store for diagnostics: the full
// dump and the latest reading. It is read-only; the acquisition loop stays
// the only writer.
package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

var validate = validator.New()

// listQuery holds query parameters for the dump endpoint.
type listQuery struct {
	Limit int `validate:"min=1,max=10000"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, repo domain.MeasurementRepository) {
	v1 := app.Group("/api/v1")

	v1.Get("/measurements", func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be an integer")
			}
			if err := validate.Struct(listQuery{Limit: n}); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			limit = n
		}

		records, err := repo.ReadAll(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read measurements")
		}
		if limit > 0 && len(records) > limit {
			// Keep the newest rows; the dump is ordered oldest first.
			records = records[len(records)-limit:]
		}
		if records == nil {
			records = []domain.Record{}
		}

		return c.JSON(fiber.Map{
			"count":        len(records),
			"measurements": records,
		})
	})

	v1.Get("/measurements/latest", func(c *fiber.Ctx) error {
		records, err := repo.ReadAll(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read measurements")
		}
		if len(records) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no measurements recorded yet")
		}

		return c.JSON(records[len(records)-1])
	})
}
