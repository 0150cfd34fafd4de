package domain

import "errors"

var (
	// ErrInvalidReading indicates a reading violates a business rule.
	ErrInvalidReading = errors.New("invalid reading")

	// ErrNoTimestamp indicates the time source could not be reached, so
	// the reading must not be persisted.
	ErrNoTimestamp = errors.New("no timestamp available")

	// ErrNotFound indicates the requested record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrSensorUnavailable indicates a sensor cannot be read.
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrTierFailed indicates one brightness resolution tier failed and the
	// next tier should be attempted.
	ErrTierFailed = errors.New("brightness tier failed")
)
