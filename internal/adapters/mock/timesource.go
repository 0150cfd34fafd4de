package mock

import "context"

// FakeTimeSource implements ports.TimeSource with a canned answer.
type FakeTimeSource struct {
	Timestamp string
	Err       error
	Calls     int
}

// Resolve returns the configured timestamp or error.
func (s *FakeTimeSource) Resolve(ctx context.Context) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Timestamp, nil
}
