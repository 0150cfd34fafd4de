// Package ntptime resolves trustworthy timestamps from an NTP server and a
// best-effort geolocation of the server's timezone.
package ntptime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/beevik/ntp"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// TimestampLayout is the canonical persisted timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultGeoBaseURL serves `{"timezone": "Europe/Berlin", ...}` for an IP.
const DefaultGeoBaseURL = "http://ip-api.com/json/"

// Resolver implements ports.TimeSource. The NTP round trip is the source of
// truth; the timezone lookup is best-effort and degrades to UTC.
type Resolver struct {
	server  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker

	// GeoBaseURL is swappable for tests.
	GeoBaseURL string

	// queryTime wraps the NTP client so tests can substitute a canned
	// instant without a network round trip.
	queryTime func(server string) (time.Time, error)
}

// New creates a resolver against the given NTP server address.
func New(server string, client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "timezone-lookup",
		MaxRequests: 2,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Resolver{
		server:     server,
		client:     client,
		breaker:    cb,
		GeoBaseURL: DefaultGeoBaseURL,
		queryTime: func(server string) (time.Time, error) {
			response, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: 5 * time.Second})
			if err != nil {
				return time.Time{}, err
			}
			if err := response.Validate(); err != nil {
				return time.Time{}, err
			}
			return response.Time.UTC(), nil
		},
	}
}

// Resolve queries the NTP server and formats its time in the server's
// timezone. A failed timezone lookup falls back to UTC; a failed NTP query
// is a soft failure the caller must treat as "do not persist".
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	instant, err := r.queryTime(r.server)
	if err != nil {
		return "", fmt.Errorf("%w: ntp query %s: %v", domain.ErrNoTimestamp, r.server, err)
	}

	location, err := r.lookupTimezone(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("timezone lookup failed, using UTC")
		location = time.UTC
	}

	local := instant.In(location).Format(TimestampLayout)
	log.Debug().Str("timestamp", local).Str("server", r.server).Msg("time resolved")
	return local, nil
}

// lookupTimezone geolocates the NTP server's IP. The call runs behind a
// circuit breaker so a dead geolocation service stops costing a round trip
// on every cycle.
func (r *Resolver) lookupTimezone(ctx context.Context) (*time.Location, error) {
	name, err := r.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.GeoBaseURL+r.server, nil)
		if err != nil {
			return nil, err
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geolocation lookup status %d", resp.StatusCode)
		}

		var payload struct {
			Timezone string `json:"timezone"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		if payload.Timezone == "" {
			return nil, fmt.Errorf("geolocation response carries no timezone")
		}
		return payload.Timezone, nil
	})
	if err != nil {
		return nil, err
	}

	return time.LoadLocation(name.(string))
}
