package ntptime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

func fixedInstant(t *testing.T) time.Time {
	t.Helper()
	instant, err := time.Parse(time.RFC3339, "2025-06-15T10:30:00Z")
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return instant
}

func newTestResolver(t *testing.T, geoHandler http.HandlerFunc) *Resolver {
	t.Helper()
	server := httptest.NewServer(geoHandler)
	t.Cleanup(server.Close)

	resolver := New("192.0.2.1", server.Client())
	resolver.GeoBaseURL = server.URL + "/json/"
	instant := fixedInstant(t)
	resolver.queryTime = func(string) (time.Time, error) { return instant, nil }
	return resolver
}

func TestResolve_UsesLookedUpTimezone(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","timezone":"Europe/Berlin"}`)
	})

	got, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// 10:30 UTC is 12:30 in Berlin in June (CEST).
	if got != "2025-06-15 12:30:00" {
		t.Errorf("Resolve() = %q, want %q", got, "2025-06-15 12:30:00")
	}
}

func TestResolve_TimezoneLookupFailureFallsBackToUTC(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{`)
			},
		},
		{
			name: "missing timezone",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"status":"fail"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(t, tt.handler)

			got, err := resolver.Resolve(context.Background())
			if err != nil {
				t.Fatalf("timezone failure must not fail Resolve: %v", err)
			}
			if got != "2025-06-15 10:30:00" {
				t.Errorf("Resolve() = %q, want UTC fallback %q", got, "2025-06-15 10:30:00")
			}
		})
	}
}

func TestResolve_NTPFailureIsSoftFail(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"timezone":"UTC"}`)
	})
	resolver.queryTime = func(string) (time.Time, error) {
		return time.Time{}, errors.New("no response from server")
	}

	got, err := resolver.Resolve(context.Background())
	if got != "" {
		t.Errorf("expected empty timestamp, got %q", got)
	}
	if !errors.Is(err, domain.ErrNoTimestamp) {
		t.Errorf("expected ErrNoTimestamp, got %v", err)
	}
}
