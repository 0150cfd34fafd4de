package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/quentinrf/greenhouse-monitor/internal/adapters/memory"
	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	app := fiber.New()
	store := memory.NewStore()
	RegisterRoutes(app, store)
	return app, store
}

func seed(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		reading, err := domain.NewReading("2025-01-01 12:00:00", 20+float64(i), 50, 100+i)
		if err != nil {
			t.Fatalf("bad seed reading: %v", err)
		}
		if _, err := store.Insert(context.Background(), reading); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
}

func TestMeasurements_EmptyStore(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Count        int             `json:"count"`
		Measurements []domain.Record `json:"measurements"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Count != 0 || len(payload.Measurements) != 0 {
		t.Errorf("expected empty dump, got %+v", payload)
	}
}

func TestMeasurements_LimitKeepsNewest(t *testing.T) {
	app, store := newTestApp(t)
	seed(t, store, 5)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements?limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Count        int             `json:"count"`
		Measurements []domain.Record `json:"measurements"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Count != 2 {
		t.Fatalf("expected 2 measurements, got %d", payload.Count)
	}
	if payload.Measurements[0].ID != 4 || payload.Measurements[1].ID != 5 {
		t.Errorf("expected the newest rows, got ids %d, %d",
			payload.Measurements[0].ID, payload.Measurements[1].ID)
	}
}

func TestMeasurements_LimitValidation(t *testing.T) {
	app, _ := newTestApp(t)

	for _, query := range []string{"limit=0", "limit=-3", "limit=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements?"+query, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("query %q: expected status %d, got %d", query, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestLatest(t *testing.T) {
	app, store := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on empty store, got %d", resp.StatusCode)
	}

	seed(t, store, 3)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/measurements/latest", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var record domain.Record
	if err := json.Unmarshal(body, &record); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if record.ID != 3 {
		t.Errorf("expected latest id 3, got %d", record.ID)
	}
}
