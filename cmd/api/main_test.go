package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwork/studiofinder/internal/config"
	"github.com/mwork/studiofinder/internal/domain/session"
	"github.com/mwork/studiofinder/internal/middleware"
	"github.com/mwork/studiofinder/internal/pkg/catalog"
	"github.com/mwork/studiofinder/internal/pkg/storage"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	hub := session.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	registry := session.NewRegistry(
		catalog.NewFileSource("../../assets/studio-mock-api.json"),
		storage.NewMemoryStore(),
		hub,
		session.Options{AutoCloseDelay: time.Hour, TTL: time.Hour, AutoLoad: true},
	)
	return newRouter(routerDeps{registry: registry, hub: hub})
}

func call(t *testing.T, h http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := call(t, newTestServer(t), http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestStudiosCreatesSession(t *testing.T) {
	h := newTestServer(t)

	rr := call(t, h, http.MethodGet, "/api/v1/studios", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	sessionID := rr.Header().Get(middleware.SessionHeader)
	if sessionID == "" {
		t.Fatal("session header not set")
	}

	var env struct {
		Data struct {
			CatalogSize int `json:"catalog_size"`
			TotalPages  int `json:"total_pages"`
			Studios     []struct {
				ID int `json:"Id"`
			} `json:"studios"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.CatalogSize != 13 || env.Data.TotalPages != 3 || len(env.Data.Studios) != 6 {
		t.Fatalf("unexpected initial view %+v", env.Data)
	}

	rr = call(t, h, http.MethodPost, "/api/v1/studios/pages/2", sessionID, nil)
	if got := rr.Header().Get(middleware.SessionHeader); got != sessionID {
		t.Fatalf("session not kept: %q != %q", got, sessionID)
	}
}

func TestBookingEndToEnd(t *testing.T) {
	h := newTestServer(t)
	sessionID := call(t, h, http.MethodGet, "/api/v1/studios", "", nil).Header().Get(middleware.SessionHeader)

	rr := call(t, h, http.MethodPost, "/api/v1/booking/open", sessionID, map[string]int{"studio_id": 1})
	if rr.Code != http.StatusOK {
		t.Fatalf("open: %d %s", rr.Code, rr.Body.String())
	}

	draft := map[string]string{
		"date":       "2026-11-01",
		"time":       "09:00",
		"user_name":  "Rafi",
		"user_email": "rafi@example.com",
	}
	rr = call(t, h, http.MethodPost, "/api/v1/booking/confirm", sessionID, draft)
	if rr.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", rr.Code, rr.Body.String())
	}

	call(t, h, http.MethodPost, "/api/v1/booking/open", sessionID, map[string]int{"studio_id": 1})
	rr = call(t, h, http.MethodPost, "/api/v1/booking/confirm", sessionID, draft)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second confirm, got %d", rr.Code)
	}

	rr = call(t, h, http.MethodGet, "/api/v1/bookings", sessionID, nil)
	var env struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Total != 1 {
		t.Fatalf("expected 1 booking, got %d", env.Data.Total)
	}
}

func TestRateLimitApplied(t *testing.T) {
	hub := session.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	registry := session.NewRegistry(catalog.NewFileSource("../../assets/studio-mock-api.json"), storage.NewMemoryStore(), hub, session.Options{})
	h := newRouter(routerDeps{registry: registry, hub: hub, limiter: middleware.NewRateLimiter(0.001, 1)})

	if rr := call(t, h, http.MethodGet, "/api/v1/studios", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("first request: %d", rr.Code)
	}
	if rr := call(t, h, http.MethodGet, "/api/v1/studios", "", nil); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestNewBlobStoreDrivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store, closeStore, err := newBlobStore(ctx, &config.Config{BookingStoreDriver: "memory"}, nil)
	if err != nil || store == nil {
		t.Fatalf("memory driver: %v", err)
	}
	closeStore()

	store, closeStore, err = newBlobStore(ctx, &config.Config{BookingStoreDriver: "file", BookingStoreDir: t.TempDir()}, nil)
	if err != nil || store == nil {
		t.Fatalf("file driver: %v", err)
	}
	closeStore()

	if _, _, err := newBlobStore(ctx, &config.Config{BookingStoreDriver: "redis"}, nil); err == nil {
		t.Fatal("redis driver without client should fail")
	}
	if _, _, err := newBlobStore(ctx, &config.Config{BookingStoreDriver: "floppy"}, nil); err == nil {
		t.Fatal("unknown driver should fail")
	}
}

func TestDebugVarsOnlyWhenExposed(t *testing.T) {
	hub := session.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()
	registry := session.NewRegistry(catalog.NewFileSource("../../assets/studio-mock-api.json"), storage.NewMemoryStore(), hub, session.Options{})

	hidden := newRouter(routerDeps{registry: registry, hub: hub})
	if rr := call(t, hidden, http.MethodGet, "/debug/vars", "", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	exposed := newRouter(routerDeps{registry: registry, hub: hub, exposeDebug: true})
	if rr := call(t, exposed, http.MethodGet, "/debug/vars", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
