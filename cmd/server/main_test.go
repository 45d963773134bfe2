package main

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tripkit/internal/config"
	"github.com/mmynk/tripkit/internal/ledger"
	"github.com/mmynk/tripkit/internal/storage/sqlite"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:       "8080",
		CORSOrigin: "https://trips.example.com",
		DBPath:     sqlite.MemoryPath,
		SplitMode:  "equal",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func TestRun_StorageErrorIsReturned(t *testing.T) {
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	cfg := testConfig()
	cfg.DBPath = filepath.Join(blocker, "trips.db")

	err := run(cfg)
	if err == nil || !strings.Contains(err.Error(), "failed to initialize storage") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestRun_ListenErrorIsReturned(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	cfg := testConfig()
	cfg.Port = strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	cfg.DBPath = filepath.Join(t.TempDir(), "trips.db")
	cfg.SeedSampleData = true

	if err := run(cfg); err == nil {
		t.Fatal("expected listen error on a busy port")
	}

	// run returned instead of exiting; the seeded file store is reusable.
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()
	trips, err := store.ListTrips(t.Context())
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(trips) != 1 {
		t.Errorf("expected 1 seeded trip, got %d", len(trips))
	}
}

func TestNewHandler(t *testing.T) {
	store, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	server := httptest.NewServer(newHandler(testConfig(), store, ledger.New(), prometheus.NewRegistry()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz: status %d body %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://trips.example.com" {
		t.Errorf("CORS origin = %q", got)
	}

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics: status %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/tripkit.v1.TripService/ListTrips", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight: status %d", resp.StatusCode)
	}
}
