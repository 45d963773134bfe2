package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripkit/internal/ledger"
	"github.com/mmynk/tripkit/internal/storage/sqlite"
	"github.com/mmynk/tripkit/pkg/api"
)

type testClients struct {
	trips    api.TripServiceClient
	expenses api.ExpenseServiceClient
}

// countingRecorder records ledger notifications.
type countingRecorder struct {
	added   map[string]int
	deleted int
}

func (r *countingRecorder) ExpenseAdded(category string) {
	if r.added == nil {
		r.added = make(map[string]int)
	}
	r.added[category]++
}

func (r *countingRecorder) ExpenseDeleted() { r.deleted++ }

// setupTestServer creates a test server with an in-memory SQLite database
func setupTestServer(t *testing.T, opts ...ledger.Option) testClients {
	c, _ := setupTestServerWithRecorder(t, opts...)
	return c
}

func setupTestServerWithRecorder(t *testing.T, opts ...ledger.Option) (testClients, *countingRecorder) {
	t.Helper()

	store, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	recorder := &countingRecorder{}
	tripPath, tripHandler := api.NewTripServiceHandler(NewTripService(store))
	expensePath, expenseHandler := api.NewExpenseServiceHandler(
		NewExpenseService(store, ledger.New(opts...), recorder),
	)

	mux := http.NewServeMux()
	mux.Handle(tripPath, tripHandler)
	mux.Handle(expensePath, expenseHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		trips:    api.NewTripServiceClient(http.DefaultClient, server.URL),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, server.URL),
	}, recorder
}

// createTrip creates a trip with travelers a, b and c.
func createTrip(t *testing.T, c testClients) *api.Trip {
	t.Helper()

	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name:        "Alps",
		Destination: "Chamonix",
		StartDate:   "2026-01-10",
		EndDate:     "2026-01-14",
		Travelers: []*api.Traveler{
			{Id: "a", Name: "Alice"},
			{Id: "b", Name: "Bob"},
			{Id: "c", Name: "Carol"},
		},
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return resp.Msg.Trip
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
