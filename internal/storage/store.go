// Package storage provides abstractions for trip persistence.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripkit/internal/models"
)

// ErrNotFound is returned when a trip does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseUpdateFunc receives the current trip and returns the expense list
// that replaces trip.Expenses. Returning an error aborts the update.
type ExpenseUpdateFunc func(trip *models.Trip) ([]models.Expense, error)

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateTrip persists a new trip with its roster.
	// ID, CreatedAt and missing traveler IDs are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with its roster and expenses.
	// Returns an error wrapping ErrNotFound if the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips ordered by creation time, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTrip replaces the trip details and roster. Expenses are untouched.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything it owns.
	DeleteTrip(ctx context.Context, tripID string) error

	// UpdateExpenses loads the trip, calls fn, and replaces the stored
	// expense list with the result as one atomic step. The replaced list is
	// returned.
	UpdateExpenses(ctx context.Context, tripID string, fn ExpenseUpdateFunc) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
