package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
)

// SampleTrips returns the demo data loaded by SeedSampleTrips.
func SampleTrips() []*models.Trip {
	return []*models.Trip{
		{
			Name:        "Weekend in Lisbon",
			Destination: "Lisbon, Portugal",
			StartDate:   "2026-05-01",
			EndDate:     "2026-05-05",
			Notes:       "Bring universal power adapter",
			Travelers: []models.Traveler{
				{ID: "t1", Name: "Alice", Email: "alice@example.com"},
				{ID: "t2", Name: "Bob", Email: "bob@example.com"},
			},
			Expenses: []models.Expense{
				{
					Description:    "Hotel (3 nights)",
					Amount:         450,
					Currency:       "EUR",
					Date:           "2026-05-01",
					PayerID:        "t1",
					ParticipantIDs: []string{"t1", "t2"},
					Splits:         []models.Split{{TravelerID: "t1", Amount: 225}, {TravelerID: "t2", Amount: 225}},
					Category:       models.CategoryAccommodation,
				},
				{
					Description:    "Group dinner",
					Amount:         80,
					Currency:       "EUR",
					Date:           "2026-05-01",
					PayerID:        "t2",
					ParticipantIDs: []string{"t1", "t2"},
					Splits:         []models.Split{{TravelerID: "t1", Amount: 40}, {TravelerID: "t2", Amount: 40}},
					Category:       models.CategoryFood,
				},
			},
		},
	}
}

// SeedSampleTrips stores a fresh copy of the sample trips. Trip and expense
// IDs are assigned by the store, so seeding twice yields two copies.
func SeedSampleTrips(ctx context.Context, store storage.Store) error {
	for _, trip := range SampleTrips() {
		if err := store.CreateTrip(ctx, trip); err != nil {
			return fmt.Errorf("failed to seed trip %q: %w", trip.Name, err)
		}
		slog.Info("Seeded sample trip", "trip_id", trip.ID, "name", trip.Name)
	}
	return nil
}
