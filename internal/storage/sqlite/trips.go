package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
)

// CreateTrip persists a new trip and its roster.
// Travelers with blank names are dropped; names and emails are trimmed.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	trip.Travelers = normalizeTravelers(trip.Travelers)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, destination, start_date, end_date, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Notes, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertTravelers(ctx, tx, trip.ID, trip.Travelers); err != nil {
		return err
	}
	if err := insertExpenses(ctx, tx, trip.ID, trip.Expenses); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID, including its roster and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return getTrip(ctx, s.db, tripID)
}

// ListTrips retrieves all trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM trips ORDER BY created_at DESC, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := getTrip(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// UpdateTrip replaces a trip's details and roster.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	trip.Travelers = normalizeTravelers(trip.Travelers)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE trips SET name = ?, destination = ?, start_date = ?, end_date = ?, notes = ?
		 WHERE id = ?`,
		trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Notes, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM travelers WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear travelers: %w", err)
	}
	if err := insertTravelers(ctx, tx, trip.ID, trip.Travelers); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip. Travelers and expenses cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

func getTrip(ctx context.Context, q querier, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, destination, start_date, end_date, notes, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Destination, &trip.StartDate, &trip.EndDate, &trip.Notes, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		"SELECT id, name, email FROM travelers WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get travelers: %w", err)
	}

	// Close before the next query: the pool has a single connection.
	for rows.Next() {
		var t models.Traveler
		var email sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &email); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan traveler: %w", err)
		}
		if email.Valid {
			t.Email = email.String
		}
		trip.Travelers = append(trip.Travelers, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate travelers: %w", err)
	}

	trip.Expenses, err = listExpenses(ctx, q, tripID)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func insertTravelers(ctx context.Context, tx *sql.Tx, tripID string, travelers []models.Traveler) error {
	for i, t := range travelers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO travelers (trip_id, id, name, email, position) VALUES (?, ?, ?, ?, ?)",
			tripID, t.ID, t.Name, nullString(t.Email), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert traveler: %w", err)
		}
	}
	return nil
}

// normalizeTravelers trims names and emails, drops blank names and assigns
// IDs to travelers that have none.
func normalizeTravelers(in []models.Traveler) []models.Traveler {
	out := make([]models.Traveler, 0, len(in))
	for _, t := range in {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		t.Email = strings.TrimSpace(t.Email)
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		out = append(out, t)
	}
	return out
}
