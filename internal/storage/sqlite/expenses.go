package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
)

// UpdateExpenses runs fn against the current trip and replaces the stored
// expense list with its result inside a single transaction.
func (s *SQLiteStore) UpdateExpenses(ctx context.Context, tripID string, fn storage.ExpenseUpdateFunc) ([]models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	trip, err := getTrip(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := fn(trip)
	if err != nil {
		return nil, err
	}

	// Replace wholesale: the new list is the only source of truth.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ?", tripID); err != nil {
		return nil, fmt.Errorf("failed to clear expenses: %w", err)
	}
	if err := insertExpenses(ctx, tx, tripID, expenses); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return expenses, nil
}

// insertExpenses writes expenses in list order, assigning IDs to any
// expense that has none.
func insertExpenses(ctx context.Context, tx *sql.Tx, tripID string, expenses []models.Expense) error {
	for i := range expenses {
		e := &expenses[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, trip_id, position, description, amount, currency, date, payer_id, category)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, tripID, i, e.Description, e.Amount, e.Currency, e.Date, e.PayerID, e.Category.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, id := range e.ParticipantIDs {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, traveler_id, position) VALUES (?, ?, ?)",
				e.ID, id, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense participant: %w", err)
			}
		}

		for j, split := range e.Splits {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_splits (expense_id, traveler_id, amount, position) VALUES (?, ?, ?, ?)",
				e.ID, split.TravelerID, split.Amount, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
	}
	return nil
}

// listExpenses loads a trip's expenses in stored order. Participants and
// splits are fetched per table and attached by expense ID, so no result set
// is held open while another query runs on the single connection.
func listExpenses(ctx context.Context, q querier, tripID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, description, amount, currency, date, payer_id, category
		 FROM expenses WHERE trip_id = ? ORDER BY position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var category string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Currency, &e.Date, &e.PayerID, &category); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Category = models.ParseCategory(category)
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}

	partRows, err := q.QueryContext(ctx,
		`SELECT p.expense_id, p.traveler_id
		 FROM expense_participants p JOIN expenses e ON e.id = p.expense_id
		 WHERE e.trip_id = ? ORDER BY e.position, p.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	for partRows.Next() {
		var expenseID, travelerID string
		if err := partRows.Scan(&expenseID, &travelerID); err != nil {
			partRows.Close()
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		i := index[expenseID]
		expenses[i].ParticipantIDs = append(expenses[i].ParticipantIDs, travelerID)
	}
	partRows.Close()
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.traveler_id, s.amount
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ? ORDER BY e.position, s.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	for splitRows.Next() {
		var expenseID string
		var split models.Split
		if err := splitRows.Scan(&expenseID, &split.TravelerID, &split.Amount); err != nil {
			splitRows.Close()
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		i := index[expenseID]
		expenses[i].Splits = append(expenses[i].Splits, split)
	}
	splitRows.Close()
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}
