// Package ledger computes expense splits and per-traveler balances for a trip.
//
// Every operation takes the current expense list and returns a new one; the
// input slice is never modified. The owning trip replaces its list with the
// result, which keeps the stored list the single source of truth. Balances
// are derived on demand and never persisted.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripkit/internal/models"
)

// ErrNoParticipants is returned when an expense has nobody to split it with.
var ErrNoParticipants = errors.New("expense must have at least one participant")

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Description    string   `json:"description" validate:"required"`
	Amount         float64  `json:"amount" validate:"gt=0"`
	PayerID        string   `json:"payer_id" validate:"required"`
	ParticipantIDs []string `json:"participant_ids" validate:"min=1,unique,dive,required"`
	Category       string   `json:"category"`
	Currency       string   `json:"currency" validate:"omitempty,len=3,alpha"`
	Date           string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// Ledger creates expenses. The zero value is not usable; call New.
type Ledger struct {
	mode  SplitMode
	now   func() time.Time
	newID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSplitMode sets the split mode. The default is SplitEqual.
func WithSplitMode(mode SplitMode) Option {
	return func(l *Ledger) { l.mode = mode }
}

// WithClock overrides the clock used for default expense dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides expense ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New creates a Ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		mode:  SplitEqual,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mode returns the configured split mode.
func (l *Ledger) Mode() SplitMode {
	return l.mode
}

// AddExpense builds an expense from in, splits it equally among its
// participants and returns a new list with the expense appended.
//
// Amount and traveler IDs are not checked here: callers are expected to run
// ValidateExpense against the trip roster first. An unknown ID is carried
// through and later shows up as its own balance entry. The only rejected
// input is an empty participant list, which would otherwise divide by zero.
func (l *Ledger) AddExpense(expenses []models.Expense, in ExpenseInput) ([]models.Expense, models.Expense, error) {
	amount := in.Amount
	if l.mode == SplitReconcile {
		// Splits are whole cents, so the stored amount is too.
		amount = float64(toCents(amount)) / 100
	}

	splits, err := SplitEqually(amount, in.ParticipantIDs, l.mode)
	if err != nil {
		return nil, models.Expense{}, err
	}

	expense := models.Expense{
		ID:             l.newID(),
		Description:    in.Description,
		Amount:         amount,
		Currency:       strings.ToUpper(strings.TrimSpace(in.Currency)),
		Date:           in.Date,
		PayerID:        in.PayerID,
		ParticipantIDs: append([]string(nil), in.ParticipantIDs...),
		Splits:         splits,
		Category:       models.ParseCategory(in.Category),
	}
	if expense.Currency == "" {
		expense.Currency = models.DefaultCurrency
	}
	if expense.Date == "" {
		expense.Date = l.now().Format(models.DateLayout)
	}

	out := make([]models.Expense, 0, len(expenses)+1)
	out = append(out, models.CloneExpenses(expenses)...)
	out = append(out, expense)
	return out, expense.Clone(), nil
}

// DeleteExpense returns a new list without the expense whose ID matches.
// Deleting an absent ID is not an error; the result equals the input.
func DeleteExpense(expenses []models.Expense, expenseID string) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.ID == expenseID {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}
