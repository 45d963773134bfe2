package models

const (
	// DefaultCurrency is applied when an expense does not name one.
	// Amounts are never converted between currencies.
	DefaultCurrency = "USD"

	// DateLayout is the calendar date format used for trip and expense dates.
	DateLayout = "2006-01-02"
)

// Expense is a single monetary outlay attributed to a payer and shared among
// participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is what the money was spent on (e.g., "Group dinner").
	Description string

	// Amount is the total paid, in major currency units.
	Amount float64

	// Currency is an ISO code. Defaults to DefaultCurrency.
	Currency string

	// Date is the calendar date of the expense (DateLayout).
	Date string

	// PayerID is the traveler who paid.
	PayerID string

	// ParticipantIDs is the cost-sharing group, in the order splits are
	// produced.
	ParticipantIDs []string

	// Splits holds one entry per participant.
	// Invariant: the amounts sum to Amount within floating tolerance.
	Splits []Split

	// Category classifies the expense.
	Category Category
}

// Split is the portion of an expense attributed to one participant.
type Split struct {
	TravelerID string
	Amount     float64
}

// Clone returns a deep copy of the expense so callers can hand out snapshots
// without sharing slice backing arrays.
func (e Expense) Clone() Expense {
	out := e
	out.ParticipantIDs = append([]string(nil), e.ParticipantIDs...)
	out.Splits = append([]Split(nil), e.Splits...)
	return out
}

// CloneExpenses deep-copies an expense list.
func CloneExpenses(expenses []Expense) []Expense {
	if expenses == nil {
		return nil
	}
	out := make([]Expense, len(expenses))
	for i, e := range expenses {
		out[i] = e.Clone()
	}
	return out
}
