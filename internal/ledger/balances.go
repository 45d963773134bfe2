package ledger

import (
	"slices"

	"github.com/mmynk/tripkit/internal/models"
)

// ComputeBalances returns each traveler's net position across expenses.
// Positive means the traveler is owed money, negative means they owe.
//
// Algorithm:
//   - Every roster traveler starts at 0, so all of them appear in the result
//   - Payer: += amount
//   - Each split: traveler -= split amount (a payer who is also a participant
//     is charged their own share)
//
// IDs that are not on the roster are not rejected; they appear as extra keys.
func ComputeBalances(travelers []models.Traveler, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(travelers))
	for _, t := range travelers {
		balances[t.ID] = 0
	}

	for _, e := range expenses {
		balances[e.PayerID] += e.Amount
		for _, s := range e.Splits {
			balances[s.TravelerID] -= s.Amount
		}
	}

	return balances
}

// TotalExpenses sums the amounts of all expenses.
func TotalExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// PerPersonAverage divides total by travelerCount, returning 0 when there
// are no travelers.
func PerPersonAverage(total float64, travelerCount int) float64 {
	if travelerCount <= 0 {
		return 0
	}
	return total / float64(travelerCount)
}

// TravelerBalance is the balance line for one traveler.
type TravelerBalance struct {
	TravelerID string
	Name       string
	Balance    float64 // Positive = owed money, Negative = owes money
	TotalPaid  float64 // Sum of expense amounts this traveler paid
	TotalOwed  float64 // Sum of split amounts charged to this traveler
}

// Summary is the expense overview of a trip.
type Summary struct {
	Balances     []TravelerBalance
	Total        float64
	PerPerson    float64
	ExpenseCount int
}

// Summarize computes balances and totals for a trip. Balances are ordered as
// the roster, followed by any off-roster IDs in sorted order with the name
// models.UnknownTravelerName.
func Summarize(trip *models.Trip) Summary {
	net := ComputeBalances(trip.Travelers, trip.Expenses)

	paid := make(map[string]float64)
	owed := make(map[string]float64)
	for _, e := range trip.Expenses {
		paid[e.PayerID] += e.Amount
		for _, s := range e.Splits {
			owed[s.TravelerID] += s.Amount
		}
	}

	line := func(id string) TravelerBalance {
		return TravelerBalance{
			TravelerID: id,
			Name:       trip.TravelerName(id),
			Balance:    net[id],
			TotalPaid:  paid[id],
			TotalOwed:  owed[id],
		}
	}

	balances := make([]TravelerBalance, 0, len(net))
	seen := make(map[string]bool, len(trip.Travelers))
	for _, t := range trip.Travelers {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		balances = append(balances, line(t.ID))
	}

	var unknown []string
	for id := range net {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	for _, id := range unknown {
		balances = append(balances, line(id))
	}

	total := TotalExpenses(trip.Expenses)
	return Summary{
		Balances:     balances,
		Total:        total,
		PerPerson:    PerPersonAverage(total, len(trip.Travelers)),
		ExpenseCount: len(trip.Expenses),
	}
}
