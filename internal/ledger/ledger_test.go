package ledger

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripkit/internal/models"
)

func newTestLedger(opts ...Option) *Ledger {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("e%d", n)
		}),
	}
	return New(append(base, opts...)...)
}

var roster = []models.Traveler{
	{ID: "t1", Name: "Alice"},
	{ID: "t2", Name: "Bob"},
	{ID: "t3", Name: "Charlie"},
}

func TestAddExpense_EqualSplit(t *testing.T) {
	l := newTestLedger()

	expenses, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "x",
		Amount:         90,
		PayerID:        "t1",
		ParticipantIDs: []string{"t1", "t2", "t3"},
	})
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	assert.Equal(t, 90.0, exp.Amount)
	require.Len(t, exp.Splits, 3)
	for i, s := range exp.Splits {
		assert.Equal(t, []string{"t1", "t2", "t3"}[i], s.TravelerID)
		assert.Equal(t, 30.0, s.Amount)
	}
	assert.Equal(t, exp, expenses[0])
}

func TestAddExpense_Defaults(t *testing.T) {
	l := newTestLedger()

	_, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "Taxi",
		Amount:         20,
		PayerID:        "t2",
		ParticipantIDs: []string{"t1", "t2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "e1", exp.ID)
	assert.Equal(t, models.DefaultCurrency, exp.Currency)
	assert.Equal(t, "2026-05-01", exp.Date)
	assert.Equal(t, models.CategoryOther, exp.Category)

	_, exp, err = l.AddExpense(nil, ExpenseInput{
		Description:    "Hotel",
		Amount:         450,
		PayerID:        "t1",
		ParticipantIDs: []string{"t1", "t2"},
		Category:       "accommodation",
		Currency:       "EUR",
		Date:           "2026-05-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", exp.Currency)
	assert.Equal(t, "2026-05-02", exp.Date)
	assert.Equal(t, models.CategoryAccommodation, exp.Category)
}

func TestAddExpense_RoundingDriftIsKept(t *testing.T) {
	l := newTestLedger()

	_, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "x",
		Amount:         10,
		PayerID:        "t1",
		ParticipantIDs: []string{"t1", "t2", "t3"},
	})
	require.NoError(t, err)

	var sum float64
	for _, s := range exp.Splits {
		assert.Equal(t, 10.0/3, s.Amount)
		sum += s.Amount
	}
	assert.InDelta(t, 10.0, sum, 1e-9)
}

func TestAddExpense_ReconcileMode(t *testing.T) {
	l := newTestLedger(WithSplitMode(SplitReconcile))
	assert.Equal(t, SplitReconcile, l.Mode())

	_, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "x",
		Amount:         10,
		PayerID:        "t1",
		ParticipantIDs: []string{"t1", "t2", "t3"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.34, exp.Splits[0].Amount, 1e-9)
	assert.InDelta(t, 3.33, exp.Splits[1].Amount, 1e-9)
	assert.InDelta(t, 3.33, exp.Splits[2].Amount, 1e-9)
}

func TestAddExpense_ReconcileRoundsAmountToCents(t *testing.T) {
	l := newTestLedger(WithSplitMode(SplitReconcile))
	travelers := roster

	for _, amount := range []float64{10.005, 0.004, 33.3333} {
		expenses, exp, err := l.AddExpense(nil, ExpenseInput{
			Description:    "x",
			Amount:         amount,
			PayerID:        "t1",
			ParticipantIDs: []string{"t1", "t2", "t3"},
		})
		require.NoError(t, err)

		var sum float64
		for _, s := range exp.Splits {
			sum += s.Amount
		}
		assert.InDelta(t, exp.Amount, sum, 1e-9, "amount %v", amount)

		var net float64
		for _, b := range ComputeBalances(travelers, expenses) {
			net += b
		}
		assert.InDelta(t, 0, net, 1e-9, "amount %v", amount)
	}
}

func TestAddExpense_NormalizesCurrency(t *testing.T) {
	l := newTestLedger()

	_, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "Tapas",
		Amount:         24,
		PayerID:        "t1",
		ParticipantIDs: []string{"t1", "t2"},
		Currency:       "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", exp.Currency)
}

func TestAddExpense_EmptyParticipants(t *testing.T) {
	l := newTestLedger()

	_, _, err := l.AddExpense(nil, ExpenseInput{Description: "x", Amount: 10, PayerID: "t1"})
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestAddExpense_DoesNotMutateInput(t *testing.T) {
	l := newTestLedger()

	first, _, err := l.AddExpense(nil, ExpenseInput{Description: "a", Amount: 10, PayerID: "t1", ParticipantIDs: []string{"t1"}})
	require.NoError(t, err)
	snapshot := models.CloneExpenses(first)

	second, _, err := l.AddExpense(first, ExpenseInput{Description: "b", Amount: 20, PayerID: "t2", ParticipantIDs: []string{"t2"}})
	require.NoError(t, err)

	assert.Equal(t, snapshot, first)
	require.Len(t, second, 2)
	assert.Equal(t, "a", second[0].Description)
	assert.Equal(t, "b", second[1].Description)

	second[0].Splits[0].Amount = 999
	assert.Equal(t, 10.0, first[0].Splits[0].Amount)
}

func TestAddExpense_PermissiveWithoutValidation(t *testing.T) {
	l := newTestLedger()

	expenses, exp, err := l.AddExpense(nil, ExpenseInput{
		Description:    "typo",
		Amount:         -5,
		PayerID:        "ghost",
		ParticipantIDs: []string{"t1", "nobody"},
	})
	require.NoError(t, err)
	assert.Equal(t, -5.0, exp.Amount)

	balances := ComputeBalances(roster, expenses)
	assert.Contains(t, balances, "ghost")
	assert.Contains(t, balances, "nobody")
	assert.InDelta(t, -5.0, balances["ghost"], 1e-9)
}

func TestDeleteExpense(t *testing.T) {
	l := newTestLedger()
	expenses, _, err := l.AddExpense(nil, ExpenseInput{Description: "a", Amount: 10, PayerID: "t1", ParticipantIDs: []string{"t1", "t2"}})
	require.NoError(t, err)
	expenses, _, err = l.AddExpense(expenses, ExpenseInput{Description: "b", Amount: 20, PayerID: "t2", ParticipantIDs: []string{"t1", "t2"}})
	require.NoError(t, err)

	t.Run("removes matching id", func(t *testing.T) {
		out := DeleteExpense(expenses, "e1")
		require.Len(t, out, 1)
		assert.Equal(t, "e2", out[0].ID)
		assert.Len(t, expenses, 2, "input must not be modified")
	})

	t.Run("absent id leaves list unchanged", func(t *testing.T) {
		out := DeleteExpense(expenses, "missing")
		assert.Equal(t, expenses, out)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, DeleteExpense(nil, "e1"))
	})
}

func TestComputeBalances(t *testing.T) {
	t.Run("every traveler present with no expenses", func(t *testing.T) {
		balances := ComputeBalances(roster, nil)
		assert.Equal(t, map[string]float64{"t1": 0, "t2": 0, "t3": 0}, balances)
	})

	t.Run("payer is charged own share", func(t *testing.T) {
		l := newTestLedger()
		expenses, _, err := l.AddExpense(nil, ExpenseInput{Description: "dinner", Amount: 100, PayerID: "t1", ParticipantIDs: []string{"t1", "t2"}})
		require.NoError(t, err)

		balances := ComputeBalances(roster[:2], expenses)
		assert.InDelta(t, 50.0, balances["t1"], 1e-9)
		assert.InDelta(t, -50.0, balances["t2"], 1e-9)
	})

	t.Run("payer outside participants gets full credit", func(t *testing.T) {
		l := newTestLedger()
		expenses, _, err := l.AddExpense(nil, ExpenseInput{Description: "gift", Amount: 60, PayerID: "t3", ParticipantIDs: []string{"t1", "t2"}})
		require.NoError(t, err)

		balances := ComputeBalances(roster, expenses)
		assert.InDelta(t, 60.0, balances["t3"], 1e-9)
		assert.InDelta(t, -30.0, balances["t1"], 1e-9)
		assert.InDelta(t, -30.0, balances["t2"], 1e-9)
	})

	t.Run("sample trip", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: "e1", Amount: 450, PayerID: "t1", Splits: []models.Split{{TravelerID: "t1", Amount: 225}, {TravelerID: "t2", Amount: 225}}},
			{ID: "e2", Amount: 80, PayerID: "t2", Splits: []models.Split{{TravelerID: "t1", Amount: 40}, {TravelerID: "t2", Amount: 40}}},
		}
		balances := ComputeBalances(roster[:2], expenses)
		assert.InDelta(t, 185.0, balances["t1"], 1e-9)
		assert.InDelta(t, -185.0, balances["t2"], 1e-9)
	})
}

func TestComputeBalances_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, mode := range []SplitMode{SplitEqual, SplitReconcile} {
		l := newTestLedger(WithSplitMode(mode))
		var expenses []models.Expense
		for i := 0; i < 200; i++ {
			var participants []string
			for _, tr := range roster {
				if rng.Intn(2) == 0 {
					participants = append(participants, tr.ID)
				}
			}
			if len(participants) == 0 {
				participants = []string{roster[rng.Intn(len(roster))].ID}
			}
			amount := float64(rng.Intn(100000)+1) / 100

			var err error
			expenses, _, err = l.AddExpense(expenses, ExpenseInput{
				Description:    "random",
				Amount:         amount,
				PayerID:        roster[rng.Intn(len(roster))].ID,
				ParticipantIDs: participants,
			})
			require.NoError(t, err)
		}

		var sum float64
		for _, v := range ComputeBalances(roster, expenses) {
			sum += v
		}
		assert.InDelta(t, 0.0, sum, 1e-6, "mode %s", mode)
	}
}

func TestTotalsAndAverage(t *testing.T) {
	assert.Equal(t, 0.0, TotalExpenses(nil))
	assert.Equal(t, 0.0, PerPersonAverage(TotalExpenses(nil), 0))
	assert.Equal(t, 0.0, PerPersonAverage(100, 0))

	expenses := []models.Expense{{Amount: 450}, {Amount: 80}}
	total := TotalExpenses(expenses)
	assert.Equal(t, 530.0, total)
	assert.Equal(t, 265.0, PerPersonAverage(total, 2))
}

func TestSummarize(t *testing.T) {
	l := newTestLedger()
	expenses, _, err := l.AddExpense(nil, ExpenseInput{Description: "dinner", Amount: 100, PayerID: "t1", ParticipantIDs: []string{"t1", "t2"}})
	require.NoError(t, err)
	expenses, _, err = l.AddExpense(expenses, ExpenseInput{Description: "stray", Amount: 10, PayerID: "t2", ParticipantIDs: []string{"zed"}})
	require.NoError(t, err)

	trip := &models.Trip{Travelers: roster, Expenses: expenses}
	summary := Summarize(trip)

	assert.Equal(t, 2, summary.ExpenseCount)
	assert.Equal(t, 110.0, summary.Total)
	assert.InDelta(t, 110.0/3, summary.PerPerson, 1e-9)

	require.Len(t, summary.Balances, 4)
	ids := make([]string, len(summary.Balances))
	for i, b := range summary.Balances {
		ids[i] = b.TravelerID
	}
	assert.Equal(t, []string{"t1", "t2", "t3", "zed"}, ids)

	alice := summary.Balances[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.InDelta(t, 100.0, alice.TotalPaid, 1e-9)
	assert.InDelta(t, 50.0, alice.TotalOwed, 1e-9)
	assert.InDelta(t, 50.0, alice.Balance, 1e-9)

	bob := summary.Balances[1]
	assert.InDelta(t, -40.0, bob.Balance, 1e-9)

	stray := summary.Balances[3]
	assert.Equal(t, models.UnknownTravelerName, stray.Name)
	assert.InDelta(t, -10.0, stray.Balance, 1e-9)
}
