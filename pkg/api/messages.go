// Package api defines the tripkit wire contract: request and response
// messages plus Connect handlers and clients for TripService and
// ExpenseService.
package api

// Traveler is a trip participant on the wire.
type Traveler struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Split is one participant's share of an expense.
type Split struct {
	TravelerId string  `json:"traveler_id"`
	Amount     float64 `json:"amount"`
}

// Expense is an expense on the wire.
type Expense struct {
	Id             string   `json:"id"`
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	Date           string   `json:"date"`
	PayerId        string   `json:"payer_id"`
	ParticipantIds []string `json:"participant_ids"`
	Splits         []*Split `json:"splits"`
	Category       string   `json:"category"`
	CategoryLabel  string   `json:"category_label,omitempty"`
}

// Trip is a trip on the wire.
type Trip struct {
	Id          string      `json:"id"`
	Name        string      `json:"name"`
	Destination string      `json:"destination,omitempty"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Travelers   []*Traveler `json:"travelers"`
	Expenses    []*Expense  `json:"expenses"`
	CreatedAt   int64       `json:"created_at"`
}

// TripSummary is the list view of a trip.
type TripSummary struct {
	Id            string  `json:"id"`
	Name          string  `json:"name"`
	Destination   string  `json:"destination,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	TravelerCount int32   `json:"traveler_count"`
	TotalExpenses float64 `json:"total_expenses"`
	CreatedAt     int64   `json:"created_at"`
}

// TravelerBalance is one line of a balance sheet.
type TravelerBalance struct {
	TravelerId string  `json:"traveler_id"`
	Name       string  `json:"name"`
	NetBalance float64 `json:"net_balance"` // Positive = owed money, Negative = owes money
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
}

type CreateTripRequest struct {
	Name        string      `json:"name"`
	Destination string      `json:"destination,omitempty"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Travelers   []*Traveler `json:"travelers"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripId string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsResponse struct {
	Trips []*TripSummary `json:"trips"`
}

type UpdateTripRequest struct {
	TripId      string      `json:"trip_id"`
	Name        string      `json:"name"`
	Destination string      `json:"destination,omitempty"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Travelers   []*Traveler `json:"travelers"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripId string `json:"trip_id"`
}

type AddExpenseRequest struct {
	TripId         string   `json:"trip_id"`
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	PayerId        string   `json:"payer_id"`
	ParticipantIds []string `json:"participant_ids"`
	Category       string   `json:"category,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	Date           string   `json:"date,omitempty"`
}

type AddExpenseResponse struct {
	Expense  *Expense   `json:"expense"`
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	TripId    string `json:"trip_id"`
	ExpenseId string `json:"expense_id"`
}

type DeleteExpenseResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListExpensesRequest struct {
	TripId string `json:"trip_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	TripId string `json:"trip_id"`
}

type GetBalancesResponse struct {
	Balances      []*TravelerBalance `json:"balances"`
	TotalExpenses float64            `json:"total_expenses"`
	PerPerson     float64            `json:"per_person"`
	ExpenseCount  int32              `json:"expense_count"`
	SplitMode     string             `json:"split_mode"`
}
