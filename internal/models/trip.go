package models

// Traveler is a participant in a trip.
type Traveler struct {
	// ID is the unique, stable identifier for the traveler within the trip.
	ID string

	// Name is the display name of the traveler.
	Name string

	// Email is optional contact information.
	Email string
}

// Trip is the aggregate root for a planned trip.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the human-readable name (e.g., "Weekend in Lisbon").
	Name string

	// Destination is a free-form place description.
	Destination string

	// StartDate and EndDate use DateLayout. Either may be empty.
	StartDate string
	EndDate   string

	// Notes is free-form text attached to the trip.
	Notes string

	// Travelers is the trip roster in display order.
	Travelers []Traveler

	// Expenses is the ordered expense list. Order is insertion order and has
	// no meaning beyond display.
	Expenses []Expense

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// HasTraveler reports whether id is on the trip roster.
func (t *Trip) HasTraveler(id string) bool {
	for _, tr := range t.Travelers {
		if tr.ID == id {
			return true
		}
	}
	return false
}

// TravelerName returns the roster name for id, or "Unknown".
func (t *Trip) TravelerName(id string) string {
	for _, tr := range t.Travelers {
		if tr.ID == id {
			return tr.Name
		}
	}
	return UnknownTravelerName
}

// UnknownTravelerName is displayed for IDs that are not on the roster.
const UnknownTravelerName = "Unknown"
