package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tripkit/internal/ledger"
	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
	"github.com/mmynk/tripkit/pkg/api"
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var verr *ledger.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &verr), errors.Is(err, ledger.ErrNoParticipants):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toProtoTrip(trip *models.Trip) *api.Trip {
	return &api.Trip{
		Id:          trip.ID,
		Name:        trip.Name,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Notes:       trip.Notes,
		Travelers:   toProtoTravelers(trip.Travelers),
		Expenses:    toProtoExpenses(trip.Expenses),
		CreatedAt:   trip.CreatedAt,
	}
}

func toProtoTripSummary(trip *models.Trip) *api.TripSummary {
	return &api.TripSummary{
		Id:            trip.ID,
		Name:          trip.Name,
		Destination:   trip.Destination,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		TravelerCount: int32(len(trip.Travelers)),
		TotalExpenses: ledger.TotalExpenses(trip.Expenses),
		CreatedAt:     trip.CreatedAt,
	}
}

func toProtoTravelers(travelers []models.Traveler) []*api.Traveler {
	out := make([]*api.Traveler, len(travelers))
	for i, t := range travelers {
		out[i] = &api.Traveler{Id: t.ID, Name: t.Name, Email: t.Email}
	}
	return out
}

func fromProtoTravelers(travelers []*api.Traveler) []models.Traveler {
	out := make([]models.Traveler, 0, len(travelers))
	for _, t := range travelers {
		if t == nil {
			continue
		}
		out = append(out, models.Traveler{ID: t.Id, Name: t.Name, Email: t.Email})
	}
	return out
}

func toProtoExpense(e models.Expense) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &api.Split{TravelerId: s.TravelerID, Amount: s.Amount}
	}
	return &api.Expense{
		Id:             e.ID,
		Description:    e.Description,
		Amount:         e.Amount,
		Currency:       e.Currency,
		Date:           e.Date,
		PayerId:        e.PayerID,
		ParticipantIds: append([]string{}, e.ParticipantIDs...),
		Splits:         splits,
		Category:       e.Category.String(),
		CategoryLabel:  e.Category.Label(),
	}
}

func toProtoExpenses(expenses []models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toProtoExpense(e)
	}
	return out
}

func toProtoBalances(balances []ledger.TravelerBalance) []*api.TravelerBalance {
	out := make([]*api.TravelerBalance, len(balances))
	for i, b := range balances {
		out[i] = &api.TravelerBalance{
			TravelerId: b.TravelerID,
			Name:       b.Name,
			NetBalance: b.Balance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		}
	}
	return out
}
