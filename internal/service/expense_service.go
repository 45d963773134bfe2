package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripkit/internal/ledger"
	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
	"github.com/mmynk/tripkit/pkg/api"
)

// ExpenseRecorder is notified of ledger changes, e.g. to count them.
type ExpenseRecorder interface {
	ExpenseAdded(category string)
	ExpenseDeleted()
}

type nopRecorder struct{}

func (nopRecorder) ExpenseAdded(string) {}
func (nopRecorder) ExpenseDeleted()     {}

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	api.UnimplementedExpenseServiceHandler
	store    storage.Store
	ledger   *ledger.Ledger
	recorder ExpenseRecorder
}

// NewExpenseService creates a new ExpenseService. A nil recorder is allowed.
func NewExpenseService(store storage.Store, l *ledger.Ledger, recorder ExpenseRecorder) *ExpenseService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ExpenseService{store: store, ledger: l, recorder: recorder}
}

// AddExpense validates the expense against the trip roster, splits it and
// replaces the trip's expense list with one that includes it.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripId,
		"amount", req.Msg.Amount,
		"payer_id", req.Msg.PayerId,
		"participants_count", len(req.Msg.ParticipantIds),
	)

	in := ledger.ExpenseInput{
		Description:    req.Msg.Description,
		Amount:         req.Msg.Amount,
		PayerID:        req.Msg.PayerId,
		ParticipantIDs: req.Msg.ParticipantIds,
		Category:       req.Msg.Category,
		Currency:       req.Msg.Currency,
		Date:           req.Msg.Date,
	}

	var added models.Expense
	expenses, err := s.store.UpdateExpenses(ctx, req.Msg.TripId, func(trip *models.Trip) ([]models.Expense, error) {
		if err := ledger.ValidateExpense(trip.Travelers, in); err != nil {
			return nil, err
		}
		out, expense, err := s.ledger.AddExpense(trip.Expenses, in)
		if err != nil {
			return nil, err
		}
		added = expense
		return out, nil
	})
	if err != nil {
		slog.Error("AddExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	s.recorder.ExpenseAdded(added.Category.String())
	slog.Info("Expense added",
		"trip_id", req.Msg.TripId,
		"expense_id", added.ID,
		"split_mode", s.ledger.Mode(),
	)

	return connect.NewResponse(&api.AddExpenseResponse{
		Expense:  toProtoExpense(added),
		Expenses: toProtoExpenses(expenses),
	}), nil
}

// DeleteExpense removes an expense. Deleting an unknown expense ID succeeds
// and returns the unchanged list.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received",
		"trip_id", req.Msg.TripId,
		"expense_id", req.Msg.ExpenseId,
	)

	if req.Msg.ExpenseId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	removed := false
	expenses, err := s.store.UpdateExpenses(ctx, req.Msg.TripId, func(trip *models.Trip) ([]models.Expense, error) {
		out := ledger.DeleteExpense(trip.Expenses, req.Msg.ExpenseId)
		removed = len(out) < len(trip.Expenses)
		return out, nil
	})
	if err != nil {
		slog.Error("DeleteExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	if removed {
		s.recorder.ExpenseDeleted()
		slog.Info("Expense deleted", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)
	} else {
		slog.Debug("DeleteExpense: no such expense", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{
		Expenses: toProtoExpenses(expenses),
	}), nil
}

// ListExpenses returns a trip's expenses in insertion order.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "trip_id", req.Msg.TripId)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: toProtoExpenses(trip.Expenses),
	}), nil
}

// GetBalances derives per-traveler balances and totals from the stored
// expense list.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	tripID := req.Msg.TripId
	slog.Info("GetBalances request received", "trip_id", tripID)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Error("GetBalances failed - trip not found", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}

	summary := ledger.Summarize(trip)

	slog.Info("GetBalances successful",
		"trip_id", tripID,
		"expenses_count", summary.ExpenseCount,
		"balances_count", len(summary.Balances),
		"total", summary.Total,
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:      toProtoBalances(summary.Balances),
		TotalExpenses: summary.Total,
		PerPerson:     summary.PerPerson,
		ExpenseCount:  int32(summary.ExpenseCount),
		SplitMode:     string(s.ledger.Mode()),
	}), nil
}
