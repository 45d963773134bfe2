package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/tripkit/internal/models"
	"github.com/mmynk/tripkit/internal/storage"
	"github.com/mmynk/tripkit/pkg/api"
)

// TripService implements the Connect TripService
type TripService struct {
	api.UnimplementedTripServiceHandler
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip creates a new trip with its traveler roster.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"travelers_count", len(req.Msg.Travelers),
	)

	if strings.TrimSpace(req.Msg.Name) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}

	trip := &models.Trip{
		Name:        strings.TrimSpace(req.Msg.Name),
		Destination: req.Msg.Destination,
		StartDate:   req.Msg.StartDate,
		EndDate:     req.Msg.EndDate,
		Notes:       req.Msg.Notes,
		Travelers:   fromProtoTravelers(req.Msg.Travelers),
	}
	if err := validateDates(trip.StartDate, trip.EndDate); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := validateTravelerIDs(trip.Travelers); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID)

	return connect.NewResponse(&api.CreateTripResponse{Trip: toProtoTrip(trip)}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripId)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: toProtoTrip(trip)}), nil
}

// ListTrips retrieves all trips.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[api.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]*api.TripSummary, len(trips))
	for i, trip := range trips {
		summaries[i] = toProtoTripSummary(trip)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{Trips: summaries}), nil
}

// UpdateTrip replaces a trip's details and roster.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received",
		"trip_id", req.Msg.TripId,
		"travelers_count", len(req.Msg.Travelers),
	)

	if req.Msg.TripId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}
	if strings.TrimSpace(req.Msg.Name) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}

	trip := &models.Trip{
		ID:          req.Msg.TripId,
		Name:        strings.TrimSpace(req.Msg.Name),
		Destination: req.Msg.Destination,
		StartDate:   req.Msg.StartDate,
		EndDate:     req.Msg.EndDate,
		Notes:       req.Msg.Notes,
		Travelers:   fromProtoTravelers(req.Msg.Travelers),
	}
	if err := validateDates(trip.StartDate, trip.EndDate); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := validateTravelerIDs(trip.Travelers); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	// Fetch updated trip to get CreatedAt and expenses
	updated, err := s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		slog.Error("Failed to fetch updated trip", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip updated", "trip_id", trip.ID)

	return connect.NewResponse(&api.UpdateTripResponse{Trip: toProtoTrip(updated)}), nil
}

// DeleteTrip removes a trip by ID.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripId)

	if err := s.store.DeleteTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripId)

	return connect.NewResponse(&emptypb.Empty{}), nil
}

// validateDates checks optional trip dates and their order.
func validateDates(start, end string) error {
	var startT, endT time.Time
	var err error
	if start != "" {
		if startT, err = time.Parse(models.DateLayout, start); err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
		}
	}
	if end != "" {
		if endT, err = time.Parse(models.DateLayout, end); err != nil {
			return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
		}
	}
	if start != "" && end != "" && endT.Before(startT) {
		return fmt.Errorf("end_date %s is before start_date %s", end, start)
	}
	return nil
}

// validateTravelerIDs rejects a roster that repeats a traveler ID. Empty IDs
// are assigned by the store and are not compared.
func validateTravelerIDs(travelers []models.Traveler) error {
	seen := make(map[string]bool, len(travelers))
	for _, t := range travelers {
		if t.ID == "" {
			continue
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate traveler id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
