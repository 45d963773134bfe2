package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	// TripServiceName is the fully-qualified name of the TripService service.
	TripServiceName = "tripkit.v1.TripService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "tripkit.v1.ExpenseService"
)

// Procedure paths, used for routing and in interceptors via Spec().Procedure.
const (
	TripServiceCreateTripProcedure       = "/tripkit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure          = "/tripkit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure        = "/tripkit.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure       = "/tripkit.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure       = "/tripkit.v1.TripService/DeleteTrip"
	ExpenseServiceAddExpenseProcedure    = "/tripkit.v1.ExpenseService/AddExpense"
	ExpenseServiceDeleteExpenseProcedure = "/tripkit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/tripkit.v1.ExpenseService/ListExpenses"
	ExpenseServiceGetBalancesProcedure   = "/tripkit.v1.ExpenseService/GetBalances"
)

// TripServiceHandler is implemented by the trip CRUD service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[emptypb.Empty], error)
}

// ExpenseServiceHandler is implemented by the expense ledger service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithCodec()}, opts...)
	createTrip := connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...)
	getTrip := connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...)
	listTrips := connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...)
	updateTrip := connect.NewUnaryHandler(TripServiceUpdateTripProcedure, svc.UpdateTrip, opts...)
	deleteTrip := connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...)
	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TripServiceCreateTripProcedure:
			createTrip.ServeHTTP(w, r)
		case TripServiceGetTripProcedure:
			getTrip.ServeHTTP(w, r)
		case TripServiceListTripsProcedure:
			listTrips.ServeHTTP(w, r)
		case TripServiceUpdateTripProcedure:
			updateTrip.ServeHTTP(w, r)
		case TripServiceDeleteTripProcedure:
			deleteTrip.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithCodec()}, opts...)
	addExpense := connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...)
	deleteExpense := connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	listExpenses := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...)
	getBalances := connect.NewUnaryHandler(ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts...)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceAddExpenseProcedure:
			addExpense.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			deleteExpense.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case ExpenseServiceGetBalancesProcedure:
			getBalances.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

var errUnimplemented = errors.New("procedure is not implemented")

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) UpdateTrip(context.Context, *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

// TripServiceClient is a client for the tripkit.v1.TripService service.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewTripServiceClient constructs a client for the tripkit.v1.TripService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithClientCodec()}, opts...)
	return &tripServiceClient{
		createTrip: connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:    connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:  connect.NewClient[emptypb.Empty, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		updateTrip: connect.NewClient[UpdateTripRequest, UpdateTripResponse](httpClient, baseURL+TripServiceUpdateTripProcedure, opts...),
		deleteTrip: connect.NewClient[DeleteTripRequest, emptypb.Empty](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip    *connect.Client[GetTripRequest, GetTripResponse]
	listTrips  *connect.Client[emptypb.Empty, ListTripsResponse]
	updateTrip *connect.Client[UpdateTripRequest, UpdateTripResponse]
	deleteTrip *connect.Client[DeleteTripRequest, emptypb.Empty]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for the tripkit.v1.ExpenseService service.
type ExpenseServiceClient interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
}

// NewExpenseServiceClient constructs a client for the
// tripkit.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithClientCodec()}, opts...)
	return &expenseServiceClient{
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		getBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+ExpenseServiceGetBalancesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
}

func (c *expenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}
