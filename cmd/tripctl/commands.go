package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/tripkit/pkg/api"
)

type clients struct {
	trips    api.TripServiceClient
	expenses api.ExpenseServiceClient
}

func newClients(server string) clients {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return clients{
		trips:    api.NewTripServiceClient(httpClient, server),
		expenses: api.NewExpenseServiceClient(httpClient, server),
	}
}

// newRootCmd builds the tripctl command tree writing results to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var server string
	c := func() clients { return newClients(server) }

	rootCmd := &cobra.Command{
		Use:          "tripctl",
		Short:        "Manage trips and shared expenses on a tripkit server",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "tripkit server base URL")

	tripsCmd := &cobra.Command{
		Use:   "trips",
		Short: "Create, inspect and delete trips",
	}
	tripsCmd.AddCommand(
		newTripsListCmd(c),
		newTripsCreateCmd(c),
		newTripsGetCmd(c),
		newTripsDeleteCmd(c),
	)

	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and remove shared expenses",
	}
	expensesCmd.AddCommand(
		newExpensesAddCmd(c),
		newExpensesDeleteCmd(c),
		newExpensesListCmd(c),
	)

	rootCmd.AddCommand(tripsCmd, expensesCmd, newBalancesCmd(c))
	return rootCmd
}

func newTripsListCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().trips.ListTrips(cmd.Context(), connect.NewRequest(&emptypb.Empty{}))
			if err != nil {
				return err
			}
			printTripSummaries(cmd.OutOrStdout(), resp.Msg.Trips)
			return nil
		},
	}
}

func newTripsCreateCmd(c func() clients) *cobra.Command {
	var (
		destination string
		startDate   string
		endDate     string
		notes       string
		travelers   []string
	)
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a trip",
		Long: `Create a trip. Travelers are given as --traveler id=name or just
--traveler name, in which case the server assigns the id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := parseTravelers(travelers)
			if err != nil {
				return err
			}
			resp, err := c().trips.CreateTrip(cmd.Context(), connect.NewRequest(&api.CreateTripRequest{
				Name:        args[0],
				Destination: destination,
				StartDate:   startDate,
				EndDate:     endDate,
				Notes:       notes,
				Travelers:   roster,
			}))
			if err != nil {
				return err
			}
			printTrip(cmd.OutOrStdout(), resp.Msg.Trip)
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "trip destination")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&travelers, "traveler", nil, "traveler as id=name or name (repeatable)")
	return cmd
}

func newTripsGetCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "get [trip-id]",
		Short: "Show a trip with its travelers and expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().trips.GetTrip(cmd.Context(), connect.NewRequest(&api.GetTripRequest{TripId: args[0]}))
			if err != nil {
				return err
			}
			printTrip(cmd.OutOrStdout(), resp.Msg.Trip)
			return nil
		},
	}
}

func newTripsDeleteCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [trip-id]",
		Short: "Delete a trip and its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c().trips.DeleteTrip(cmd.Context(), connect.NewRequest(&api.DeleteTripRequest{TripId: args[0]})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s\n", args[0])
			return nil
		},
	}
}

func newExpensesAddCmd(c func() clients) *cobra.Command {
	var (
		amount       float64
		payer        string
		participants []string
		category     string
		currency     string
		date         string
	)
	cmd := &cobra.Command{
		Use:   "add [trip-id] [description]",
		Short: "Add an expense split equally among participants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().expenses.AddExpense(cmd.Context(), connect.NewRequest(&api.AddExpenseRequest{
				TripId:         args[0],
				Description:    args[1],
				Amount:         amount,
				PayerId:        payer,
				ParticipantIds: participants,
				Category:       category,
				Currency:       currency,
				Date:           date,
			}))
			if err != nil {
				return err
			}
			printExpenses(cmd.OutOrStdout(), []*api.Expense{resp.Msg.Expense})
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "total amount")
	cmd.Flags().StringVar(&payer, "payer", "", "traveler id of the payer")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "comma-separated traveler ids sharing the cost")
	cmd.Flags().StringVar(&category, "category", "", "accommodation, food, transport, activities, shopping or other")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code (default USD)")
	cmd.Flags().StringVar(&date, "date", "", "expense date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("payer")
	_ = cmd.MarkFlagRequired("participants")
	return cmd
}

func newExpensesDeleteCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [trip-id] [expense-id]",
		Short: "Remove an expense from a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().expenses.DeleteExpense(cmd.Context(), connect.NewRequest(&api.DeleteExpenseRequest{
				TripId:    args[0],
				ExpenseId: args[1],
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d expense(s) remaining\n", len(resp.Msg.Expenses))
			return nil
		},
	}
}

func newExpensesListCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "list [trip-id]",
		Short: "List a trip's expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().expenses.ListExpenses(cmd.Context(), connect.NewRequest(&api.ListExpensesRequest{TripId: args[0]}))
			if err != nil {
				return err
			}
			printExpenses(cmd.OutOrStdout(), resp.Msg.Expenses)
			return nil
		},
	}
}

func newBalancesCmd(c func() clients) *cobra.Command {
	return &cobra.Command{
		Use:   "balances [trip-id]",
		Short: "Show who owes and who is owed on a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c().expenses.GetBalances(cmd.Context(), connect.NewRequest(&api.GetBalancesRequest{TripId: args[0]}))
			if err != nil {
				return err
			}
			printBalances(cmd.OutOrStdout(), resp.Msg)
			return nil
		},
	}
}

// parseTravelers turns id=name or name flags into wire travelers.
func parseTravelers(flags []string) ([]*api.Traveler, error) {
	out := make([]*api.Traveler, 0, len(flags))
	for _, f := range flags {
		id, name, found := strings.Cut(f, "=")
		if !found {
			id, name = "", f
		}
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("traveler %q has no name", f)
		}
		out = append(out, &api.Traveler{Id: id, Name: name})
	}
	return out, nil
}
