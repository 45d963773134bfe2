package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmynk/tripkit/pkg/api"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTripSummaries(w io.Writer, trips []*api.TripSummary) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No trips.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDESTINATION\tDATES\tTRAVELERS\tTOTAL")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\n",
			t.Id, t.Name, t.Destination, dateRange(t.StartDate, t.EndDate), t.TravelerCount, t.TotalExpenses)
	}
	tw.Flush()
}

func printTrip(w io.Writer, trip *api.Trip) {
	fmt.Fprintf(w, "Trip %s: %s\n", trip.Id, trip.Name)
	if trip.Destination != "" {
		fmt.Fprintf(w, "Destination: %s\n", trip.Destination)
	}
	if d := dateRange(trip.StartDate, trip.EndDate); d != "" {
		fmt.Fprintf(w, "Dates: %s\n", d)
	}
	if trip.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", trip.Notes)
	}

	fmt.Fprintln(w, "Travelers:")
	for _, t := range trip.Travelers {
		fmt.Fprintf(w, "  %s  %s\n", t.Id, t.Name)
	}
	if len(trip.Expenses) > 0 {
		fmt.Fprintln(w, "Expenses:")
		printExpenses(w, trip.Expenses)
	}
}

func printExpenses(w io.Writer, expenses []*api.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tPAYER\tPARTICIPANTS")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f %s\t%s\t%d\n",
			e.Id, e.Date, e.Description, e.Category, e.Amount, e.Currency, e.PayerId, len(e.ParticipantIds))
	}
	tw.Flush()
}

func printBalances(w io.Writer, resp *api.GetBalancesResponse) {
	tw := newTable(w)
	fmt.Fprintln(tw, "TRAVELER\tNAME\tPAID\tOWED\tBALANCE")
	for _, b := range resp.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%+.2f\n", b.TravelerId, b.Name, b.TotalPaid, b.TotalOwed, b.NetBalance)
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %.2f across %d expense(s), %.2f per person (%s split)\n",
		resp.TotalExpenses, resp.ExpenseCount, resp.PerPerson, resp.SplitMode)
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "from " + start
	case end != "":
		return "until " + end
	}
	return ""
}
