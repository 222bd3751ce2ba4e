package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"flight-tracker/flightboard/internal/board"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/fatih/color"
)

const timeLayout = "Jan 02 2006 15:04"

// statusColor maps each status onto the badge colors of the web board.
func statusColor(status entities.FlightStatus) string {
	label := fmt.Sprintf("%-9s", strings.ToUpper(string(status)))
	switch status {
	case entities.FlightStatusScheduled:
		return color.New(color.FgBlue).Sprint(label)
	case entities.FlightStatusBoarding:
		return color.New(color.FgYellow).Sprint(label)
	case entities.FlightStatusDeparted, entities.FlightStatusInFlight:
		return color.New(color.FgGreen).Sprint(label)
	case entities.FlightStatusArrived:
		return color.New(color.FgHiBlack).Sprint(label)
	case entities.FlightStatusDelayed:
		return color.New(color.FgMagenta).Sprint(label)
	case entities.FlightStatusCancelled:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func renderFlights(out io.Writer, flights []entities.Flight) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tID\tFLIGHT\tAIRLINE\tROUTE\tDEPARTURE\tARRIVAL\tGATE\tTERMINAL\tAIRCRAFT")
	fmt.Fprintln(w, "------\t--\t------\t-------\t-----\t---------\t-------\t----\t--------\t--------")
	for _, f := range flights {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s → %s\t%s\t%s\t%s\t%s\t%s\n",
			statusColor(f.Status),
			f.ID,
			f.FlightNumber,
			f.Airline,
			f.Origin,
			f.Destination,
			formatTime(f.DepartureTime),
			formatTime(f.ArrivalTime),
			orDash(f.Gate),
			orDash(f.Terminal),
			orDash(f.Aircraft),
		)
	}
	w.Flush()
}

func renderFlight(out io.Writer, f *entities.Flight) {
	fmt.Fprintf(out, "%s  %s\n", color.New(color.Bold).Sprint(f.FlightNumber), statusColor(f.Status))
	fmt.Fprintf(out, "  ID:        %d\n", f.ID)
	fmt.Fprintf(out, "  Airline:   %s\n", f.Airline)
	fmt.Fprintf(out, "  From:      %s\n", f.Origin)
	fmt.Fprintf(out, "  To:        %s\n", f.Destination)
	fmt.Fprintf(out, "  Departure: %s\n", formatTime(f.DepartureTime))
	fmt.Fprintf(out, "  Arrival:   %s\n", formatTime(f.ArrivalTime))
	fmt.Fprintf(out, "  Gate:      %s\n", orDash(f.Gate))
	fmt.Fprintf(out, "  Terminal:  %s\n", orDash(f.Terminal))
	fmt.Fprintf(out, "  Aircraft:  %s\n", orDash(f.Aircraft))
	if f.Notes != nil && *f.Notes != "" {
		fmt.Fprintf(out, "  Notes:     %s\n", *f.Notes)
	}
	fmt.Fprintf(out, "  Updated:   %s\n", formatTime(f.UpdatedAt))
}

// renderBoard draws whichever single view the board state selects.
func renderBoard(out io.Writer, s board.State, now time.Time) {
	fmt.Fprintf(out, "%s  %s\n\n",
		color.New(color.Bold).Sprint("Flight Tracker"),
		color.New(color.FgHiBlack).Sprintf("updated %s", now.Format("15:04:05")))

	switch s.View() {
	case board.ViewLoading:
		fmt.Fprintln(out, "Loading flights...")
	case board.ViewError:
		fmt.Fprintln(out, color.New(color.FgRed, color.Bold).Sprint("Error Loading Flights"))
		fmt.Fprintln(out, color.New(color.FgRed).Sprint(s.LoadErr.Error()))
		fmt.Fprintln(out, "Retrying on the next poll. Type r and Enter to retry now.")
	case board.ViewEmpty:
		fmt.Fprintln(out, "No flights found")
		fmt.Fprintln(out, "There are no flights in the system yet.")
	case board.ViewList:
		renderFlights(out, s.Flights)
	}
	fmt.Fprintln(out, color.New(color.FgHiBlack).Sprint("\nr: refresh  q: quit"))
}
