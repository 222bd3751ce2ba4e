package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flight-tracker/flightboard/internal/board"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/spf13/cobra"
)

func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient(cmd).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s) at %s\n", health.Status, health.Environment, health.Timestamp)
			return nil
		},
	}
}

func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List flights, latest departure first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flights, err := apiClient(cmd).ListFlights(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list flights: %w", err)
			}
			if len(flights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No flights found")
				return nil
			}
			renderFlights(cmd.OutOrStdout(), flights)
			return nil
		},
	}
}

func GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flight, err := apiClient(cmd).GetFlight(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get flight: %w", err)
			}
			renderFlight(cmd.OutOrStdout(), flight)
			return nil
		},
	}
}

func addFlightFlags(cmd *cobra.Command) {
	cmd.Flags().String("number", "", "flight number, e.g. AA100")
	cmd.Flags().String("airline", "", "airline name")
	cmd.Flags().String("origin", "", "origin airport")
	cmd.Flags().String("destination", "", "destination airport")
	cmd.Flags().String("departure", "", "departure time (RFC 3339)")
	cmd.Flags().String("arrival", "", "arrival time (RFC 3339)")
	cmd.Flags().String("status", "", "status: "+statusNames())
	cmd.Flags().String("gate", "", "gate")
	cmd.Flags().String("terminal", "", "terminal")
	cmd.Flags().String("aircraft", "", "aircraft type")
	cmd.Flags().String("notes", "", "free-form notes")
}

func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a flight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := board.NewDraft()
			if err := applyDraftFlags(cmd, &draft); err != nil {
				return err
			}

			b := board.New(apiClient(cmd))
			b.OpenCreate()
			b.SetDraft(draft)
			flight, err := b.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to create flight: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created flight %d: %s\n", flight.ID, flight.FlightNumber)
			return nil
		},
	}
	addFlightFlags(cmd)
	for _, name := range []string{"number", "airline", "origin", "destination", "departure", "arrival"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change fields of a flight; only fields that differ are sent",
		Long: `Change fields of a flight. Only the flags given are applied, and only
values that differ from the stored flight are sent. Passing an empty value
for --gate, --terminal, --aircraft or --notes clears it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !anyFlightFlagChanged(cmd) {
				return fmt.Errorf("nothing to update\nHint: pass at least one of --status, --gate, --departure, ...")
			}

			api := apiClient(cmd)
			current, err := api.GetFlight(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get flight: %w", err)
			}

			b := board.New(api)
			b.OpenEdit(*current)
			draft := b.State().Draft
			if err := applyDraftFlags(cmd, &draft); err != nil {
				return err
			}
			b.SetDraft(draft)

			if draft.UpdateInput(*current).IsEmpty() {
				b.CloseModal()
				fmt.Fprintf(cmd.OutOrStdout(), "No changes to flight %d: %s\n", current.ID, current.FlightNumber)
				return nil
			}

			flight, err := b.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to update flight: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated flight %d: %s\n", flight.ID, flight.FlightNumber)
			renderFlight(cmd.OutOrStdout(), flight)
			return nil
		},
	}
	addFlightFlags(cmd)
	return cmd
}

var flightFlags = []string{
	"number", "airline", "origin", "destination", "departure", "arrival",
	"status", "gate", "terminal", "aircraft", "notes",
}

func anyFlightFlagChanged(cmd *cobra.Command) bool {
	for _, name := range flightFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyDraftFlags copies every flag the user gave onto the draft.
func applyDraftFlags(cmd *cobra.Command, d *board.Draft) error {
	strs := map[string]*string{
		"number":      &d.FlightNumber,
		"airline":     &d.Airline,
		"origin":      &d.Origin,
		"destination": &d.Destination,
		"gate":        &d.Gate,
		"terminal":    &d.Terminal,
		"aircraft":    &d.Aircraft,
		"notes":       &d.Notes,
	}
	for name, dst := range strs {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}

	times := map[string]*time.Time{"departure": &d.DepartureTime, "arrival": &d.ArrivalTime}
	for name, dst := range times {
		if !cmd.Flags().Changed(name) {
			continue
		}
		t, err := timeFlag(cmd, name)
		if err != nil {
			return err
		}
		*dst = t
	}

	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		status, err := parseStatus(v)
		if err != nil {
			return err
		}
		d.Status = status
	}
	return nil
}

func DeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			api := apiClient(cmd)
			flight, err := api.GetFlight(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get flight: %w", err)
			}

			confirm := func(f entities.Flight) bool {
				if skipConfirm {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete flight %s (%s → %s)? [y/N]: ", f.FlightNumber, f.Origin, f.Destination)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				return answer == "y" || answer == "yes"
			}

			deleted, err := board.New(api).Delete(cmd.Context(), *flight, confirm)
			if err != nil {
				return fmt.Errorf("failed to delete flight: %w", err)
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted flight %d: %s\n", flight.ID, flight.FlightNumber)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid flight id %q: must be a number", s)
	}
	return id, nil
}

func parseStatus(s string) (entities.FlightStatus, error) {
	status := entities.FlightStatus(strings.ToLower(s))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status: %s\nValid statuses: %s", s, statusNames())
	}
	return status, nil
}

func statusNames() string {
	names := make([]string, len(entities.FlightStatuses))
	for i, s := range entities.FlightStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func timeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected RFC 3339, e.g. 2024-01-01T10:00:00Z", name, v)
	}
	return t, nil
}
