package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// FlightRepository implements FlightStore with one SQL statement per operation.
type FlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db}
}

func (r *FlightRepository) List(ctx context.Context) ([]entities.Flight, error) {
	var rows []flightRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.ListFlights)); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}

	flights := make([]entities.Flight, 0, len(rows))
	for i := range rows {
		flights = append(flights, *rows[i].toEntity())
	}
	return flights, nil
}

func (r *FlightRepository) GetByID(ctx context.Context, id int64) (*entities.Flight, error) {
	var row flightRow
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.GetFlightByID), id).StructScan(&row)
	if err != nil {
		return nil, notFoundOr(err, "get flight %d", id)
	}
	return row.toEntity(), nil
}

func (r *FlightRepository) Create(ctx context.Context, flight *entities.Flight) error {
	var row flightRow
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.InsertFlight),
		flight.FlightNumber,
		flight.Airline,
		flight.Origin,
		flight.Destination,
		flight.DepartureTime,
		flight.ArrivalTime,
		string(flight.Status),
		flight.Gate,
		flight.Terminal,
		flight.Aircraft,
		flight.Notes,
		flight.CreatedAt,
		flight.UpdatedAt,
	).StructScan(&row)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}

	*flight = *row.toEntity()
	return nil
}

func (r *FlightRepository) Update(ctx context.Context, id int64, in *dtos.FlightUpdateInput, updatedAt time.Time) (*entities.Flight, error) {
	cols := in.Columns()
	cols["updated_at"] = updatedAt

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		assignments = append(assignments, name+" = ?")
		args = append(args, cols[name])
	}
	args = append(args, id)

	query := fmt.Sprintf(constants.UpdateFlightTemplate, strings.Join(assignments, ", "))

	var row flightRow
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).StructScan(&row); err != nil {
		return nil, notFoundOr(err, "update flight %d", id)
	}
	return row.toEntity(), nil
}

func (r *FlightRepository) Delete(ctx context.Context, id int64) (*entities.Flight, error) {
	var row flightRow
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.DeleteFlight), id).StructScan(&row); err != nil {
		return nil, notFoundOr(err, "delete flight %d", id)
	}
	return row.toEntity(), nil
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFlightNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

type flightRow struct {
	ID            int64    `db:"id"`
	FlightNumber  string   `db:"flight_number"`
	Airline       string   `db:"airline"`
	Origin        string   `db:"origin"`
	Destination   string   `db:"destination"`
	DepartureTime scanTime `db:"departure_time"`
	ArrivalTime   scanTime `db:"arrival_time"`
	Status        string   `db:"status"`
	Gate          *string  `db:"gate"`
	Terminal      *string  `db:"terminal"`
	Aircraft      *string  `db:"aircraft"`
	Notes         *string  `db:"notes"`
	CreatedAt     scanTime `db:"created_at"`
	UpdatedAt     scanTime `db:"updated_at"`
}

func (r *flightRow) toEntity() *entities.Flight {
	return &entities.Flight{
		ID:            r.ID,
		FlightNumber:  r.FlightNumber,
		Airline:       r.Airline,
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureTime: r.DepartureTime.value,
		ArrivalTime:   r.ArrivalTime.value,
		Status:        entities.FlightStatus(r.Status),
		Gate:          r.Gate,
		Terminal:      r.Terminal,
		Aircraft:      r.Aircraft,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt.value,
		UpdatedAt:     r.UpdatedAt.value,
	}
}

// scanTime accepts the time.Time produced by lib/pq as well as the text
// SQLite returns for columns without a declared type, as in RETURNING lists.
type scanTime struct {
	value time.Time
}

func (t *scanTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.value = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return errors.New("scan timestamp: unexpected NULL")
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (t *scanTime) parse(s string) error {
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.value = parsed.UTC()
		return nil
	}
	trimmed := strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			t.value = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: cannot parse %q", s)
}
