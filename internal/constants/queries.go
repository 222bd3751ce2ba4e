package constants

// Flight queries use ? placeholders; repositories rebind them for the active driver.
const (
	FlightColumns = `id, flight_number, airline, origin, destination, departure_time, arrival_time,
	status, gate, terminal, aircraft, notes, created_at, updated_at`

	ListFlights = `
	SELECT ` + FlightColumns + `
	FROM flights
	ORDER BY departure_time DESC, id DESC
	`

	GetFlightByID = `
	SELECT ` + FlightColumns + `
	FROM flights WHERE id = ?
	`

	InsertFlight = `
	INSERT INTO flights (
		flight_number, airline, origin, destination, departure_time, arrival_time,
		status, gate, terminal, aircraft, notes, created_at, updated_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING ` + FlightColumns

	// UpdateFlightTemplate receives the SET list built from the supplied fields.
	UpdateFlightTemplate = `
	UPDATE flights SET %s
	WHERE id = ?
	RETURNING ` + FlightColumns

	DeleteFlight = `
	DELETE FROM flights WHERE id = ?
	RETURNING ` + FlightColumns

	PingQuery = `SELECT 1`
)
