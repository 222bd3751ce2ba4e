package constants

type (
	APIStatus   string
	CachePrefix string
	EventType   string
)

const (
	APIStatusOk   APIStatus = "ok"
	APIStatusDown APIStatus = "down"

	CachePrefixFlights CachePrefix = "flights:"

	EventFlightCreated EventType = "flight.created"
	EventFlightUpdated EventType = "flight.updated"
	EventFlightDeleted EventType = "flight.deleted"
)

// FlightListCacheKey holds the JSON encoded list served by GET /api/flights.
const FlightListCacheKey = string(CachePrefixFlights) + "list"
