package constants

const (
	ErrInvalidFlightID     = "Invalid flight ID"
	ErrFlightNotFound      = "Flight not found"
	ErrInvalidRequestBody  = "Invalid request body"
	ErrInvalidFlightData   = "Invalid flight data"
	ErrFetchFlights        = "Failed to fetch flights"
	ErrFetchFlight         = "Failed to fetch flight"
	ErrCreateFlight        = "Failed to create flight"
	ErrUpdateFlight        = "Failed to update flight"
	ErrDeleteFlight        = "Failed to delete flight"
	ErrInternalServer      = "Internal server error"
	ErrAPIEndpointNotFound = "API endpoint not found"
	ErrTooManyRequests     = "Too many requests"
)

const (
	MsgFlightIDNotNumber  = "Flight ID must be a number"
	MsgFlightNotFoundFmt  = "No flight found with ID %d"
	MsgSomethingWentWrong = "Something went wrong"
	MsgFlightDeleted      = "Flight deleted successfully"
	MsgEmptyUpdate        = "Update must include at least one field"
	MsgRateLimited        = "Rate limit exceeded, retry shortly"
)
