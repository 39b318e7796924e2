package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrNoRoutesFound = New(
		"NO_ROUTES_FOUND",
		"No routes found",
		http.StatusNotFound,
	)

	ErrReportNotFound = New(
		"REPORT_NOT_FOUND",
		"Report not found",
		http.StatusNotFound,
	)

	ErrProviderFailure = New(
		"PROVIDER_FAILURE",
		"Routing provider request failed",
		http.StatusInternalServerError,
	)

	ErrStoreError = New(
		"STORE_ERROR",
		"Report store operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

var ErrTooManyRequests = New(
	"TOO_MANY_REQUESTS",
	"Rate limit exceeded, try again later",
	http.StatusTooManyRequests,
)
