package errors

import "net/http"

// Error code constants.
// Errors carry code + params; clients decide presentation.

// Planet error codes.
const (
	CodePlanetNotFound   = "PLANET_NOT_FOUND"
	CodePlanetCreateFail = "PLANET_CREATION_FAILED"
	CodePlanetUpdateFail = "PLANET_UPDATE_FAILED"
	CodePlanetDeleteFail = "PLANET_DELETION_FAILED"
)

// User error codes.
const (
	CodeUserNotFound = "USER_NOT_FOUND"
)

// Access error codes.
const (
	CodeAccessDenied = "ACCESS_DENIED"
)

// Habitability error codes.
const (
	CodeNoPlanetsAvailable = "NO_PLANETS_AVAILABLE"
	CodeBatchLimitExceeded = "BATCH_LIMIT_EXCEEDED"
	CodeBatchEmpty         = "BATCH_EMPTY"
)

// Auth error codes.
const (
	CodeAuthFailed   = "AUTH_FAILED"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

// Validation error codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

// Convenience constructors using predefined codes.

// ErrPlanetNotFoundOrDenied creates the conflated not-found/denied error.
// Read paths deliberately do not distinguish a missing planet from a
// forbidden one, so callers cannot probe which ids exist.
func ErrPlanetNotFoundOrDenied(planetID int) *AppError {
	return (&AppError{
		Code:       CodePlanetNotFound,
		Message:    "planet not found or access denied",
		HTTPStatus: http.StatusNotFound,
	}).WithParams(map[string]interface{}{"planet_id": planetID})
}

// ErrUserNotFound creates a user not found error.
func ErrUserNotFound(userID int) *AppError {
	return (&AppError{
		Code:       CodeUserNotFound,
		Message:    "user not found",
		HTTPStatus: http.StatusNotFound,
	}).WithParams(map[string]interface{}{"user_id": userID})
}

// ErrAccessDenied creates a 403 access denied error.
func ErrAccessDenied() *AppError {
	return &AppError{
		Code:       CodeAccessDenied,
		Message:    "insufficient permissions",
		HTTPStatus: http.StatusForbidden,
	}
}

// ErrNoPlanetsAvailable creates the empty-result-set error for
// most-habitable queries.
func ErrNoPlanetsAvailable() *AppError {
	return &AppError{
		Code:       CodeNoPlanetsAvailable,
		Message:    "no accessible planets available for habitability evaluation",
		HTTPStatus: http.StatusNotFound,
	}
}
