package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/story-api/internal/generation"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Upstream rejections never reach this function: the service turns them
// into a failure response.
func MapErrorToStatusCode(err error) int {
	switch {
	// Upstream did not answer in time
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Upstream unreachable or answered with garbage
	case errors.Is(err, generation.ErrTransportFailure),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Story generation timed out"

	case errors.Is(err, generation.ErrInvalidResponse):
		return "Invalid response from story generator"

	case errors.Is(err, generation.ErrTransportFailure):
		return "Story generator unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeDecodeError turns a JSON decoding error into a message that names
// the offending field without echoing the request body.
func SanitizeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("Invalid %s: expected %s", typeErr.Field, typeErr.Type.String())
	case errors.As(err, &maxBytesErr):
		return "Request body too large"
	case errors.Is(err, io.EOF):
		return "Request body is empty"
	default:
		return "Invalid request format"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), getValidationTagMessage(fieldErr.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
