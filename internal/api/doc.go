// Package api implements the HTTP handlers of the story API.
//
// Handlers decode and validate requests, delegate to the service layer and
// map service errors to status codes through MapErrorToStatusCode and
// GetSafeErrorMessage so that internal details never reach the client.
package api
