// Package shared holds the request decoding, response writing and trace-ID
// helpers used by the API handlers and middleware.
package shared
