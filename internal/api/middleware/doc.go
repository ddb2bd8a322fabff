// Package middleware provides HTTP middleware for the story API.
package middleware
