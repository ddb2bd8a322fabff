// Package mocks provides centralized mock implementations for testing.
//
// Usage:
//
//	import "github.com/phrazzld/story-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := mocks.NewMockGeneratorWithText("Once upon a time...")
//	    // Use the mock in your test...
//	}
package mocks
