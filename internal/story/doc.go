// Package story defines the request and response types of the story
// generation endpoint and the fixed instruction that wraps every prompt.
//
// A Response is a tagged union: it encodes either {"story": ...} or
// {"error": ...}, never both and never neither.
package story
