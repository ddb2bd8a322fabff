package generation

import "context"

// Generator defines the interface for producing text from a prompt.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate sends text to the language model, bounding the output to
	// maxTokens, and returns the generated text.
	//
	// The returned text is extracted best-effort and may be empty when the
	// upstream answer lacks the expected fields. A non-success upstream
	// status is reported as an *UpstreamError; transport problems wrap
	// ErrTransportFailure and undecodable bodies wrap ErrInvalidResponse.
	Generate(ctx context.Context, text string, maxTokens int) (string, error)
}
