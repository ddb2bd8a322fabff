// Package generation provides the boundary between the application and
// external AI/LLM text generation services. It defines the Generator
// interface implemented by the Gemini adapters and the errors they return,
// so the story service never depends on a specific upstream client.
package generation
