package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/redact"
	"github.com/phrazzld/story-api/internal/story"
)

// StoryService provides story generation.
type StoryService interface {
	// GenerateStory produces a story.Response for req.
	//
	// An upstream rejection is not an error: it comes back as a Failure
	// response holding the upstream body. A non-nil error means the upstream
	// call itself could not complete (see generation.ErrTransportFailure and
	// generation.ErrInvalidResponse).
	GenerateStory(ctx context.Context, req story.Request) (story.Response, error)
}

// StoryServiceError wraps errors from the story service with context.
type StoryServiceError struct {
	// Operation is the operation that failed (e.g., "generate_story")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for StoryServiceError.
func (e *StoryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("story service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("story service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoryServiceError) Unwrap() error {
	return e.Err
}

// storyServiceImpl implements the StoryService interface
type storyServiceImpl struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewStoryService creates a new StoryService.
// It returns an error if any of the required dependencies are nil.
func NewStoryService(generator generation.Generator, logger *slog.Logger) (StoryService, error) {
	if generator == nil {
		return nil, &StoryServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
		}
	}
	if logger == nil {
		return nil, &StoryServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}

	return &storyServiceImpl{
		generator: generator,
		logger:    logger.With("component", "story_service"),
	}, nil
}

// GenerateStory implements StoryService.
func (s *storyServiceImpl) GenerateStory(ctx context.Context, req story.Request) (story.Response, error) {
	s.logger.DebugContext(ctx, "generating story",
		"prompt_length", len(req.Prompt),
		"max_tokens", req.MaxTokens)

	text, err := s.generator.Generate(ctx, story.WrapPrompt(req.Prompt), req.MaxTokens)
	if err != nil {
		if upstreamErr, ok := generation.AsUpstreamError(err); ok {
			s.logger.WarnContext(ctx, "upstream rejected story request",
				"status_code", upstreamErr.StatusCode)
			return story.Failure(upstreamErr.Body), nil
		}

		s.logger.ErrorContext(ctx, "story generation failed",
			"error", redact.Error(err),
			"deadline_exceeded", errors.Is(err, context.DeadlineExceeded))
		return story.Response{}, &StoryServiceError{
			Operation: "generate_story",
			Message:   "upstream call did not complete",
			Err:       err,
		}
	}

	s.logger.InfoContext(ctx, "story generated", "story_length", len(text))
	return story.Success(text), nil
}
