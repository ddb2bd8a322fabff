package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/story-api/internal/api/shared"
	"github.com/phrazzld/story-api/internal/service"
	"github.com/phrazzld/story-api/internal/story"
)

// GenerateStoryRequest represents the request body for POST /generate-story.
// Pointers distinguish an absent field from its zero value.
type GenerateStoryRequest struct {
	Prompt    *string `json:"prompt" validate:"required"`
	MaxTokens *int    `json:"max_tokens"`
}

// StoryHandler handles story generation HTTP requests
type StoryHandler struct {
	storyService service.StoryService
	logger       *slog.Logger
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService service.StoryService, logger *slog.Logger) *StoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoryHandler{
		storyService: storyService,
		logger:       logger.With("component", "story_handler"),
	}
}

// GenerateStory handles POST /generate-story requests.
//
// Both success and upstream rejection answer 200 with a story response.
// Malformed input answers 422; a failed upstream call answers 5xx.
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	// Parse request body
	var req GenerateStoryRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeDecodeError(err), err)
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	storyReq := story.NewRequest(*req.Prompt, req.MaxTokens)

	resp, err := h.storyService.GenerateStory(r.Context(), storyReq)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if resp.IsFailure() {
		h.logger.InfoContext(r.Context(), "relaying upstream rejection",
			"trace_id", shared.GetTraceID(r.Context()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
