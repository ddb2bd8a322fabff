package story

import (
	"encoding/json"
	"errors"
)

const (
	// DefaultMaxTokens is used when a request does not carry max_tokens.
	DefaultMaxTokens = 500

	// PromptPrefix is the instruction placed in front of every user prompt.
	PromptPrefix = "Write a creative story based on: "
)

// Request is the input of a story generation.
type Request struct {
	Prompt    string
	MaxTokens int
}

// NewRequest builds a Request. A nil maxTokens selects DefaultMaxTokens;
// any other value, including zero or negative, is kept as given.
func NewRequest(prompt string, maxTokens *int) Request {
	req := Request{Prompt: prompt, MaxTokens: DefaultMaxTokens}
	if maxTokens != nil {
		req.MaxTokens = *maxTokens
	}
	return req
}

// WrapPrompt returns the text sent upstream for a user prompt.
func WrapPrompt(prompt string) string {
	return PromptPrefix + prompt
}

// Response is either a generated story or an error message.
type Response struct {
	story  string
	errMsg string
	failed bool
}

// Success returns a Response carrying generated text. The text may be empty.
func Success(text string) Response {
	return Response{story: text}
}

// Failure returns a Response carrying an error message.
func Failure(message string) Response {
	return Response{errMsg: message, failed: true}
}

// IsFailure reports whether r is the error shape.
func (r Response) IsFailure() bool {
	return r.failed
}

// Story returns the generated text, or "" for a failure.
func (r Response) Story() string {
	return r.story
}

// ErrorMessage returns the error message, or "" for a success.
func (r Response) ErrorMessage() string {
	return r.errMsg
}

type successJSON struct {
	Story string `json:"story"`
}

type failureJSON struct {
	Error string `json:"error"`
}

// MarshalJSON encodes exactly one of the two shapes.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.failed {
		return json.Marshal(failureJSON{Error: r.errMsg})
	}
	return json.Marshal(successJSON{Story: r.story})
}

// UnmarshalJSON decodes either shape. An object holding both keys or neither
// is rejected.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		Story *string `json:"story"`
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Story != nil && raw.Error == nil:
		*r = Success(*raw.Story)
	case raw.Error != nil && raw.Story == nil:
		*r = Failure(*raw.Error)
	default:
		return errors.New("story response must contain exactly one of story or error")
	}
	return nil
}
