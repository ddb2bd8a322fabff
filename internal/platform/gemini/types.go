package gemini

// generateContentRequest is the JSON body of a generateContent call.
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generationConfig is sent even for zero or negative values; the upstream
// API decides what to do with them.
type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

func newGenerateContentRequest(text string, maxTokens int) generateContentRequest {
	return generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: text}}},
		},
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens},
	}
}
