package gemini

import (
	"github.com/tidwall/gjson"
)

// generatedTextPath walks candidates[0].content.parts[0].text. gjson resolves
// each step as an optional lookup, so any missing step yields an empty result.
const generatedTextPath = "candidates.0.content.parts.0.text"

// extractGeneratedText returns the generated text of a generateContent
// response body, or "" when the body does not contain it.
func extractGeneratedText(body []byte) string {
	result := gjson.GetBytes(body, generatedTextPath)
	if !result.Exists() {
		return ""
	}
	return result.String()
}
