// Package gemini provides implementations of the generation.Generator
// interface backed by Google's Gemini generateContent API.
//
// Two adapters are available:
//
//   - RESTGenerator posts the documented JSON body with net/http, passes the
//     API key as the "key" query parameter and relays non-200 bodies verbatim
//     through generation.UpstreamError. It is the default backend.
//   - SDKGenerator calls the same endpoint through google.golang.org/genai.
//
// Both extract the generated text from candidates[0].content.parts[0].text
// and fall back to an empty string when any step of that path is missing.
package gemini
