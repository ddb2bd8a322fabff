// Package main implements the entry point for the story API server, which
// turns user prompts into short stories through the Gemini API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
