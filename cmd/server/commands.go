package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/story-api/internal/story"
	"github.com/spf13/cobra"
)

// newRootCmd builds the story-api command tree. Running the root command
// without a subcommand serves HTTP.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "story-api",
		Short: "HTTP service that generates short stories with Gemini",
		Long: `story-api exposes POST /generate-story, which wraps a prompt,
forwards it to the Gemini generateContent API and relays the generated text.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newGenerateCmd(&configPath),
	)

	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  "Run the HTTP server until SIGINT or SIGTERM, then shut down gracefully",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		prompt    string
		maxTokens int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one story and print the JSON response",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.cleanup()

			var budget *int
			if cmd.Flags().Changed("max-tokens") {
				budget = &maxTokens
			}
			return app.generateOnce(cmd.Context(), prompt, budget, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Story prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", story.DefaultMaxTokens, "Maximum output tokens")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

// runServe starts the HTTP server and blocks until shutdown.
func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// generateOnce runs the story service once and writes the story response
// as JSON to out.
func (app *application) generateOnce(ctx context.Context, prompt string, maxTokens *int, out io.Writer) error {
	resp, err := app.storyService.GenerateStory(ctx, story.NewRequest(prompt, maxTokens))
	if err != nil {
		return fmt.Errorf("story generation failed: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resp); err != nil {
		return fmt.Errorf("failed to write story response: %w", err)
	}
	return nil
}
