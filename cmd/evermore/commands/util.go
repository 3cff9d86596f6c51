package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"

	"github.com/evermore-ai/evermore/pkg/audio/transcode"
	"github.com/evermore-ai/evermore/pkg/cli"
	"github.com/evermore-ai/evermore/pkg/elevenlabs"
	"github.com/evermore-ai/evermore/pkg/persona"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultGeminiModel = "gemini-2.0-flash"
)

// outputResult writes a result as YAML (default) or JSON
func outputResult(result any, outputPath string, asJSON bool) error {
	format := cli.FormatYAML
	if asJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputPath,
	})
}

// requireInputFile checks if input file is provided
func requireInputFile() error {
	if getInputFile() == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}
	return nil
}

// createClient creates an ElevenLabs API client from context configuration
func createClient(ctx *cli.Context) *elevenlabs.Client {
	var opts []elevenlabs.Option

	if ctx.BaseURL != "" {
		opts = append(opts, elevenlabs.WithBaseURL(ctx.BaseURL))
	}
	if ctx.Timeout > 0 {
		opts = append(opts, elevenlabs.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}
	if ctx.MaxRetries > 0 {
		opts = append(opts, elevenlabs.WithRetry(ctx.MaxRetries))
	}

	return elevenlabs.NewClient(ctx.ElevenLabsAPIKey, opts...)
}

// createGenerator builds the configured text generator backend. Every
// backend the context has credentials for is registered on a mux, and
// the context's generator name selects one.
func createGenerator(ctx context.Context, cfg *cli.Context) (persona.Generator, error) {
	mux := persona.NewMux()

	if cfg.OpenAIAPIKey != "" {
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		if err := mux.Handle("openai", &persona.OpenAIGenerator{Client: &client, Model: model}); err != nil {
			return nil, err
		}
	}

	if cfg.GeminiAPIKey != "" {
		model := cfg.Model
		if model == "" {
			model = defaultGeminiModel
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		if err := mux.Handle("gemini", &persona.GeminiGenerator{Client: client, Model: model}); err != nil {
			return nil, err
		}
	}

	name := cfg.Generator
	if name == "" {
		name = "openai"
	}
	switch name {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown generator %q (want openai or gemini)", name)
	}

	gen, err := mux.Generator(name)
	if err != nil {
		return nil, fmt.Errorf("%s generator requires an API key (set %s_api_key in the context or the environment)", name, name)
	}
	return gen, nil
}

// createTranscoder creates the ffmpeg transcoder from context configuration
func createTranscoder(ctx *cli.Context) *transcode.FFmpeg {
	return transcode.NewFFmpeg(ctx.FFmpegPath)
}
