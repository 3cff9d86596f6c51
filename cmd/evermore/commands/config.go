package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple API configurations,
similar to kubectl's context management.

Configuration is stored in ~/.evermore/evermore/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  evermore config add-context myctx --elevenlabs-api-key KEY --openai-api-key KEY
  evermore config add-context prod --elevenlabs-api-key KEY --generator gemini --gemini-api-key KEY`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		elevenKey, err := cmd.Flags().GetString("elevenlabs-api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'elevenlabs-api-key' flag: %w", err)
		}
		if elevenKey == "" {
			return fmt.Errorf("--elevenlabs-api-key is required")
		}

		openaiKey, err := cmd.Flags().GetString("openai-api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'openai-api-key' flag: %w", err)
		}
		geminiKey, err := cmd.Flags().GetString("gemini-api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'gemini-api-key' flag: %w", err)
		}
		generator, err := cmd.Flags().GetString("generator")
		if err != nil {
			return fmt.Errorf("failed to read 'generator' flag: %w", err)
		}
		model, err := cmd.Flags().GetString("model")
		if err != nil {
			return fmt.Errorf("failed to read 'model' flag: %w", err)
		}
		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return fmt.Errorf("failed to read 'base-url' flag: %w", err)
		}
		timeout, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return fmt.Errorf("failed to read 'timeout' flag: %w", err)
		}
		maxRetries, err := cmd.Flags().GetInt("max-retries")
		if err != nil {
			return fmt.Errorf("failed to read 'max-retries' flag: %w", err)
		}
		voiceName, err := cmd.Flags().GetString("voice-name")
		if err != nil {
			return fmt.Errorf("failed to read 'voice-name' flag: %w", err)
		}
		fallbackVoice, err := cmd.Flags().GetString("fallback-voice-id")
		if err != nil {
			return fmt.Errorf("failed to read 'fallback-voice-id' flag: %w", err)
		}
		ffmpegPath, err := cmd.Flags().GetString("ffmpeg-path")
		if err != nil {
			return fmt.Errorf("failed to read 'ffmpeg-path' flag: %w", err)
		}

		ctx := &cli.Context{
			ElevenLabsAPIKey: elevenKey,
			OpenAIAPIKey:     openaiKey,
			GeminiAPIKey:     geminiKey,
			Generator:        generator,
			Model:            model,
			BaseURL:          baseURL,
			Timeout:          timeout,
			MaxRetries:       maxRetries,
			VoiceName:        voiceName,
			FallbackVoiceID:  fallbackVoice,
			FFmpegPath:       ffmpegPath,
		}

		cfg := getConfig()
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.UseContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
			return nil
		}

		fmt.Println(cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tGENERATOR\tVOICE_NAME")

		for name, ctx := range cfg.Contexts {
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			generator := ctx.Generator
			if generator == "" {
				generator = "(openai)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, generator, ctx.VoiceName)
		}

		w.Flush()
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		fmt.Printf("Config file: %s\n", cfg.Path())
		fmt.Printf("Current context: %s\n", cfg.CurrentContext)
		fmt.Printf("Contexts: %d\n", len(cfg.Contexts))

		if len(cfg.Contexts) > 0 {
			fmt.Println("\nContext details:")
			for name, ctx := range cfg.Contexts {
				fmt.Printf("\n  %s:\n", name)
				fmt.Printf("    ElevenLabs API Key: %s\n", cli.MaskAPIKey(ctx.ElevenLabsAPIKey))
				if ctx.OpenAIAPIKey != "" {
					fmt.Printf("    OpenAI API Key: %s\n", cli.MaskAPIKey(ctx.OpenAIAPIKey))
				}
				if ctx.GeminiAPIKey != "" {
					fmt.Printf("    Gemini API Key: %s\n", cli.MaskAPIKey(ctx.GeminiAPIKey))
				}
				if ctx.Generator != "" {
					fmt.Printf("    Generator: %s\n", ctx.Generator)
				}
				if ctx.Model != "" {
					fmt.Printf("    Model: %s\n", ctx.Model)
				}
				if ctx.BaseURL != "" {
					fmt.Printf("    Base URL: %s\n", ctx.BaseURL)
				}
				if ctx.Timeout > 0 {
					fmt.Printf("    Timeout: %ds\n", ctx.Timeout)
				}
				if ctx.VoiceName != "" {
					fmt.Printf("    Voice Name: %s\n", ctx.VoiceName)
				}
				if ctx.FallbackVoiceID != "" {
					fmt.Printf("    Fallback Voice ID: %s\n", ctx.FallbackVoiceID)
				}
				if ctx.FFmpegPath != "" {
					fmt.Printf("    FFmpeg Path: %s\n", ctx.FFmpegPath)
				}
			}
		}

		return nil
	},
}

func init() {
	// add-context flags
	configAddContextCmd.Flags().String("elevenlabs-api-key", "", "ElevenLabs API key (required)")
	configAddContextCmd.Flags().String("openai-api-key", "", "OpenAI API key")
	configAddContextCmd.Flags().String("gemini-api-key", "", "Gemini API key")
	configAddContextCmd.Flags().String("generator", "", "Text generator backend: openai or gemini")
	configAddContextCmd.Flags().String("model", "", "Chat model override")
	configAddContextCmd.Flags().String("base-url", "", "Voice provider API base URL")
	configAddContextCmd.Flags().Int("timeout", 0, "Request timeout in seconds")
	configAddContextCmd.Flags().Int("max-retries", 0, "Maximum retries")
	configAddContextCmd.Flags().String("voice-name", "", "Default cloned voice name")
	configAddContextCmd.Flags().String("fallback-voice-id", "", "Fallback voice id")
	configAddContextCmd.Flags().String("ffmpeg-path", "", "ffmpeg binary path")

	// Add subcommands
	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
