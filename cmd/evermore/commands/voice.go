package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/cli"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Voice catalog management",
	Long: `Voice catalog management.

List, clone and delete voices in the provider's catalog.`,
}

var voiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available voices",
	Long: `List all voices in the catalog.

Examples:
  evermore -c myctx voice list
  evermore -c myctx voice list --json | jq '.[].voice_id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		printVerbose("Using context: %s", ctx.Name)

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		voices, err := client.Voice.List(reqCtx)
		if err != nil {
			return fmt.Errorf("list voices failed: %w", err)
		}

		return outputResult(voices, getOutputFile(), isJSONOutput())
	},
}

var voiceCloneCmd = &cobra.Command{
	Use:   "clone <name> <sample>",
	Short: "Clone a voice from an audio sample",
	Long: `Clone a voice from an audio sample file.

The sample is uploaded as-is; use 'evermore run' for the full pipeline
with normalization and noise reduction.

Examples:
  evermore -c myctx voice clone "Grandma June" sample.wav
  evermore -c myctx voice clone "Grandma June" sample.wav --description "warm and slow"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, samplePath := args[0], args[1]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		description, err := cmd.Flags().GetString("description")
		if err != nil {
			return fmt.Errorf("failed to read 'description' flag: %w", err)
		}
		if description == "" {
			description = "a person talking"
		}

		f, err := os.Open(samplePath)
		if err != nil {
			return fmt.Errorf("open sample: %w", err)
		}
		defer f.Close()

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		voiceID, err := client.Voice.Create(reqCtx, name, description, f, filepath.Base(samplePath))
		if err != nil {
			return fmt.Errorf("clone voice failed: %w", err)
		}

		cli.PrintSuccess("Voice %q created: %s", name, voiceID)
		return nil
	},
}

var voiceDeleteCmd = &cobra.Command{
	Use:   "delete <voice-id>",
	Short: "Delete a voice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		voiceID := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		client := createClient(ctx)

		reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.Voice.Delete(reqCtx, voiceID); err != nil {
			return fmt.Errorf("delete voice failed: %w", err)
		}

		cli.PrintSuccess("Voice %s deleted", voiceID)
		return nil
	},
}

func init() {
	voiceCloneCmd.Flags().String("description", "", "Voice description")

	voiceCmd.AddCommand(voiceListCmd)
	voiceCmd.AddCommand(voiceCloneCmd)
	voiceCmd.AddCommand(voiceDeleteCmd)
}
