package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/cli"
	"github.com/evermore-ai/evermore/pkg/elevenlabs"
)

var sayCmd = &cobra.Command{
	Use:   "say <voice-id> <text>",
	Short: "Synthesize text with a known voice",
	Long: `Synthesize text with a known voice id, bypassing the pipeline.

Useful for checking a cloned voice or the fallback voice.

Examples:
  evermore -c myctx say pNInz6obpgDQGcFmaJgB "Hello there!" -o hello.mp3
  evermore -c myctx say pNInz6obpgDQGcFmaJgB "Hello there!" -o hello.mp3 --stream`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		voiceID, text := args[0], args[1]

		out := getOutputFile()
		if out == "" {
			return fmt.Errorf("output file is required, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		stream, err := cmd.Flags().GetBool("stream")
		if err != nil {
			return fmt.Errorf("failed to read 'stream' flag: %w", err)
		}
		realtime, err := cmd.Flags().GetBool("realtime")
		if err != nil {
			return fmt.Errorf("failed to read 'realtime' flag: %w", err)
		}

		client := createClient(ctx)
		settings := elevenlabs.DefaultVoiceSettings
		req := &elevenlabs.SynthesisRequest{
			VoiceID:       voiceID,
			Text:          text,
			ModelID:       elevenlabs.ModelMultilingualV2,
			OutputFormat:  elevenlabs.FormatMP3_44100_128,
			VoiceSettings: &settings,
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var audio []byte
		switch {
		case realtime:
			for chunk, err := range client.TTS.ConvertStreamWS(reqCtx, req) {
				if err != nil {
					return fmt.Errorf("synthesis failed: %w", err)
				}
				audio = append(audio, chunk...)
			}
		case stream:
			for chunk, err := range client.TTS.ConvertStream(reqCtx, req) {
				if err != nil {
					return fmt.Errorf("synthesis failed: %w", err)
				}
				audio = append(audio, chunk...)
			}
		default:
			audio, err = client.TTS.Convert(reqCtx, req)
			if err != nil {
				return fmt.Errorf("synthesis failed: %w", err)
			}
		}

		if err := cli.OutputBytes(audio, out); err != nil {
			return err
		}

		cli.PrintSuccess("Wrote %s (%s)", out, cli.FormatBytesInt(len(audio)))
		return nil
	},
}

func init() {
	sayCmd.Flags().Bool("stream", false, "Use the streaming synthesis endpoint")
	sayCmd.Flags().Bool("realtime", false, "Stream synthesis over the websocket stream-input endpoint")
}
