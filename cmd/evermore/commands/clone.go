package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/assistant"
	"github.com/evermore-ai/evermore/pkg/cli"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <name> <recording>",
	Short: "Enroll a cloned voice from a recording",
	Long: `Enroll a cloned voice from a recording, without generating a reply.

The recording goes through the same preparation as 'evermore run':
normalization to 16 kHz mono PCM, the 10 second minimum check, and
noise reduction. If a voice with the given name already exists its id
is returned without uploading anything.

Examples:
  evermore -c myctx clone "Grandma June" recording.m4a
  evermore -c myctx clone "Grandma June" recording.wav --skip-denoise`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, recording := args[0], args[1]

		cfg, err := getContext()
		if err != nil {
			return err
		}

		skipDenoise, err := cmd.Flags().GetBool("skip-denoise")
		if err != nil {
			return fmt.Errorf("failed to read 'skip-denoise' flag: %w", err)
		}

		printVerbose("Using context: %s", cfg.Name)

		client := createClient(cfg)
		transcoder := createTranscoder(cfg)

		var logSink io.Writer = io.Discard
		if verbose {
			logSink = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(logSink, &slog.HandlerOptions{Level: slog.LevelDebug}))

		reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		voiceID, err := assistant.Enroll(reqCtx, assistant.EnrollRequest{
			Name:               name,
			RecordingPath:      recording,
			SkipNoiseReduction: skipDenoise,
			Normalizer:         &assistant.Normalizer{Transcoder: transcoder},
			Catalog:            client.Voice,
			Logger:             logger,
		})
		if err != nil {
			return fmt.Errorf("enrollment failed: %w", err)
		}

		cli.PrintSuccess("Voice %q ready: %s", name, voiceID)
		return nil
	},
}

func init() {
	cloneCmd.Flags().Bool("skip-denoise", false, "Skip noise reduction on the enrollment sample")
}
