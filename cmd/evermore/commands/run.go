package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/assistant"
	"github.com/evermore-ai/evermore/pkg/cli"
	"github.com/evermore-ai/evermore/pkg/persona"
)

var runCmd = &cobra.Command{
	Use:   "run <recording>",
	Short: "Run the full voice reply pipeline",
	Long: `Run the full voice reply pipeline on a recording.

The recording is normalized to 16 kHz mono PCM and must be at least
10 seconds long. The user profile (-f) is a flat YAML or JSON map of
facts about the user, for example:

  loved_one_name: Grandma June
  favorite_topic: gardening
  distinct_greeting: "Hello sweetheart!"

Examples:
  evermore -c myctx run recording.wav -f profile.yaml -o reply.mp3
  evermore -c myctx run recording.m4a -f profile.json -o reply.mp3 --skip-denoise
  evermore -c myctx run recording.wav -f profile.yaml -o reply.mp3 --voice-name "Grandma June"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recording := args[0]

		if err := requireInputFile(); err != nil {
			return err
		}
		out := getOutputFile()
		if out == "" {
			return fmt.Errorf("output file is required, use -o flag")
		}

		cfg, err := getContext()
		if err != nil {
			return err
		}

		voiceName, err := cmd.Flags().GetString("voice-name")
		if err != nil {
			return fmt.Errorf("failed to read 'voice-name' flag: %w", err)
		}
		if voiceName == "" {
			voiceName = cfg.VoiceName
		}
		if voiceName == "" {
			return fmt.Errorf("voice name is required, use --voice-name or set it in the context")
		}

		skipDenoise, err := cmd.Flags().GetBool("skip-denoise")
		if err != nil {
			return fmt.Errorf("failed to read 'skip-denoise' flag: %w", err)
		}
		stream, err := cmd.Flags().GetBool("stream")
		if err != nil {
			return fmt.Errorf("failed to read 'stream' flag: %w", err)
		}
		realtime, err := cmd.Flags().GetBool("realtime")
		if err != nil {
			return fmt.Errorf("failed to read 'realtime' flag: %w", err)
		}
		fallbackVoice, err := cmd.Flags().GetString("fallback-voice-id")
		if err != nil {
			return fmt.Errorf("failed to read 'fallback-voice-id' flag: %w", err)
		}
		if fallbackVoice == "" {
			fallbackVoice = cfg.FallbackVoiceID
		}

		var profile persona.Profile
		if err := cli.LoadRequest(getInputFile(), &profile); err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		printVerbose("Using context: %s", cfg.Name)
		printVerbose("Voice name: %s", voiceName)
		printVerbose("Profile keys: %s", strings.Join(profileKeys(profile), ", "))

		reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		generator, err := createGenerator(reqCtx, cfg)
		if err != nil {
			return err
		}

		client := createClient(cfg)
		transcoder := createTranscoder(cfg)

		// Pipeline logs go to a tail buffer so failures can show the
		// last few lines; -v mirrors them to stderr as they happen.
		logTail := cli.NewLogWriter(100)
		var logSink io.Writer = logTail
		if verbose {
			logSink = io.MultiWriter(logTail, os.Stderr)
		}
		logger := slog.New(slog.NewTextHandler(logSink, &slog.HandlerOptions{Level: slog.LevelDebug}))

		pipeline := &assistant.Pipeline{
			Normalizer:  &assistant.Normalizer{Transcoder: transcoder},
			Resolver:    &assistant.Resolver{Catalog: client.Voice},
			Generator:   generator,
			Synthesizer: client.TTS,
			Filter:      &assistant.PostFilter{Transcoder: transcoder},
			Config: assistant.Config{
				VoiceName:          voiceName,
				FallbackVoiceID:    fallbackVoice,
				SkipNoiseReduction: skipDenoise,
				Streaming:          stream,
				Realtime:           realtime,
			},
			Logger: logger,
		}

		start := time.Now()
		result, err := pipeline.Run(reqCtx, recording, profile, out)
		if err != nil {
			fmt.Fprint(os.Stderr, renderRunSummary("failed", result, time.Since(start), logTail.Lines()))
			return fmt.Errorf("pipeline failed: %w", err)
		}

		fmt.Print(renderRunSummary("complete", result, time.Since(start), logTail.Lines()))
		if isJSONOutput() {
			return outputResult(result, "", true)
		}
		return nil
	},
}

// renderRunSummary draws a framed run summary with the log tail.
func renderRunSummary(status string, result *assistant.Result, elapsed time.Duration, logLines []string) string {
	styles := cli.NewStyles(cli.DefaultTheme)
	frame := cli.Frame{
		Styles: styles,
		Title:  "evermore run " + result.RunID,
		Status: status,
		Sections: []cli.Section{
			{Label: "Result", Content: func() []string {
				output := "output: " + result.OutputPath
				if fi, err := os.Stat(result.OutputPath); err == nil {
					output += " (" + cli.FormatBytes(fi.Size()) + ")"
				}
				return []string{
					"voice:  " + result.VoiceID,
					"reply:  " + result.Text,
					output,
					"took:   " + cli.FormatDuration(int(elapsed.Milliseconds())),
				}
			}},
			{Label: "Log", Content: func() []string { return logLines }},
		},
		Help: "evermore voice list · evermore say <voice-id> <text>",
	}
	height := 14 + min(len(logLines), 10)
	return frame.Render(90, height) + "\n"
}

func profileKeys(p persona.Profile) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

func init() {
	runCmd.Flags().String("voice-name", "", "Cloned voice name (defaults to context voice_name)")
	runCmd.Flags().String("fallback-voice-id", "", "Fallback voice id (defaults to context fallback_voice_id)")
	runCmd.Flags().Bool("skip-denoise", false, "Skip noise reduction on the enrollment sample")
	runCmd.Flags().Bool("stream", false, "Use the streaming synthesis endpoint")
	runCmd.Flags().Bool("realtime", false, "Stream synthesis over the websocket stream-input endpoint")
}
