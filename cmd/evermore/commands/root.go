package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evermore-ai/evermore/pkg/cli"
)

const appName = "evermore"

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evermore",
	Short: "Personalized voice reply pipeline",
	Long: `Evermore - turn a voice recording and a user profile into a spoken,
personalized reply in the recorded person's cloned voice.

The pipeline normalizes the recording, clones (or reuses) the voice,
generates a reply from the user profile, synthesizes it, and applies a
high-pass filter before writing the final mp3.

Configuration is stored in ~/.evermore/evermore/ and supports multiple
contexts, similar to kubectl's context management.

Examples:
  # Set up a new context
  evermore config add-context myctx --elevenlabs-api-key KEY --openai-api-key KEY

  # Run the pipeline
  evermore -c myctx run recording.wav -f profile.yaml -o reply.mp3

  # Inspect the voice catalog
  evermore -c myctx voice list --json | jq '.[].name'
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.evermore/evermore/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input profile/request file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(sayCmd)
}

func initConfig() {
	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use, with environment
// overrides applied.
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'evermore config use-context'")
		}
		return nil, err
	}

	ctx.ApplyEnv()
	return ctx, nil
}

// getInputFile returns the input file path
func getInputFile() string {
	return inputFile
}

// getOutputFile returns the output file path
func getOutputFile() string {
	return outputFile
}

// isJSONOutput reports whether --json was passed
func isJSONOutput() bool {
	return outputJSON
}

// printVerbose prints verbose output when -v is set
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
