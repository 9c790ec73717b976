package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytsum [YouTube URL or ID]",
	Short: "Summarize YouTube videos from their audio",
	Long: `ytsum downloads the audio of a video, transcribes it with OpenAI Whisper
and summarizes the transcript with an OpenAI chat model.

Run "ytsum serve" for the web form, or pass a URL to summarize in the terminal.
Transcripts above the token limit (default 7000) are not summarized.`,
	Example: `  # Start the web form on :5000
  ytsum serve

  # Summarize a video in the terminal
  ytsum "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytsum tAP1eZYEuKA --model gpt-4o`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleGlobalFlags(cmd, config)
	},
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runSummarize(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load .env: %v\n", err)
	}

	config = internal.InitConfig()

	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// newApp builds the app and its logger for a command. The returned func
// closes the log file, if any.
func newApp(options ...internal.AppOption) (*internal.App, zerolog.Logger, func(), error) {
	return buildApp(false, options...)
}

// newSpinnerApp is newApp for commands that draw ui's spinner on stderr.
// Console logging drops to warnings while the spinner is shown.
func newSpinnerApp(ui *internal.UIManager, options ...internal.AppOption) (*internal.App, zerolog.Logger, func(), error) {
	return buildApp(ui.Active(), options...)
}

func buildApp(spinner bool, options ...internal.AppOption) (*internal.App, zerolog.Logger, func(), error) {
	w, closeLog := internal.LogWriter(config)
	log := internal.NewLogger(config, w)
	if spinner && !config.LogFile {
		log = internal.WithMinLevel(log, zerolog.WarnLevel)
	}

	app, err := internal.NewApp(config, log, options...)
	if err != nil {
		_ = closeLog()
		return nil, log, nil, err
	}
	return app, log, func() { _ = closeLog() }, nil
}

func init() {
	internal.AddOpenAIFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
}
