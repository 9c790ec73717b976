package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Download a video's audio and transcribe it with Whisper",
	Example: `  # Print transcript
  ytsum transcribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Save transcript to file
  ytsum transcribe tAP1eZYEuKA -o transcript.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
			return err
		}

		transcript, err := fetchTranscript(cmd, args[0])
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

// fetchTranscript runs the download and transcription stages for arg
func fetchTranscript(cmd *cobra.Command, arg string) (string, error) {
	ui := internal.NewUIManager(config.Quiet || config.Verbose)
	spinner := ui.NewSpinner("Starting...")
	defer spinner.Finish()

	app, _, closeLog, err := newSpinnerApp(ui, internal.WithStageHook(internal.StageHook(spinner)))
	if err != nil {
		return "", err
	}
	defer closeLog()

	internal.InstallYtDlp(cmd.Context())

	return app.Transcript(cmd.Context(), internal.ParseArg(arg))
}

func init() {
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcribeCmd)
}
