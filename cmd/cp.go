package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// cpCmd copies the summary (or transcript) to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy a video summary to the clipboard",
	Example: `  # Copy the summary
  ytsum cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Copy the raw transcript instead
  ytsum cp tAP1eZYEuKA --transcript`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ApplyOpenAIFlags(cmd, config); err != nil {
			return err
		}

		var text string
		if onlyTranscript, _ := cmd.Flags().GetBool("transcript"); onlyTranscript {
			transcript, err := fetchTranscript(cmd, args[0])
			if err != nil {
				return err
			}
			text = transcript
		} else {
			app, _, closeLog, err := newApp()
			if err != nil {
				return err
			}
			defer closeLog()

			internal.InstallYtDlp(cmd.Context())

			result, err := app.Run(cmd.Context(), internal.ParseArg(args[0]))
			if err != nil {
				return err
			}
			if result.SummaryStatus != internal.SummaryOK {
				return fmt.Errorf("%s", result.Summary)
			}
			text = result.Summary
		}

		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Copied to clipboard")
		}
		return nil
	},
}

func init() {
	internal.AddOpenAIFlags(cpCmd)
	cpCmd.Flags().Bool("transcript", false, "Copy the transcript instead of the summary")
	rootCmd.AddCommand(cpCmd)
}
