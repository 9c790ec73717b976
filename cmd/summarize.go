package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Transcribe and summarize a video in the terminal",
	Example: `  # Summarize a video
  ytsum summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytsum summarize tAP1eZYEuKA

  # Use specific OpenAI model and a custom prompt
  ytsum summarize tAP1eZYEuKA --model gpt-4o --prompt "tldr: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd, args[0])
	},
}

func runSummarize(cmd *cobra.Command, arg string) error {
	if err := internal.ApplyOpenAIFlags(cmd, config); err != nil {
		return err
	}

	ui := internal.NewUIManager(config.Quiet || config.Verbose)
	spinner := ui.NewSpinner("Starting...")
	defer spinner.Finish()

	app, _, closeLog, err := newSpinnerApp(ui, internal.WithStageHook(internal.StageHook(spinner)))
	if err != nil {
		return err
	}
	defer closeLog()

	internal.InstallYtDlp(cmd.Context())

	result, err := app.Run(cmd.Context(), internal.ParseArg(arg))
	if err != nil {
		return err
	}
	spinner.Finish()

	ui.Printf("Tokens: %s\n\n", result.Tokens())

	summary := result.Summary
	if result.SummaryStatus == internal.SummaryOK && isatty.IsTerminal(os.Stdout.Fd()) {
		if rendered, err := internal.RenderMarkdown(summary); err == nil {
			summary = rendered
		}
	}
	fmt.Println(summary)

	if result.SummaryStatus != internal.SummaryOK {
		return fmt.Errorf("no summary: %s", result.SummaryStatus)
	}
	return nil
}

func init() {
	internal.AddOpenAIFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
