package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar interface abstracts progress bar operations
type ProgressBar interface {
	Describe(description string)
	Finish()
}

// UIManager handles terminal output for CLI commands
type UIManager struct {
	out   io.Writer
	quiet bool
}

// NewUIManager creates a UI manager writing status output to stderr
func NewUIManager(quiet bool) *UIManager {
	return &UIManager{out: os.Stderr, quiet: quiet}
}

// NewSpinner returns an indeterminate progress indicator
func (ui *UIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet {
		return silentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	return &spinnerBar{bar: bar}
}

// Active reports whether spinners are drawn
func (ui *UIManager) Active() bool {
	return !ui.quiet
}

// Printf prints a status message unless quiet
func (ui *UIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

// StageHook describes pipeline stages on a spinner
func StageHook(bar ProgressBar) func(Stage) {
	return func(s Stage) {
		if description := stageDescription(s); description != "" {
			bar.Describe(description)
		}
	}
}

func stageDescription(s Stage) string {
	switch s {
	case StageReceived:
		return "Downloading audio..."
	case StageFetched:
		return "Transcribing with OpenAI Whisper..."
	case StageCleaned:
		return "Counting tokens..."
	case StageMeasured:
		return "Summarizing..."
	case StageSummarized:
		return "Done"
	default:
		return ""
	}
}

type spinnerBar struct {
	bar *progressbar.ProgressBar
}

func (s *spinnerBar) Describe(description string) {
	s.bar.Describe(description)
	_ = s.bar.Add(1)
}

func (s *spinnerBar) Finish() {
	_ = s.bar.Finish()
}

type silentProgressBar struct{}

func (silentProgressBar) Describe(string) {}

func (silentProgressBar) Finish() {}
