package internal

import (
	"errors"
	"strconv"
)

// Stage is a step of the summarize pipeline. Stages only move forward.
type Stage int

const (
	StageReceived Stage = iota
	StageFetched
	StageTranscribed
	StageCleaned
	StageMeasured
	StageSummarized
	StageRendered
)

// String returns a human-readable representation of the stage
func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "received"
	case StageFetched:
		return "fetched"
	case StageTranscribed:
		return "transcribed"
	case StageCleaned:
		return "cleaned"
	case StageMeasured:
		return "measured"
	case StageSummarized:
		return "summarized"
	case StageRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// SummaryStatus tells how the summary text of a Result came about
type SummaryStatus int

const (
	SummaryOK SummaryStatus = iota
	SummaryTooLong
	SummaryNoTranscript
	SummaryFailed
)

func (s SummaryStatus) String() string {
	switch s {
	case SummaryOK:
		return "summarized"
	case SummaryTooLong:
		return "too_long"
	case SummaryNoTranscript:
		return "no_transcript"
	case SummaryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// User facing messages shown in place of a summary or token count
const (
	MsgNoTranscription = "No transcription available to summarize."
	MsgNoTokens        = "No transcription available to check tokens."
	MsgSummaryFailed   = "Could not summarize the transcription due to an error."
	MsgTooLong         = "The transcription is too long to be summarized."
	MsgFetchFailed     = "Could not fetch the video title."
	MsgInternalError   = "Something went wrong. Please try again."
)

var (
	// ErrFetchFailed wraps any failure to resolve or download the audio
	ErrFetchFailed = errors.New("fetching audio failed")

	// ErrEmptyTranscript is returned when the transcription service answers with no text
	ErrEmptyTranscript = errors.New("transcription is empty")
)

// AudioFile is a downloaded audio track on local disk
type AudioFile struct {
	Title     string
	SafeTitle string
	Path      string
}

// Result is the outcome of one pipeline run
type Result struct {
	URL        string
	Title      string
	Transcript string

	// TokenCount is only meaningful when HasTokens is set
	TokenCount int
	HasTokens  bool

	Summary       string
	SummaryStatus SummaryStatus
}

// Tokens renders the token count, or the placeholder when there was no transcript
func (r *Result) Tokens() string {
	if !r.HasTokens {
		return MsgNoTokens
	}
	return strconv.Itoa(r.TokenCount)
}
