package internal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AudioFetcher resolves a video and leaves its audio track in dir
type AudioFetcher interface {
	Fetch(ctx context.Context, videoURL, dir string) (*AudioFile, error)
}

// Transcriber turns a local audio file into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string) (string, error)
}

// Summarizer condenses a transcript
type Summarizer interface {
	Summarize(ctx context.Context, title, transcript string) (string, error)
}

// TokenCounter counts model tokens
type TokenCounter interface {
	Count(text string) int
}

// App holds the application state and dependencies
type App struct {
	youtube     *YouTube
	fetcher     AudioFetcher
	transcriber Transcriber
	summarizer  Summarizer
	tokens      TokenCounter
	config      *Config
	log         zerolog.Logger
	onStage     func(Stage)
}

// NewApp wires the production collaborators from config
func NewApp(config *Config, log zerolog.Logger, options ...AppOption) (*App, error) {
	prompts, err := NewPromptManager(config.Prompt)
	if err != nil {
		return nil, err
	}

	tokenizer, err := NewTokenizer(config.Model)
	if err != nil {
		return nil, err
	}

	youtube := NewYouTube(config.AudioFormat, config.AudioQuality, log)
	client := NewOpenAIClient(config.OpenAIAPIKey, config.OpenAIBaseURL, config.TranscriptionModel)
	ai := NewAI(client, NewSplitter(&DefaultCommandRunner{}, log), prompts, config, log)

	app := &App{
		youtube:     youtube,
		fetcher:     youtube,
		transcriber: ai,
		summarizer:  ai,
		tokens:      tokenizer,
		config:      config,
		log:         log,
	}

	for _, option := range options {
		option(app)
	}

	return app, nil
}

// AppOption customizes App creation
type AppOption func(*App)

// WithFetcher sets a custom audio fetcher
func WithFetcher(fetcher AudioFetcher) AppOption {
	return func(a *App) {
		a.fetcher = fetcher
	}
}

// WithTranscriber sets a custom transcriber
func WithTranscriber(transcriber Transcriber) AppOption {
	return func(a *App) {
		a.transcriber = transcriber
	}
}

// WithSummarizer sets a custom summarizer
func WithSummarizer(summarizer Summarizer) AppOption {
	return func(a *App) {
		a.summarizer = summarizer
	}
}

// WithTokenCounter sets a custom token counter
func WithTokenCounter(tokens TokenCounter) AppOption {
	return func(a *App) {
		a.tokens = tokens
	}
}

// WithStageHook registers a callback invoked on every pipeline stage
func WithStageHook(hook func(Stage)) AppOption {
	return func(a *App) {
		a.onStage = hook
	}
}

// Config returns the configuration the app was built with
func (app *App) Config() *Config {
	return app.config
}

// CountTokens counts the model tokens of text
func (app *App) CountTokens(text string) int {
	return app.tokens.Count(text)
}

// Metadata fetches video metadata without downloading
func (app *App) Metadata(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	if app.youtube == nil {
		return nil, fmt.Errorf("metadata lookup is not available")
	}
	return app.youtube.Metadata(ctx, videoURL)
}

// Run takes one URL through the whole pipeline: fetch, transcribe, delete the
// audio, count tokens and summarize when the transcript fits the token limit.
// Only a failed fetch is returned as an error; later failures are logged and
// reported through the Result.
func (app *App) Run(ctx context.Context, videoURL string) (*Result, error) {
	log := app.log.With().Str("url", videoURL).Logger()
	result := &Result{URL: videoURL}
	app.stage(StageReceived)

	transcript, title, err := app.transcribe(ctx, videoURL, log)
	if errors.Is(err, ErrFetchFailed) {
		return nil, err
	}
	result.Title = title

	if err != nil {
		log.Error().Err(err).Msg("failed to transcribe the audio file")
		app.stage(StageMeasured)
		result.Summary = MsgNoTranscription
		result.SummaryStatus = SummaryNoTranscript
		app.stage(StageSummarized)
		return result, nil
	}
	result.Transcript = transcript

	result.TokenCount = app.tokens.Count(transcript)
	result.HasTokens = true
	app.stage(StageMeasured)
	log.Info().Int("tokens", result.TokenCount).Int("limit", app.config.TokenLimit).Msg("transcript measured")

	if result.TokenCount > app.config.TokenLimit {
		result.Summary = MsgTooLong
		result.SummaryStatus = SummaryTooLong
		app.stage(StageSummarized)
		return result, nil
	}

	summary, err := app.summarizer.Summarize(ctx, title, transcript)
	if err != nil {
		log.Error().Err(err).Msg("failed to create a summary")
		result.Summary = MsgSummaryFailed
		result.SummaryStatus = SummaryFailed
	} else {
		result.Summary = summary
		result.SummaryStatus = SummaryOK
	}
	app.stage(StageSummarized)

	return result, nil
}

// Transcript downloads and transcribes a video without summarizing it
func (app *App) Transcript(ctx context.Context, videoURL string) (string, error) {
	transcript, _, err := app.transcribe(ctx, videoURL, app.log.With().Str("url", videoURL).Logger())
	return transcript, err
}

// transcribe covers the fetched, transcribed and cleaned stages. The audio
// and its work directory are deleted whatever the transcription outcome.
func (app *App) transcribe(ctx context.Context, videoURL string, log zerolog.Logger) (string, string, error) {
	workDir := filepath.Join(app.config.DownloadDir, uuid.NewString())
	if err := EnsureDirs(workDir); err != nil {
		return "", "", fmt.Errorf("%w: creating work directory: %w", ErrFetchFailed, err)
	}
	defer removeDir(log, workDir)

	audio, err := app.fetcher.Fetch(ctx, videoURL, workDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch audio")
		return "", "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	app.stage(StageFetched)

	transcript, err := app.transcriber.Transcribe(ctx, audio.Path)
	app.stage(StageTranscribed)

	removeFiles(log, audio.Path)
	app.stage(StageCleaned)

	if err != nil {
		return "", audio.Title, err
	}
	return transcript, audio.Title, nil
}

func (app *App) stage(s Stage) {
	app.log.Debug().Stringer("stage", s).Msg("pipeline stage")
	if app.onStage != nil {
		app.onStage(s)
	}
}

// EnsureDownloadDir creates the scratch directory for downloads
func (app *App) EnsureDownloadDir() error {
	if err := EnsureDirs(app.config.DownloadDir); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	return nil
}
