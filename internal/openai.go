package internal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog"
)

// OpenAIClientInterface defines the interface for OpenAI client operations
type OpenAIClientInterface interface {
	CreateTranscription(ctx context.Context, file *os.File) (string, error)
	CreateChatCompletion(ctx context.Context, model, system, prompt string) (string, error)
}

// OpenAIClient wraps the official OpenAI Go SDK
type OpenAIClient struct {
	client             *openai.Client
	transcriptionModel string
}

// NewOpenAIClient creates a new OpenAI client. baseURL may be empty.
func NewOpenAIClient(apiKey, baseURL, transcriptionModel string, opts ...option.RequestOption) *OpenAIClient {
	options := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}
	options = append(options, opts...)

	if transcriptionModel == "" {
		transcriptionModel = "whisper-1"
	}

	client := openai.NewClient(options...)
	return &OpenAIClient{client: &client, transcriptionModel: transcriptionModel}
}

// CreateTranscription implements the transcription method
func (c *OpenAIClient) CreateTranscription(ctx context.Context, file *os.File) (string, error) {
	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  file,
		Model: openai.AudioModel(c.transcriptionModel),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// CreateChatCompletion implements the chat completion method
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, model, system, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// AI handles OpenAI API interactions for transcription and summarization
type AI struct {
	client         OpenAIClientInterface
	splitter       *Splitter
	prompts        *PromptManager
	model          string
	systemMessage  string
	whisperLimit   int64
	summaryTimeout time.Duration
	whisperTimeout time.Duration
	log            zerolog.Logger
}

// NewAI creates a new AI processor
func NewAI(client OpenAIClientInterface, splitter *Splitter, prompts *PromptManager, config *Config, log zerolog.Logger) *AI {
	return &AI{
		client:         client,
		splitter:       splitter,
		prompts:        prompts,
		model:          config.Model,
		systemMessage:  config.SystemMessage,
		whisperLimit:   WhisperLimit,
		summaryTimeout: config.SummaryTimeout,
		whisperTimeout: config.WhisperTimeout,
		log:            log.With().Str("component", "openai").Logger(),
	}
}

// Transcribe transcribes audio using OpenAI's Whisper API. Files above the
// upload limit are split and transcribed chunk by chunk; the chunks are
// removed afterwards, the source file is left to the caller.
func (ai *AI) Transcribe(ctx context.Context, audioFile string) (string, error) {
	if ai.whisperTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.whisperTimeout)
		defer cancel()
	}

	info, err := os.Stat(audioFile)
	if err != nil {
		return "", fmt.Errorf("getting audio file info: %w", err)
	}

	chunks := []string{audioFile}
	if numChunks := ChunkCount(info.Size(), ai.whisperLimit); numChunks > 1 {
		if ai.splitter == nil {
			return "", fmt.Errorf("audio file is %d bytes, above the %d byte upload limit", info.Size(), ai.whisperLimit)
		}
		chunks, err = ai.splitter.Split(ctx, audioFile, numChunks)
		if err != nil {
			return "", fmt.Errorf("splitting audio: %w", err)
		}
		defer removeFiles(ai.log, chunks...)
	}

	ai.log.Debug().Str("file", audioFile).Int("chunks", len(chunks)).Msg("transcribing audio")

	transcript, err := ai.processAudioChunks(ctx, chunks)
	if err != nil {
		return "", fmt.Errorf("transcribing audio: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}
	return transcript, nil
}

// processAudioChunks transcribes audio chunks sequentially
func (ai *AI) processAudioChunks(ctx context.Context, chunks []string) (string, error) {
	var sb strings.Builder
	for i, chunkPath := range chunks {
		text, err := ai.transcribeFile(ctx, chunkPath)
		if err != nil {
			return "", fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		sb.WriteString(text)
		if i < len(chunks)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func (ai *AI) transcribeFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			ai.log.Warn().Err(closeErr).Str("path", path).Msg("failed to close file")
		}
	}()

	return ai.client.CreateTranscription(ctx, file)
}

// Summarize asks the chat model for a summary of transcript
func (ai *AI) Summarize(ctx context.Context, title, transcript string) (string, error) {
	prompt, err := ai.prompts.CreatePrompt(title, transcript)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	if ai.summaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.summaryTimeout)
		defer cancel()
	}

	content, err := ai.client.CreateChatCompletion(ctx, ai.model, ai.systemMessage, prompt)
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	return content, nil
}
