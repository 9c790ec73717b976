package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeOpenAI(t *testing.T, chats *[]chatRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		audio, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"text": fmt.Sprintf("%s heard %d bytes", r.FormValue("model"), len(audio)),
		})
	})

	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*chats = append(*chats, req)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "` + req.Model + `",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "A short summary."}
			}]
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientTranscription(t *testing.T) {
	var chats []chatRequest
	srv := newFakeOpenAI(t, &chats)
	client := NewOpenAIClient("sk-test", srv.URL+"/", "", option.WithMaxRetries(0))

	path := filepath.Join(t.TempDir(), "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 fake"), 0644))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	text, err := client.CreateTranscription(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "whisper-1 heard 8 bytes", text)
}

func TestOpenAIClientChatCompletion(t *testing.T) {
	var chats []chatRequest
	srv := newFakeOpenAI(t, &chats)
	client := NewOpenAIClient("sk-test", srv.URL+"/", "", option.WithMaxRetries(0))

	content, err := client.CreateChatCompletion(context.Background(), "gpt-4o-mini", "be brief", "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", content)

	require.Len(t, chats, 1)
	assert.Equal(t, "gpt-4o-mini", chats[0].Model)
	require.Len(t, chats[0].Messages, 2)
	assert.Equal(t, "system", chats[0].Messages[0].Role)
	assert.Equal(t, "be brief", chats[0].Messages[0].Content)
	assert.Equal(t, "user", chats[0].Messages[1].Role)
	assert.Equal(t, "summarize this", chats[0].Messages[1].Content)
}

func TestOpenAIClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("sk-bad", srv.URL+"/", "", option.WithMaxRetries(0))
	_, err := client.CreateChatCompletion(context.Background(), "gpt-4o-mini", "", "hi")
	assert.Error(t, err)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-2",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": []
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", srv.URL+"/", "", option.WithMaxRetries(0))
	content, err := client.CreateChatCompletion(context.Background(), "gpt-4o-mini", "", "hi")
	assert.ErrorContains(t, err, "no response choices")
	assert.Empty(t, content)
}

// fakeOpenAI stands in for the API behind AI
type fakeOpenAI struct {
	transcripts map[string]string
	chatErr     error
	uploads     []string
	model       string
	system      string
	prompt      string
}

func (f *fakeOpenAI) CreateTranscription(_ context.Context, file *os.File) (string, error) {
	name := filepath.Base(file.Name())
	f.uploads = append(f.uploads, name)
	return f.transcripts[name], nil
}

func (f *fakeOpenAI) CreateChatCompletion(_ context.Context, model, system, prompt string) (string, error) {
	f.model, f.system, f.prompt = model, system, prompt
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return "summary", nil
}

func newTestAI(t *testing.T, client OpenAIClientInterface, splitter *Splitter) *AI {
	t.Helper()
	prompts, err := NewPromptManager("")
	require.NoError(t, err)
	config := &Config{Model: "gpt-4o-mini", SystemMessage: DefaultSystemMessage}
	return NewAI(client, splitter, prompts, config, zerolog.Nop())
}

func TestAITranscribeSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("small"), 0644))

	client := &fakeOpenAI{transcripts: map[string]string{"talk.mp3": "hello there"}}
	ai := newTestAI(t, client, nil)

	text, err := ai.Transcribe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
	assert.Equal(t, []string{"talk.mp3"}, client.uploads)
	assert.FileExists(t, path)
}

func TestAITranscribeEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.mp3")
	require.NoError(t, os.WriteFile(path, []byte("small"), 0644))

	ai := newTestAI(t, &fakeOpenAI{transcripts: map[string]string{"quiet.mp3": "  \n"}}, nil)

	_, err := ai.Transcribe(context.Background(), path)
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestAITranscribeMissingFile(t *testing.T) {
	ai := newTestAI(t, &fakeOpenAI{}, nil)
	_, err := ai.Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"))
	assert.Error(t, err)
}

func TestAITranscribeChunked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdefghijklmno"), 0644))

	client := &fakeOpenAI{transcripts: map[string]string{
		"talk_chunk_0.mp3": "part one",
		"talk_chunk_1.mp3": "part two",
		"talk_chunk_2.mp3": "part three",
	}}
	ai := newTestAI(t, client, NewSplitter(&fakeRunner{duration: "90"}, zerolog.Nop()))
	ai.whisperLimit = 10

	text, err := ai.Transcribe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "part one\npart two\npart three", text)
	assert.Equal(t, []string{"talk_chunk_0.mp3", "talk_chunk_1.mp3", "talk_chunk_2.mp3"}, client.uploads)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "chunks are removed, the source is kept")
	assert.Equal(t, "talk.mp3", entries[0].Name())
}

func TestAITranscribeTooLargeWithoutSplitter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef"), 0644))

	ai := newTestAI(t, &fakeOpenAI{}, nil)
	ai.whisperLimit = 10

	_, err := ai.Transcribe(context.Background(), path)
	assert.ErrorContains(t, err, "upload limit")
}

func TestAISummarize(t *testing.T) {
	client := &fakeOpenAI{}
	ai := newTestAI(t, client, nil)

	summary, err := ai.Summarize(context.Background(), "title", "the transcript")
	require.NoError(t, err)
	assert.Equal(t, "summary", summary)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Equal(t, DefaultSystemMessage, client.system)
	assert.Equal(t, "Can you summarize the following text?\n\nthe transcript", client.prompt)
}

func TestAISummarizeError(t *testing.T) {
	apiErr := errors.New("quota exceeded")
	ai := newTestAI(t, &fakeOpenAI{chatErr: apiErr}, nil)

	_, err := ai.Summarize(context.Background(), "title", "the transcript")
	assert.ErrorIs(t, err, apiErr)
}
