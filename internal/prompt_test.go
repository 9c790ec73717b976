package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptManagerDefault(t *testing.T) {
	pm, err := NewPromptManager("")
	require.NoError(t, err)

	prompt, err := pm.CreatePrompt("A title", "the transcript")
	require.NoError(t, err)
	assert.Equal(t, "Can you summarize the following text?\n\nthe transcript", prompt)
}

func TestPromptManagerTemplateString(t *testing.T) {
	pm, err := NewPromptManager("Summarize {{.Title}} in one line:\n{{.Transcript}}")
	require.NoError(t, err)

	prompt, err := pm.CreatePrompt("Go talk", "goroutines everywhere")
	require.NoError(t, err)
	assert.Equal(t, "Summarize Go talk in one line:\ngoroutines everywhere", prompt)
}

func TestPromptManagerTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("TL;DR of {{.Title}}: {{.Transcript}}"), 0644))

	pm, err := NewPromptManager(path)
	require.NoError(t, err)

	prompt, err := pm.CreatePrompt("x", "y")
	require.NoError(t, err)
	assert.Equal(t, "TL;DR of x: y", prompt)
}

func TestPromptManagerInvalidTemplate(t *testing.T) {
	_, err := NewPromptManager("{{.Transcript")
	assert.Error(t, err)
}

func TestIsLikelyFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"prompts/summary.txt", true},
		{"summary.md", true},
		{`C:\prompts\summary`, true},
		{"{{.Transcript}}", false},
		{"Summarize this:\n{{.Transcript}}", false},
		{"Summarize this please", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLikelyFilePath(tt.in), tt.in)
	}
}
