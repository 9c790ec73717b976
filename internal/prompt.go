package internal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultPrompt is the user message sent along with the system message
const DefaultPrompt = "Can you summarize the following text?\n\n{{.Transcript}}"

// PromptData for template injection
type PromptData struct {
	Title      string
	Transcript string
}

// PromptManager builds the user prompt for summaries
type PromptManager struct {
	tmpl *template.Template
}

// NewPromptManager parses the prompt setting, which is either a template
// string or the path of a template file. An empty setting uses DefaultPrompt.
func NewPromptManager(promptSetting string) (*PromptManager, error) {
	content := DefaultPrompt

	if promptSetting != "" {
		content = promptSetting
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			data, err := os.ReadFile(promptSetting)
			if err != nil {
				return nil, fmt.Errorf("reading prompt template: %w", err)
			}
			content = string(data)
		}
	}

	tmpl, err := template.New("prompt").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}

	return &PromptManager{tmpl: tmpl}, nil
}

// CreatePrompt renders the prompt for a transcript
func (pm *PromptManager) CreatePrompt(title, transcript string) (string, error) {
	var buf bytes.Buffer
	if err := pm.tmpl.Execute(&buf, PromptData{Title: title, Transcript: transcript}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "{{") || strings.Contains(s, "\n") {
		return false
	}

	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	for _, ext := range []string{".txt", ".md", ".tmpl", ".template"} {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}

	return !strings.Contains(s, " ")
}
