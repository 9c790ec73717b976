package internal

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// SanitizeTitle keeps letters, numbers and whitespace and replaces every other
// rune with an underscore, so the result has as many runes as the title.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return '_'
	}, title)
}

// ParseArg turns a bare video ID into a watch URL and leaves anything else alone.
// URLs are handed to yt-dlp unvalidated.
func ParseArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if IsValidYouTubeID(arg) {
		return "https://www.youtube.com/watch?v=" + arg
	}
	return arg
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	return youtubeIDPattern.MatchString(id)
}

// IsLikelyURL reports whether s parses as an absolute http(s) URL
func IsLikelyURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(getTerminalWidth()),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return rendered, nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// removeFiles deletes files, logging (never returning) failures
func removeFiles(log zerolog.Logger, files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			log.Error().Err(err).Str("path", file).Msg("failed to delete file")
			continue
		}
		log.Debug().Str("path", file).Msg("deleted file")
	}
}

// removeDir deletes a scratch directory and whatever is left in it
func removeDir(log zerolog.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("could not remove work directory")
	}
}

// ValidateOpenAIAPIKey checks if the OpenAI API key is set and returns a standardized error if not
func ValidateOpenAIAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable")
	}
	return nil
}
