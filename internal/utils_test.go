package internal

import (
	"os"
	"path/filepath"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "Hello_ World_"},
		{"Go 1.25: what's new?", "Go 1_25_ what_s new_"},
		{"a/b\\c", "a_b_c"},
		{"Café déjà vu", "Café déjà vu"},
		{"東京 2024", "東京 2024"},
		{"tab\tseparated", "tab\tseparated"},
		{"x²½ Ⅻ", "x²½ Ⅻ"},
		{"../../etc/passwd", "______etc_passwd"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitle(tt.title))
		})
	}
}

func TestSanitizeTitleKeepsLengthAndAlphabet(t *testing.T) {
	titles := []string{
		"Rick Astley - Never Gonna Give You Up (Official Music Video)",
		"¿Qué pasa? ¡Nada!",
		"emoji 🎉 party 🎉",
		"C++ vs. Rust | benchmarks @ 60fps #shorts",
		"line\nbreak",
	}

	for _, title := range titles {
		got := SanitizeTitle(title)
		assert.Equal(t, utf8.RuneCountInString(title), utf8.RuneCountInString(got), title)
		for _, r := range got {
			ok := unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) || r == '_'
			assert.True(t, ok, "unexpected rune %q in %q", r, got)
		}
	}
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"video id", "dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"padded id", "  dQw4w9WgXcQ\n", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"},
		{"not a url", "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArg(tt.arg))
		})
	}
}

func TestIsValidYouTubeID(t *testing.T) {
	assert.True(t, IsValidYouTubeID("dQw4w9WgXcQ"))
	assert.True(t, IsValidYouTubeID("a-b_c-d_e-f"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXc"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXcQQ"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgX!Q"))
}

func TestIsLikelyURL(t *testing.T) {
	assert.True(t, IsLikelyURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, IsLikelyURL("http://example.com"))
	assert.False(t, IsLikelyURL("dQw4w9WgXcQ"))
	assert.False(t, IsLikelyURL("ftp://example.com/file"))
	assert.False(t, IsLikelyURL("https://"))
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.mp3")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0644))

	// a missing file is logged, not fatal
	removeFiles(zerolog.Nop(), filepath.Join(dir, "missing.mp3"), present)

	assert.False(t, FileExists(present))
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b")

	require.NoError(t, EnsureDirs(nested, nested))
	assert.DirExists(t, nested)
}

func TestValidateOpenAIAPIKey(t *testing.T) {
	assert.Error(t, ValidateOpenAIAPIKey(""))
	assert.NoError(t, ValidateOpenAIAPIKey("sk-test"))
}
