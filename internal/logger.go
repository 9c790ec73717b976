package internal

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger builds the application logger. Terminals get zerolog's console
// format, everything else gets JSON lines.
func NewLogger(config *Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil || config.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if config.Verbose {
		level = zerolog.DebugLevel
	}

	if isTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("app", appName).Logger()
}

// WithMinLevel raises log to level; a logger already at or above it is returned as is
func WithMinLevel(log zerolog.Logger, level zerolog.Level) zerolog.Logger {
	if log.GetLevel() < level {
		return log.Level(level)
	}
	return log
}

// OpenLogFile opens (appending) the log file in the cache directory
func OpenLogFile(cacheDir string) (*os.File, error) {
	if err := EnsureDirs(cacheDir); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(cacheDir, appName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// LogWriter picks the log destination: the cache log file when enabled,
// stderr otherwise. The returned closer is never nil.
func LogWriter(config *Config) (io.Writer, func() error) {
	if !config.LogFile {
		return os.Stderr, func() error { return nil }
	}

	f, err := OpenLogFile(config.CacheDir)
	if err != nil {
		// fall back to stderr rather than losing logs
		return os.Stderr, func() error { return nil }
	}
	return f, f.Close
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
