package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings. It is built once by InitConfig and
// treated as read-only afterwards.
type Config struct {
	// User configurable settings
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	Model              string
	TranscriptionModel string
	SystemMessage      string
	Prompt             string
	TokenLimit         int
	DownloadDir        string
	AudioFormat        string
	AudioQuality       string
	Addr               string
	SummaryTimeout     time.Duration
	WhisperTimeout     time.Duration
	LogLevel           string
	LogFile            bool
	Verbose            bool
	Quiet              bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

const (
	appName = "ytsum"

	// DefaultModel is the chat model used for summaries
	DefaultModel = "gpt-4o-mini"

	// DefaultSystemMessage instructs the model how to summarize transcripts
	DefaultSystemMessage = "You are a helpful assistant that summarizes text from youtube videos. " +
		"Ignore all mentions of Commenting, Subscribing, or any sort of sponsor spot."

	// DefaultTokenLimit is the largest transcript, in tokens, that gets summarized
	DefaultTokenLimit = 7000
)

//go:embed config.toml
var defaultFS embed.FS

// WhisperLimit is the maximum file size accepted by OpenAI's Whisper API (25 MiB)
const WhisperLimit int64 = 25 << 20

// EnsureDefaultConfig writes the embedded config.toml into configDir unless
// one is already there
func EnsureDefaultConfig(configDir string) error {
	filePath := filepath.Join(configDir, "config.toml")
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default configuration: %w", err)
	}

	return nil
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	return loadConfig(viper.New(), filepath.Join(xdg.ConfigHome, appName))
}

func loadConfig(v *viper.Viper, configDir string) *Config {
	dataDir := filepath.Join(xdg.DataHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)

	v.SetDefault("model", DefaultModel)
	v.SetDefault("transcription_model", "whisper-1")
	v.SetDefault("system_message", DefaultSystemMessage)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("token_limit", DefaultTokenLimit)
	v.SetDefault("download_dir", "downloaded_videos")
	v.SetDefault("audio_format", "mp3")
	v.SetDefault("audio_quality", "128K")
	v.SetDefault("addr", ":5000")
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The unprefixed names match what the OpenAI tooling and .env files use
	_ = v.BindEnv("openai_api_key", "YTSUM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai_base_url", "YTSUM_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv("model", "YTSUM_MODEL", "OPENAI_MODEL")
	_ = v.BindEnv("system_message", "YTSUM_SYSTEM_MESSAGE", "SYSTEM_MESSAGE")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	return &Config{
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		Model:              v.GetString("model"),
		TranscriptionModel: v.GetString("transcription_model"),
		SystemMessage:      v.GetString("system_message"),
		Prompt:             v.GetString("prompt"),
		TokenLimit:         v.GetInt("token_limit"),
		DownloadDir:        v.GetString("download_dir"),
		AudioFormat:        v.GetString("audio_format"),
		AudioQuality:       v.GetString("audio_quality"),
		Addr:               v.GetString("addr"),
		SummaryTimeout:     v.GetDuration("summary_timeout"),
		WhisperTimeout:     v.GetDuration("whisper_timeout"),
		LogLevel:           v.GetString("log_level"),
		LogFile:            v.GetBool("log_file"),
		Verbose:            v.GetBool("verbose"),
		Quiet:              v.GetBool("quiet"),

		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}
}
