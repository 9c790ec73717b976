package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
)

// VideoMetadata contains the video information yt-dlp reports
type VideoMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Channel     string  `json:"channel"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
	WebpageURL  string  `json:"webpage_url"`
}

// YouTube resolves metadata and downloads audio through yt-dlp
type YouTube struct {
	audioFormat  string
	audioQuality string
	log          zerolog.Logger
}

// NewYouTube creates a new YouTube downloader
func NewYouTube(audioFormat, audioQuality string, log zerolog.Logger) *YouTube {
	if audioFormat == "" {
		audioFormat = "mp3"
	}
	if audioQuality == "" {
		audioQuality = "128K"
	}
	return &YouTube{
		audioFormat:  audioFormat,
		audioQuality: audioQuality,
		log:          log.With().Str("component", "ytdlp").Logger(),
	}
}

// InstallYtDlp makes sure a yt-dlp binary is available, downloading one if needed
func InstallYtDlp(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// Metadata fetches video details without downloading anything
func (yt *YouTube) Metadata(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	yt.log.Debug().Str("url", videoURL).Msg("extracting video metadata")

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("extracting video metadata: %w%s", err, stderrOf(result))
	}

	metadata, err := parseMetadata([]byte(result.Stdout))
	if err != nil {
		return nil, err
	}

	yt.log.Debug().
		Str("title", metadata.Title).
		Str("channel", metadata.Channel).
		Float64("duration", metadata.Duration).
		Msg("metadata extracted")

	return metadata, nil
}

// Fetch resolves the title of videoURL and downloads its best audio stream into dir
// as <sanitized title>.<audio format>
func (yt *YouTube) Fetch(ctx context.Context, videoURL, dir string) (*AudioFile, error) {
	metadata, err := yt.Metadata(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	safeTitle := SanitizeTitle(metadata.Title)
	stem := fileStem(metadata.Title)

	if err := EnsureDirs(dir); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	outputTemplate := filepath.Join(dir, stem+".%(ext)s")

	yt.log.Debug().Str("url", videoURL).Str("output", outputTemplate).Msg("downloading audio")

	dl := ytdlp.New().
		Format("bestaudio/best").
		NoPlaylist().
		ExtractAudio().
		AudioFormat(yt.audioFormat).
		AudioQuality(yt.audioQuality).
		Output(outputTemplate)

	result, err := dl.Run(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w%s", err, stderrOf(result))
	}

	path := AudioPath(dir, stem, yt.audioFormat)
	if !FileExists(path) {
		return nil, fmt.Errorf("audio file missing after download: %s", path)
	}

	yt.log.Info().Str("title", metadata.Title).Str("path", path).Msg("audio downloaded")

	return &AudioFile{
		Title:     metadata.Title,
		SafeTitle: safeTitle,
		Path:      path,
	}, nil
}

// maxStemBytes leaves room for ".part" and the extension within the usual
// 255 byte file name limit
const maxStemBytes = 200

// fileStem is the sanitized title cut to whole runes within maxStemBytes, or
// "audio" when nothing printable is left
func fileStem(title string) string {
	stem := SanitizeTitle(title)
	if len(stem) > maxStemBytes {
		cut := 0
		for i, r := range stem {
			if i+utf8.RuneLen(r) > maxStemBytes {
				break
			}
			cut = i + utf8.RuneLen(r)
		}
		stem = stem[:cut]
	}
	if strings.TrimSpace(stem) == "" {
		return "audio"
	}
	return stem
}

// AudioPath is where Fetch leaves the audio for a sanitized title
func AudioPath(dir, safeTitle, format string) string {
	return filepath.Join(dir, safeTitle+"."+format)
}

func parseMetadata(data []byte) (*VideoMetadata, error) {
	var metadata VideoMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}
	if metadata.ID == "" {
		return nil, fmt.Errorf("video metadata has no id")
	}
	return &metadata, nil
}

func stderrOf(result *ytdlp.Result) string {
	if result == nil || strings.TrimSpace(result.Stderr) == "" {
		return ""
	}
	return "\nOutput: " + strings.TrimSpace(result.Stderr)
}
