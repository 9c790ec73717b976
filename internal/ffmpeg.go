package internal

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Splitter cuts audio files that are too large for a single Whisper upload
type Splitter struct {
	cmdRunner CommandRunner
	log       zerolog.Logger
}

// NewSplitter creates a new ffmpeg based splitter
func NewSplitter(cmdRunner CommandRunner, log zerolog.Logger) *Splitter {
	return &Splitter{
		cmdRunner: cmdRunner,
		log:       log,
	}
}

// Duration returns the audio file duration in seconds
func (s *Splitter) Duration(ctx context.Context, audioFile string) (float64, error) {
	output, err := s.cmdRunner.Run(ctx, "ffprobe",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}

	return duration, nil
}

// ChunkCount is how many uploads of at most limit bytes a file of size needs
func ChunkCount(size, limit int64) int {
	if size <= 0 || limit <= 0 {
		return 1
	}
	return int(math.Ceil(float64(size) / float64(limit)))
}

// Split divides audioFile into numChunks pieces of equal duration, written next
// to the source file. On error the chunks created so far are removed.
func (s *Splitter) Split(ctx context.Context, audioFile string, numChunks int) ([]string, error) {
	duration, err := s.Duration(ctx, audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio duration: %w", err)
	}

	chunkDuration := int(math.Ceil(duration / float64(numChunks)))
	chunks := make([]string, 0, numChunks)

	dir := filepath.Dir(audioFile)
	ext := filepath.Ext(audioFile)
	base := strings.TrimSuffix(filepath.Base(audioFile), ext)

	for i := range numChunks {
		start := i * chunkDuration
		output := filepath.Join(dir, fmt.Sprintf("%s_chunk_%d%s", base, i, ext))

		if err := s.chunk(ctx, audioFile, start, chunkDuration, output); err != nil {
			removeFiles(s.log, chunks...)
			return nil, fmt.Errorf("creating chunk %d: %w", i, err)
		}
		chunks = append(chunks, output)
	}

	s.log.Debug().Str("file", audioFile).Int("chunks", numChunks).Msg("audio split")

	return chunks, nil
}

// chunk extracts a segment from an audio file without re-encoding
func (s *Splitter) chunk(ctx context.Context, audioFile string, start, duration int, output string) error {
	cmdOutput, err := s.cmdRunner.Run(ctx, "ffmpeg",
		"-v", "quiet",
		"-i", audioFile,
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(duration),
		"-c:a", "copy",
		"-y", output)
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(cmdOutput))
	}
	return nil
}
