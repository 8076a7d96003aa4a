package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dodd623/lucidscript/logger"
)

// Converter converts input media to 16 kHz mono WAV via ffmpeg.
type Converter struct {
	ffmpegPath string
	workDir    string
	log        *logger.Logger
}

// NewConverter creates a Converter writing converted files under workDir.
// ffmpegPath may be empty, in which case "ffmpeg" is resolved via PATH.
func NewConverter(ffmpegPath, workDir string, log *logger.Logger) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Converter{
		ffmpegPath: ffmpegPath,
		workDir:    workDir,
		log:        log.WithComponent("media"),
	}
}

// ToWAV converts src to a 16 kHz mono WAV file and returns its path.
// The caller owns the returned file and should remove it when done.
func (c *Converter) ToWAV(ctx context.Context, src string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("media: input not readable: %w", err)
	}
	if err := os.MkdirAll(c.workDir, 0o750); err != nil {
		return "", fmt.Errorf("media: create work dir: %w", err)
	}

	out := filepath.Join(c.workDir, fmt.Sprintf("tmp_%s.wav", uuid.New().String()[:8]))

	c.log.Debug("converting to wav", logger.Fields("src", src, "out", out))

	err := runTool(ctx, c.ffmpegPath,
		"-y",
		"-i", src,
		"-ac", "1",
		"-ar", "16000",
		out,
	)
	if err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

// CheckTools verifies ffmpeg and yt-dlp are on PATH. The returned booleans
// report availability; ffmpeg is required, yt-dlp only gates URL fetching.
func CheckTools(ffmpegPath, ytdlpPath string) (ffmpegOK, ytdlpOK bool) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	_, err := exec.LookPath(ffmpegPath)
	ffmpegOK = err == nil
	_, err = exec.LookPath(ytdlpPath)
	ytdlpOK = err == nil
	return ffmpegOK, ytdlpOK
}
