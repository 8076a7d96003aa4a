package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dodd623/lucidscript/errors"
	"github.com/dodd623/lucidscript/logger"
)

// Fetcher downloads audio from video platform URLs via yt-dlp.
type Fetcher struct {
	ytdlpPath string
	log       *logger.Logger
}

// NewFetcher creates a Fetcher. ytdlpPath may be empty, in which case
// "yt-dlp" is resolved via PATH.
func NewFetcher(ytdlpPath string, log *logger.Logger) *Fetcher {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &Fetcher{
		ytdlpPath: ytdlpPath,
		log:       log.WithComponent("media"),
	}
}

// FetchAudio downloads the audio track of url into a fresh temp directory
// and returns the path of the extracted WAV file. The caller should remove
// the containing directory with CleanupDir when done.
func (f *Fetcher) FetchAudio(ctx context.Context, url string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "ls_ytdlp_")
	if err != nil {
		return "", fmt.Errorf("media: create temp dir: %w", err)
	}

	f.log.Debug("fetching audio", logger.Fields("url", url, "dir", tmpDir))

	err = runTool(ctx, f.ytdlpPath,
		"--quiet",
		"--no-warnings",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "wav",
		"--audio-quality", "192",
		"-o", filepath.Join(tmpDir, "%(id)s.%(ext)s"),
		url,
	)
	if err != nil {
		CleanupDir(tmpDir)
		return "", errors.ExternalService("yt-dlp", err)
	}

	path, err := findDownloaded(tmpDir)
	if err != nil {
		CleanupDir(tmpDir)
		return "", err
	}
	return path, nil
}

// findDownloaded locates the extracted audio file, preferring a .wav.
func findDownloaded(dir string) (string, error) {
	wavs, _ := filepath.Glob(filepath.Join(dir, "*.wav"))
	if len(wavs) > 0 {
		return wavs[0], nil
	}
	any, _ := filepath.Glob(filepath.Join(dir, "*.*"))
	if len(any) > 0 {
		return any[0], nil
	}
	return "", errors.ExternalService("yt-dlp", fmt.Errorf("no audio file produced"))
}

// CleanupDir removes every file in the directory containing path, then the
// directory itself. Errors are ignored: cleanup is best effort.
func CleanupDir(path string) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		os.Remove(filepath.Join(dir, e.Name()))
	}
	os.Remove(dir)
}
