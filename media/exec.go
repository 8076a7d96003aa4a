package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// termGracePeriod is how long a canceled subprocess gets after SIGTERM
// before SIGKILL.
const termGracePeriod = 5 * time.Second

// runTool executes an external tool and returns its captured stderr on
// failure. On context cancellation the whole process group receives SIGTERM
// first so ffmpeg can finalize its output file.
func runTool(ctx context.Context, binary string, args ...string) error {
	c := exec.CommandContext(ctx, binary, args...)

	var stderr bytes.Buffer
	c.Stderr = &stderr

	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = termGracePeriod

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("media: %s canceled: %w", binary, ctx.Err())
		}
		return fmt.Errorf("media: %s failed: %w: %s", binary, err, lastLine(stderr.Bytes()))
	}
	return nil
}

// lastLine extracts the final non-empty stderr line, which for ffmpeg and
// yt-dlp is where the actual error message lives.
func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if line := bytes.TrimSpace(lines[i]); len(line) > 0 {
			return string(line)
		}
	}
	return "no output"
}
