package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLastLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "ERROR: unsupported URL", "ERROR: unsupported URL"},
		{"multi line", "frame=1\nframe=2\nConversion failed!", "Conversion failed!"},
		{"trailing newlines", "something broke\n\n\n", "something broke"},
		{"empty", "", "no output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastLine([]byte(tt.in)); got != tt.want {
				t.Errorf("lastLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindDownloaded(t *testing.T) {
	t.Run("prefers wav", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"abc123.m4a", "abc123.wav"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		got, err := findDownloaded(dir)
		if err != nil {
			t.Fatalf("findDownloaded: %v", err)
		}
		if filepath.Ext(got) != ".wav" {
			t.Errorf("findDownloaded = %q, want .wav file", got)
		}
	})

	t.Run("falls back to any file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "abc123.m4a"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := findDownloaded(dir)
		if err != nil {
			t.Fatalf("findDownloaded: %v", err)
		}
		if filepath.Base(got) != "abc123.m4a" {
			t.Errorf("findDownloaded = %q", got)
		}
	})

	t.Run("empty dir errors", func(t *testing.T) {
		if _, err := findDownloaded(t.TempDir()); err == nil {
			t.Error("expected error for empty directory")
		}
	})
}

func TestCleanupDir(t *testing.T) {
	dir, err := os.MkdirTemp("", "ls_test_")
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	CleanupDir(file)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory %s should be removed", dir)
	}
}
