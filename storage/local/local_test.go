package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestUploadDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := []byte("WITNESS:  I was present at the scene.")
	if err := s.Upload(ctx, "lucidscript_a1b2c3d4.txt", bytes.NewReader(content)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	rc, err := s.Download(ctx, "lucidscript_a1b2c3d4.txt")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Download = %q, want %q", got, content)
	}
}

func TestDownloadMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Download(context.Background(), "lucidscript_missing.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q should mention not found", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "lucidscript_deadbeef.pdf")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("Exists = true for missing file")
	}

	if err := s.Upload(ctx, "lucidscript_deadbeef.pdf", strings.NewReader("pdf bytes")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	ok, err = s.Exists(ctx, "lucidscript_deadbeef.pdf")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("Exists = false after upload")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.Upload(ctx, "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := s.Delete(ctx, "a.txt"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "a.txt"); err != nil {
		t.Errorf("Delete of missing file should be nil, got %v", err)
	}
}

func TestListPrefix(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"lucidscript_11111111.txt", "lucidscript_22222222.pdf", "other.txt"} {
		if err := s.Upload(ctx, name, strings.NewReader("x")); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	files, err := s.List(ctx, "lucidscript_")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("List returned %d files, want 2", len(files))
	}
	if files[0].Path != "lucidscript_11111111.txt" || files[1].Path != "lucidscript_22222222.pdf" {
		t.Errorf("List order = %q, %q", files[0].Path, files[1].Path)
	}
	if files[1].ContentType != "application/pdf" {
		t.Errorf("ContentType = %q, want application/pdf", files[1].ContentType)
	}
}

func TestURL(t *testing.T) {
	s := newTestStorage(t)

	u, err := s.URL(context.Background(), "lucidscript_a1b2c3d4.pdf")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasPrefix(u, "file://") {
		t.Errorf("URL = %q, want file:// scheme", u)
	}
	if !strings.HasSuffix(u, "lucidscript_a1b2c3d4.pdf") {
		t.Errorf("URL = %q, want artifact suffix", u)
	}
}
