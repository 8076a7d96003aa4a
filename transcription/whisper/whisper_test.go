package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dodd623/lucidscript/transcription"
)

func writeAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.URL != defaultWhisperURL {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Model != defaultWhisperModel {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != defaultWhisperTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}

	custom := Config{URL: "http://whisper:9000", Model: "large-v3", Timeout: time.Minute}
	custom.ApplyDefaults()
	if custom.URL != "http://whisper:9000" || custom.Model != "large-v3" || custom.Timeout != time.Minute {
		t.Errorf("defaults overwrote explicit values: %+v", custom)
	}
}

func TestTranscribe(t *testing.T) {
	var gotModel, gotLang, gotTask string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotLang = r.FormValue("language")
		gotTask = r.FormValue("task")

		if _, _, err := r.FormFile("audio"); err != nil {
			http.Error(w, "missing audio part", http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(whisperResponse{
			Text:     "hello world",
			Language: "en",
			Duration: 2.5,
			Segments: []whisperSegment{
				{Text: "hello", Start: 0, End: 1.2},
				{Text: "world", Start: 1.2, End: 2.5},
			},
		})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL, Model: "base"})
	res, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudioFile(t),
		Language:  "de",
		Translate: true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotModel != "base" {
		t.Errorf("model = %q, want base", gotModel)
	}
	if gotLang != "de" {
		t.Errorf("language = %q, want de", gotLang)
	}
	if gotTask != "translate" {
		t.Errorf("task = %q, want translate", gotTask)
	}
	if res.Text != "hello world" || res.Language != "en" || res.Duration != 2.5 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Segments) != 2 || res.Segments[1].Text != "world" {
		t.Errorf("segments = %+v", res.Segments)
	}
}

func TestTranscribeRequestModelOverride(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotModel = r.FormValue("model")
		json.NewEncoder(w).Encode(whisperResponse{Text: "ok"})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL, Model: "base"})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudioFile(t),
		Model:     "large-v3",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotModel != "large-v3" {
		t.Errorf("model = %q, want large-v3", gotModel)
	}
}

func TestTranscribeDurationFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(whisperResponse{
			Text:     "hello",
			Segments: []whisperSegment{{Text: "hello", Start: 0, End: 3.75}},
		})
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	res, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudioFile(t)})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Duration != 3.75 {
		t.Errorf("Duration = %v, want 3.75 (last segment end)", res.Duration)
	}
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudioFile(t)}); err == nil {
		t.Fatal("expected error on server failure")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	p := NewProvider(Config{URL: "http://localhost:1"})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/does/not/exist.wav"}); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if !NewProvider(Config{URL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("expected available when /health returns 200")
	}
	if NewProvider(Config{URL: "http://localhost:1", Timeout: time.Second}).IsAvailable(context.Background()) {
		t.Error("expected unavailable when sidecar is unreachable")
	}
}
