package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dodd623/lucidscript/diarization"
	"github.com/dodd623/lucidscript/document"
	"github.com/dodd623/lucidscript/docwriter"
	"github.com/dodd623/lucidscript/errors"
	"github.com/dodd623/lucidscript/logger"
	"github.com/dodd623/lucidscript/media"
	"github.com/dodd623/lucidscript/observability"
	"github.com/dodd623/lucidscript/storage"
	"github.com/dodd623/lucidscript/transcript"
	"github.com/dodd623/lucidscript/transcription"
	"github.com/dodd623/lucidscript/validation"
)

// artifactPrefix is the common name prefix of stored artifacts.
const artifactPrefix = "lucidscript_"

// Service runs the export pipeline.
type Service struct {
	transcriber transcription.Provider
	diarizer    diarization.Provider
	fetcher     *media.Fetcher
	converter   *media.Converter
	store       storage.Storage
	docCfg      document.Config
	metrics     *observability.Metrics
	log         *logger.Logger
}

// Deps carries the service dependencies. Diarizer, Fetcher and Metrics may
// be nil; the corresponding features degrade gracefully. A nil Log falls
// back to the global logger.
type Deps struct {
	Transcriber transcription.Provider
	Diarizer    diarization.Provider
	Fetcher     *media.Fetcher
	Converter   *media.Converter
	Store       storage.Storage
	DocConfig   document.Config
	Metrics     *observability.Metrics
	Log         *logger.Logger
}

// NewService creates the export service.
func NewService(deps Deps) (*Service, error) {
	if deps.Transcriber == nil {
		return nil, fmt.Errorf("export: transcriber is required")
	}
	if deps.Converter == nil {
		return nil, fmt.Errorf("export: converter is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("export: storage is required")
	}
	deps.DocConfig.ApplyDefaults()
	if err := deps.DocConfig.Validate(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if deps.Log == nil {
		deps.Log = logger.GetGlobalLogger()
	}
	return &Service{
		transcriber: deps.Transcriber,
		diarizer:    deps.Diarizer,
		fetcher:     deps.Fetcher,
		converter:   deps.Converter,
		store:       deps.Store,
		docCfg:      deps.DocConfig,
		metrics:     deps.Metrics,
		log:         deps.Log.WithComponent("export"),
	}, nil
}

// Export runs the full pipeline and returns the stored artifact description.
func (s *Service) Export(ctx context.Context, opts Options) (*Result, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	status := "error"
	if s.metrics != nil {
		s.metrics.RecordExportStart(ctx)
		defer func() {
			s.metrics.RecordExport(ctx, opts.Format, status, time.Since(start))
		}()
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanExport)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrFormat, opts.Format)
	observability.SetSpanAttribute(ctx, observability.AttrStyle, opts.Style)

	audioPath, source, cleanup, err := s.acquireAudio(ctx, opts)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	defer cleanup()

	result, err := s.transcribe(ctx, audioPath, opts)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return nil, errors.InvalidInput("audio", "no speech detected or empty transcript")
	}

	blocks, err := s.compose(ctx, audioPath, result, opts)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	artifact, url, err := s.render(ctx, blocks, opts.Format)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrArtifact, artifact)

	status = "ok"
	s.log.Info("export complete", logger.Fields(
		"artifact", artifact,
		"style", opts.Style,
		"format", opts.Format,
		"language", result.Language,
		"source", source,
	))

	return &Result{
		Message:     "Transcription and document export complete.",
		Artifact:    artifact,
		URL:         url,
		Language:    orUnknown(result.Language),
		DurationSec: round2(result.Duration),
		Translated:  opts.Translate,
		Source:      source,
	}, nil
}

// acquireAudio resolves the input audio file. For URL sources the returned
// cleanup removes the fetched temp directory; for uploads cleanup is a no-op
// since the caller owns the file.
func (s *Service) acquireAudio(ctx context.Context, opts Options) (path, source string, cleanup func(), err error) {
	if opts.SourceURL == "" {
		return opts.AudioPath, "upload", func() {}, nil
	}

	if s.fetcher == nil {
		return "", "", nil, errors.ServiceUnavailable("media fetcher")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanFetch)
	defer span.End()

	stageStart := time.Now()
	path, err = s.fetcher.FetchAudio(ctx, opts.SourceURL)
	s.recordStage(ctx, "fetch", stageStart, err)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return "", "", nil, err
	}
	return path, "url", func() { media.CleanupDir(path) }, nil
}

func (s *Service) transcribe(ctx context.Context, audioPath string, opts Options) (*transcription.Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	stageStart := time.Now()
	result, err := s.transcriber.Transcribe(ctx, transcription.Request{
		AudioPath: audioPath,
		Language:  opts.Language,
		Translate: opts.Translate,
	})
	s.recordStage(ctx, "transcribe", stageStart, err)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if s.metrics != nil {
			s.metrics.RecordError(ctx, "transcription", s.transcriber.Name())
		}
		return nil, errors.ExternalService(s.transcriber.Name(), err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrSegments, len(result.Segments))
	return result, nil
}

// compose turns the transcription result into document blocks per the
// requested style.
func (s *Service) compose(ctx context.Context, audioPath string, result *transcription.Result, opts Options) ([]document.Block, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanCompose)
	defer span.End()

	lang := orUnknown(result.Language)

	if opts.Style != StyleDeposition {
		return document.LayoutText(opts.Title(), lang, opts.Translate, result.Text, s.docCfg)
	}

	var turns []diarization.Turn
	if opts.Diarize {
		turns = s.diarize(ctx, audioPath, opts)
	}

	labeled := transcript.AssignSpeakers(result.Segments, turns)
	return document.Layout(opts.Title(), lang, opts.Translate, labeled, s.docCfg)
}

// diarize runs optional speaker detection. Failures degrade to no turns so
// the export proceeds with the default speaker label.
func (s *Service) diarize(ctx context.Context, audioPath string, opts Options) []diarization.Turn {
	if s.diarizer == nil {
		s.log.Warn("diarization requested but no engine configured")
		return nil
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanDiarize)
	defer span.End()

	stageStart := time.Now()
	wav, err := s.converter.ToWAV(ctx, audioPath)
	if err != nil {
		s.recordStage(ctx, "diarize", stageStart, err)
		s.log.Warn("audio conversion for diarization failed", logger.ErrorFields("convert", err))
		return nil
	}
	defer os.Remove(wav)

	result, err := s.diarizer.Diarize(ctx, diarization.Request{
		AudioPath:   wav,
		NumSpeakers: opts.NumSpeakers,
	})
	s.recordStage(ctx, "diarize", stageStart, err)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if s.metrics != nil {
			s.metrics.RecordError(ctx, "diarization", s.diarizer.Name())
		}
		s.log.Warn("diarization failed, continuing without speakers", logger.ErrorFields("diarize", err))
		return nil
	}

	observability.SetSpanAttribute(ctx, observability.AttrSpeakers, result.NumSpeakers)
	return result.Turns
}

// render serializes blocks and stores the artifact, returning its name and URL.
func (s *Service) render(ctx context.Context, blocks []document.Block, format string) (string, string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanStore)
	defer span.End()

	writer, err := docwriter.ForFormat(format)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, blocks); err != nil {
		return "", "", errors.Internal(err)
	}

	artifact := NewArtifactName(writer.Extension())

	stageStart := time.Now()
	err = s.store.Upload(ctx, artifact, &buf)
	s.recordStage(ctx, "store", stageStart, err)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return "", "", errors.Internal(err)
	}

	url, err := s.store.URL(ctx, artifact)
	if err != nil {
		url = ""
	}
	return artifact, url, nil
}

// Artifact streams a stored artifact for download. The name is validated
// against path traversal before touching storage.
func (s *Service) Artifact(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if appErr := validation.New().ArtifactName("name", name).Validate(); appErr != nil {
		return nil, "", appErr
	}

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return nil, "", errors.Internal(err)
	}
	if !exists {
		return nil, "", errors.NotFound("artifact", name)
	}

	rc, err := s.store.Download(ctx, name)
	if err != nil {
		return nil, "", errors.Internal(err)
	}

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return rc, ct, nil
}

// ListArtifacts returns metadata for every stored export artifact.
func (s *Service) ListArtifacts(ctx context.Context) ([]storage.FileInfo, error) {
	files, err := s.store.List(ctx, artifactPrefix)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return files, nil
}

// CheckHealth reports the health of the engines behind the service.
func (s *Service) CheckHealth(ctx context.Context) *observability.ServiceHealth {
	sh := observability.NewServiceHealth("lucidscript", "")

	if s.transcriber.IsAvailable(ctx) {
		sh.AddComponent(observability.Health{Name: s.transcriber.Name(), Status: observability.HealthStatusUp})
	} else {
		sh.AddComponent(observability.Health{
			Name:    s.transcriber.Name(),
			Status:  observability.HealthStatusDown,
			Message: "transcription engine unreachable",
		})
	}

	if s.diarizer != nil {
		if s.diarizer.IsAvailable(ctx) {
			sh.AddComponent(observability.Health{Name: s.diarizer.Name(), Status: observability.HealthStatusUp})
		} else {
			sh.AddComponent(observability.Health{
				Name:    s.diarizer.Name(),
				Status:  observability.HealthStatusDegraded,
				Message: "diarization engine unreachable, exports fall back to a single speaker",
			})
		}
	}

	return sh
}

func (s *Service) recordStage(ctx context.Context, stage string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordStage(ctx, stage, status, time.Since(start))
}

// NewArtifactName generates a unique artifact file name with the given
// extension, e.g. "lucidscript_a1b2c3d4.pdf".
func NewArtifactName(ext string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s%s.%s", artifactPrefix, id, ext)
}

func orUnknown(lang string) string {
	if lang == "" {
		return "unknown"
	}
	return lang
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
