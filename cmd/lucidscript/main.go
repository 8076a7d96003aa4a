// Command lucidscript runs the transcription export service: it accepts audio
// uploads or media URLs, transcribes and optionally diarizes them, and serves
// the rendered transcript documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dodd623/lucidscript/config"
	"github.com/dodd623/lucidscript/diarization/pyannote"
	"github.com/dodd623/lucidscript/document"
	"github.com/dodd623/lucidscript/export"
	"github.com/dodd623/lucidscript/logger"
	"github.com/dodd623/lucidscript/media"
	"github.com/dodd623/lucidscript/observability"
	"github.com/dodd623/lucidscript/server"
	"github.com/dodd623/lucidscript/server/endpoint"
	"github.com/dodd623/lucidscript/storage"
	_ "github.com/dodd623/lucidscript/storage/local"
	_ "github.com/dodd623/lucidscript/storage/s3"
	"github.com/dodd623/lucidscript/transcription/whisper"
	"github.com/dodd623/lucidscript/version"
)

const serviceName = "lucidscript"

type mediaConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
	YtdlpPath  string `yaml:"ytdlp_path" mapstructure:"ytdlp_path"`
	WorkDir    string `yaml:"work_dir" mapstructure:"work_dir"`
	UploadDir  string `yaml:"upload_dir" mapstructure:"upload_dir"`
}

func (c *mediaConfig) applyDefaults() {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.YtdlpPath == "" {
		c.YtdlpPath = "yt-dlp"
	}
	if c.WorkDir == "" {
		c.WorkDir = os.TempDir()
	}
}

type observabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

func (c *observabilityConfig) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Storage       storage.Config      `yaml:"storage" mapstructure:"storage"`
	Whisper       whisper.Config      `yaml:"whisper" mapstructure:"whisper"`
	Pyannote      pyannote.Config     `yaml:"pyannote" mapstructure:"pyannote"`
	Document      document.Config     `yaml:"document" mapstructure:"document"`
	Media         mediaConfig         `yaml:"media" mapstructure:"media"`
	Observability observabilityConfig `yaml:"observability" mapstructure:"observability"`
}

func (c *appConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Name == "" {
		c.Name = serviceName
	}
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Pyannote.ApplyDefaults()
	c.Document.ApplyDefaults()
	c.Media.applyDefaults()
	c.Observability.applyDefaults()
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("config.storage: %w", err)
	}
	if err := c.Document.Validate(); err != nil {
		return fmt.Errorf("config.document: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)

	info := version.Get()
	log.Info("starting service", logger.Fields(
		"version", info.Version,
		"commit", info.Commit,
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ffmpegOK, ytdlpOK := media.CheckTools(cfg.Media.FFmpegPath, cfg.Media.YtdlpPath)
	if !ffmpegOK {
		return fmt.Errorf("ffmpeg not found at %q; audio conversion is required", cfg.Media.FFmpegPath)
	}
	if !ytdlpOK {
		log.Warn("yt-dlp not found, URL sources are disabled", logger.Fields("path", cfg.Media.YtdlpPath))
	}

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	if cfg.Observability.Enabled {
		tracerCfg := observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: info.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			SampleRate:     cfg.Observability.SampleRate,
		}
		tp, err := observability.InitTracer(ctx, tracerCfg)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer shutdownProvider(tp.Shutdown, log, "tracer")

		meterCfg := observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: info.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			Interval:       15 * time.Second,
		}
		mp, err := observability.InitMeter(ctx, &meterCfg)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer shutdownProvider(mp.Shutdown, log, "meter")
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	deps := export.Deps{
		Transcriber: whisper.NewProvider(cfg.Whisper),
		Diarizer:    pyannote.NewProvider(cfg.Pyannote),
		Converter:   media.NewConverter(cfg.Media.FFmpegPath, cfg.Media.WorkDir, log),
		Store:       store,
		DocConfig:   cfg.Document,
		Metrics:     metrics,
		Log:         log,
	}
	if ytdlpOK {
		deps.Fetcher = media.NewFetcher(cfg.Media.YtdlpPath, log)
	}

	svc, err := export.NewService(deps)
	if err != nil {
		return fmt.Errorf("creating export service: %w", err)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	engine := srv.Engine()
	engine.GET("/health", endpoint.Health(cfg.Name, svc.CheckHealth))
	engine.GET("/version", endpoint.Version())
	export.NewHandler(svc, cfg.Media.UploadDir, log).Register(engine)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx := context.Background()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("server shutdown failed", logger.ErrorFields("stop", err))
	}

	log.Info("service stopped")
	return nil
}

func shutdownProvider(fn func(context.Context) error, log *logger.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn(name+" shutdown failed", logger.Fields("error", err.Error()))
	}
}
