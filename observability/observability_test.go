package observability

import (
	"context"
	"testing"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("lucidscript")
	if cfg.ServiceName != "lucidscript" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "lucidscript")
	}
	if cfg.Endpoint == "" {
		t.Error("Endpoint should have a default")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("lucidscript")
	if cfg.ServiceName != "lucidscript" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "lucidscript")
	}
	if cfg.Interval <= 0 {
		t.Error("Interval should have a positive default")
	}
}

func TestStartSpanWithoutProvider(t *testing.T) {
	// With no provider installed the global no-op tracer is used; spans must
	// still be safe to start and end.
	ctx, span := StartSpan(context.Background(), "export.transcribe")
	if ctx == nil {
		t.Fatal("context should not be nil")
	}
	SetSpanAttribute(ctx, AttrFormat, "pdf")
	SetSpanError(ctx, context.Canceled)
	span.End()
}

func TestServiceHealthAggregation(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		sh := NewServiceHealth("lucidscript", "1.0.0")
		sh.AddComponent(Health{Name: "whisper", Status: HealthStatusUp})
		sh.AddComponent(Health{Name: "storage", Status: HealthStatusUp})
		if sh.Status != HealthStatusUp {
			t.Errorf("Status = %q, want up", sh.Status)
		}
	})

	t.Run("degraded component degrades service", func(t *testing.T) {
		sh := NewServiceHealth("lucidscript", "1.0.0")
		sh.AddComponent(Health{Name: "whisper", Status: HealthStatusUp})
		sh.AddComponent(Health{Name: "pyannote", Status: HealthStatusDegraded, Message: "diarization unavailable"})
		if sh.Status != HealthStatusDegraded {
			t.Errorf("Status = %q, want degraded", sh.Status)
		}
	})

	t.Run("down wins over degraded", func(t *testing.T) {
		sh := NewServiceHealth("lucidscript", "1.0.0")
		sh.AddComponent(Health{Name: "whisper", Status: HealthStatusDown})
		sh.AddComponent(Health{Name: "pyannote", Status: HealthStatusDegraded})
		if sh.Status != HealthStatusDown {
			t.Errorf("Status = %q, want down", sh.Status)
		}
	})

	t.Run("components recorded", func(t *testing.T) {
		sh := NewServiceHealth("lucidscript", "1.0.0")
		sh.AddComponent(Health{Name: "whisper", Status: HealthStatusUp})
		if len(sh.Components) != 1 || sh.Components[0].Name != "whisper" {
			t.Errorf("Components = %+v, want one whisper entry", sh.Components)
		}
	})
}
