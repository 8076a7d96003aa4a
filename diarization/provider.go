package diarization

import "context"

// Provider is the interface that diarization backends must implement.
type Provider interface {
	// Name returns the backend's unique name.
	Name() string

	// IsAvailable checks if the backend is ready to handle requests.
	IsAvailable(ctx context.Context) bool

	// Diarize sends audio for speaker diarization and returns the result.
	Diarize(ctx context.Context, req Request) (*Result, error)
}
