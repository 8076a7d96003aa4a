// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// Backends are injected explicitly at bootstrap; a pipeline is constructed
// with exactly the engines it should use.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//
// # Usage
//
//	p := whisper.NewProvider(whisper.Config{URL: "http://localhost:8387"})
//	result, err := p.Transcribe(ctx, transcription.Request{AudioPath: path})
package transcription
