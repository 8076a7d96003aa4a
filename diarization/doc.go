// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// Diarization is an optional capability: pipelines are constructed with or
// without a diarization provider, and attribution degrades to a single
// default speaker when none is present.
//
// # Backends
//
//   - diarization/pyannote: pyannote HTTP sidecar
package diarization
