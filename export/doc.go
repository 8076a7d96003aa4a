// Package export orchestrates the transcript export pipeline: acquire audio
// (upload or URL fetch), transcribe it, optionally detect speakers, lay the
// transcript out as document blocks, render those blocks to the requested
// format, and store the artifact.
//
// The recognition engines are injected as transcription.Provider and
// diarization.Provider. The diarization provider is optional: when it is
// absent or fails, every segment falls back to the default speaker label and
// the export still succeeds.
package export
