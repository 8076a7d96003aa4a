// Package transcript attributes recognized speech segments to speakers.
//
// The assigner is a pure function over already-materialized input: it maps
// time-aligned transcript segments and (possibly empty) diarization turns to
// speaker-labeled segments, degrading to a single default speaker when
// diarization is unavailable or ambiguous.
package transcript
