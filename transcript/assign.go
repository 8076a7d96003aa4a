package transcript

import (
	"strings"

	"github.com/dodd623/lucidscript/diarization"
	"github.com/dodd623/lucidscript/transcription"
)

// DefaultSpeaker is the fallback identity used when diarization is
// unavailable, when a segment overlaps no turn, or when the best overlap
// is ambiguous.
const DefaultSpeaker = "Speaker 1"

// LabeledSegment is a transcript segment attributed to one speaker.
type LabeledSegment struct {
	// Speaker is the attributed speaker label.
	Speaker string `json:"speaker"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the whitespace-trimmed segment text.
	Text string `json:"text"`
}

// AssignSpeakers labels every segment with the most plausible speaker.
//
// The result has the same length and order as segments and every segment
// receives a label; the function never fails. With no turns, every segment
// is labeled DefaultSpeaker. Otherwise each segment is attributed to the
// turn with strictly greatest time overlap; a tie at the maximum, or zero
// overlap everywhere, falls back to DefaultSpeaker rather than picking a
// turn arbitrarily.
func AssignSpeakers(segments []transcription.Segment, turns []diarization.Turn) []LabeledSegment {
	labeled := make([]LabeledSegment, len(segments))

	if len(turns) == 0 {
		for i, seg := range segments {
			labeled[i] = LabeledSegment{
				Speaker: DefaultSpeaker,
				Start:   seg.Start,
				End:     seg.End,
				Text:    strings.TrimSpace(seg.Text),
			}
		}
		return labeled
	}

	for i, seg := range segments {
		best := DefaultSpeaker
		bestOverlap := 0.0
		for _, turn := range turns {
			if ov := overlap(seg.Start, seg.End, turn.Start, turn.End); ov > bestOverlap {
				best = turn.Speaker
				bestOverlap = ov
			} else if ov == bestOverlap && ov > 0 && turn.Speaker != best {
				// Two turns share the maximum: the attribution is
				// ambiguous, so fall back to the default.
				best = DefaultSpeaker
			}
		}
		labeled[i] = LabeledSegment{
			Speaker: best,
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
		}
	}
	return labeled
}

// overlap returns the length of the time intersection of [s, e) and [ds, de),
// zero when the intervals are disjoint or merely touching.
func overlap(s, e, ds, de float64) float64 {
	lo := s
	if ds > lo {
		lo = ds
	}
	hi := e
	if de < hi {
		hi = de
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
