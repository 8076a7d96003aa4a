package document

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dodd623/lucidscript/errors"
	"github.com/dodd623/lucidscript/transcript"
)

const (
	// DefaultLineWidth is the body-line wrap width in characters.
	DefaultLineWidth = 80
	// DefaultLinesPerPage is the body-line budget per page.
	DefaultLinesPerPage = 25
)

// Config holds layout parameters.
type Config struct {
	LineWidth    int `json:"line_width" yaml:"line_width" mapstructure:"line_width"`
	LinesPerPage int `json:"lines_per_page" yaml:"lines_per_page" mapstructure:"lines_per_page"`
}

// ApplyDefaults fills unset fields with the standard page geometry.
func (c *Config) ApplyDefaults() {
	if c.LineWidth == 0 {
		c.LineWidth = DefaultLineWidth
	}
	if c.LinesPerPage == 0 {
		c.LinesPerPage = DefaultLinesPerPage
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.LineWidth <= 0 {
		return fmt.Errorf("document.line_width must be positive (got: %d)", c.LineWidth)
	}
	if c.LinesPerPage <= 0 {
		return fmt.Errorf("document.lines_per_page must be positive (got: %d)", c.LinesPerPage)
	}
	return nil
}

// Layout flows labeled segments into an ordered block sequence: one Header,
// then per segment a SpeakerHeading followed by the segment text wrapped to
// cfg.LineWidth, with a PageBreak inserted whenever the running body-line
// count reaches cfg.LinesPerPage. Speaker headings do not count toward the
// page budget; only body lines do.
//
// Output ordering strictly follows input segment ordering. Malformed input
// (invalid geometry, a segment ending before it starts) fails with a
// validation error.
func Layout(title, language string, translated bool, labeled []transcript.LabeledSegment, cfg Config) ([]Block, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Validation(err.Error())
	}
	for i, seg := range labeled {
		if seg.End < seg.Start {
			return nil, errors.InvalidInput("segments",
				fmt.Sprintf("segment %d ends before it starts (%.3f < %.3f)", i, seg.End, seg.Start))
		}
	}

	blocks := []Block{Header{
		Title:       title,
		GeneratedAt: time.Now(),
		Language:    language,
		Translated:  translated,
	}}

	bodyLines := 0
	for _, seg := range labeled {
		blocks = append(blocks, SpeakerHeading{
			Speaker: seg.Speaker,
			Start:   seg.Start,
			End:     seg.End,
		})

		for _, line := range splitLines(seg.Text) {
			for _, wrapped := range wrap(line, cfg.LineWidth) {
				if bodyLines >= cfg.LinesPerPage {
					blocks = append(blocks, PageBreak{})
					bodyLines = 0
				}
				blocks = append(blocks, TextLine{Text: wrapped})
				bodyLines++
			}
		}
	}

	return blocks, nil
}

// LayoutText flows raw transcript text into a block sequence without speaker
// structure: one Header, then the text regrouped into sentence paragraphs,
// each wrapped to cfg.LineWidth and separated by a blank line. Blank
// separator lines count toward the page budget like any other body line.
func LayoutText(title, language string, translated bool, raw string, cfg Config) ([]Block, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Validation(err.Error())
	}

	blocks := []Block{Header{
		Title:       title,
		GeneratedAt: time.Now(),
		Language:    language,
		Translated:  translated,
	}}

	bodyLines := 0
	emit := func(text string) {
		if bodyLines >= cfg.LinesPerPage {
			blocks = append(blocks, PageBreak{})
			bodyLines = 0
		}
		blocks = append(blocks, TextLine{Text: text})
		bodyLines++
	}

	for i, para := range Paragraphs(raw) {
		if i > 0 {
			emit("")
		}
		for _, wrapped := range wrap(para, cfg.LineWidth) {
			emit(wrapped)
		}
	}

	return blocks, nil
}

// splitLines splits text on explicit newlines, preserving author-intended
// breaks. Empty text still yields one empty line.
func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// wrap greedily wraps line into pieces of at most width characters without
// splitting words. A word longer than width occupies a line on its own.
// An empty or whitespace-only line yields one empty piece.
func wrap(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var pieces []string
	var current []string
	width = max(width, 1)
	lineLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
			current = append(current, word)
			lineLen = wordLen
		case lineLen+1+wordLen > width:
			pieces = append(pieces, strings.Join(current, " "))
			current = []string{word}
			lineLen = wordLen
		default:
			current = append(current, word)
			lineLen += 1 + wordLen
		}
	}
	pieces = append(pieces, strings.Join(current, " "))
	return pieces
}
