package document

import (
	"strings"
	"testing"

	"github.com/dodd623/lucidscript/transcript"
	"github.com/dodd623/lucidscript/transcription"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{65.4, "01:05"},
		{125, "02:05"},
		{-3, "00:00"},
		{3599.2, "59:59"},
		// Seconds round without carrying into minutes; values just
		// below a minute boundary render as :60.
		{59.6, "00:60"},
		{119.7, "01:60"},
	}
	for _, tc := range tests {
		if got := FormatTimestamp(tc.in); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSpeakerHeadingString(t *testing.T) {
	h := SpeakerHeading{Speaker: "Speaker 1", Start: 0, End: 5}
	if got := h.String(); got != "Speaker 1  [00:00–00:05]" {
		t.Errorf("unexpected heading: %q", got)
	}
}

func TestHeaderMeta(t *testing.T) {
	t.Run("unknown language", func(t *testing.T) {
		h := Header{Language: ""}
		if !strings.Contains(h.Meta(), "Language: unknown") {
			t.Errorf("expected unknown-language marker, got %q", h.Meta())
		}
	})

	t.Run("translated marker", func(t *testing.T) {
		h := Header{Language: "es", Translated: true}
		meta := h.Meta()
		if !strings.Contains(meta, "Language: es") {
			t.Errorf("expected language tag, got %q", meta)
		}
		if !strings.Contains(meta, "Translated→English") {
			t.Errorf("expected translation marker, got %q", meta)
		}
	})

	t.Run("no translated marker", func(t *testing.T) {
		h := Header{Language: "en"}
		if strings.Contains(h.Meta(), "Translated") {
			t.Errorf("unexpected translation marker: %q", h.Meta())
		}
	})
}

func TestWrapGreedy(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "hello there", 20, []string{"hello there"}},
		{"two lines", "one two three four", 9, []string{"one two", "three", "four"}},
		{"exact width", "aaaa bbbb", 9, []string{"aaaa bbbb"}},
		{"one past width", "aaaa bbbbb", 9, []string{"aaaa", "bbbbb"}},
		{"long word kept whole", "a verylongunbreakableword b", 6, []string{"a", "verylongunbreakableword", "b"}},
		{"empty", "", 10, []string{""}},
		{"whitespace only", "   \t ", 10, []string{""}},
		{"collapses inner runs", "a   b", 10, []string{"a b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wrap(tc.line, tc.width)
			if len(got) != len(tc.want) {
				t.Fatalf("wrap(%q, %d) = %v, want %v", tc.line, tc.width, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLayoutEndToEnd(t *testing.T) {
	labeled := transcript.AssignSpeakers([]transcription.Segment{
		{Start: 0, End: 5, Text: "Hello there."},
		{Start: 5, End: 10, Text: "How are you?"},
	}, nil)

	blocks, err := Layout("Deposition", "en", false, labeled, Config{})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	want := []string{"Header", "SpeakerHeading", "TextLine", "SpeakerHeading", "TextLine"}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %#v", len(want), len(blocks), blocks)
	}

	header, ok := blocks[0].(Header)
	if !ok {
		t.Fatalf("expected Header first, got %T", blocks[0])
	}
	if header.Title != "Deposition" || header.GeneratedAt.IsZero() {
		t.Errorf("unexpected header: %+v", header)
	}

	h1 := blocks[1].(SpeakerHeading)
	if h1.String() != "Speaker 1  [00:00–00:05]" {
		t.Errorf("unexpected first heading: %q", h1.String())
	}
	if line := blocks[2].(TextLine); line.Text != "Hello there." {
		t.Errorf("unexpected first line: %q", line.Text)
	}
	h2 := blocks[3].(SpeakerHeading)
	if h2.String() != "Speaker 1  [00:05–00:10]" {
		t.Errorf("unexpected second heading: %q", h2.String())
	}
	if line := blocks[4].(TextLine); line.Text != "How are you?" {
		t.Errorf("unexpected second line: %q", line.Text)
	}

	for _, b := range blocks {
		if _, ok := b.(PageBreak); ok {
			t.Error("short document must not contain page breaks")
		}
	}
}

func TestLayoutPagination(t *testing.T) {
	// Three body lines with a two-line page: exactly one break, after the
	// second line.
	labeled := []transcript.LabeledSegment{
		{Speaker: "Speaker 1", Start: 0, End: 9, Text: "line one\nline two\nline three"},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{LineWidth: 80, LinesPerPage: 2})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	var kinds []string
	for _, b := range blocks {
		switch b.(type) {
		case Header:
			kinds = append(kinds, "header")
		case SpeakerHeading:
			kinds = append(kinds, "speaker")
		case TextLine:
			kinds = append(kinds, "line")
		case PageBreak:
			kinds = append(kinds, "break")
		}
	}
	want := []string{"header", "speaker", "line", "line", "break", "line"}
	if strings.Join(kinds, " ") != strings.Join(want, " ") {
		t.Errorf("block order = %v, want %v", kinds, want)
	}
}

func TestLayoutSpeakerHeadingsDoNotCount(t *testing.T) {
	labeled := []transcript.LabeledSegment{
		{Speaker: "A", Start: 0, End: 1, Text: "one"},
		{Speaker: "B", Start: 1, End: 2, Text: "two"},
		{Speaker: "C", Start: 2, End: 3, Text: "three"},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{LinesPerPage: 3})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	for _, b := range blocks {
		if _, ok := b.(PageBreak); ok {
			t.Fatal("three body lines fit one page; headings must not count toward the budget")
		}
	}
}

func TestLayoutPageBreakCarriesAcrossSegments(t *testing.T) {
	labeled := []transcript.LabeledSegment{
		{Speaker: "A", Start: 0, End: 1, Text: "one\ntwo"},
		{Speaker: "B", Start: 1, End: 2, Text: "three"},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{LinesPerPage: 2})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	breakIdx := -1
	for i, b := range blocks {
		if _, ok := b.(PageBreak); ok {
			breakIdx = i
		}
	}
	if breakIdx == -1 {
		t.Fatal("expected a page break before the third body line")
	}
	if _, ok := blocks[breakIdx+1].(TextLine); !ok {
		t.Fatalf("expected a TextLine after the break, got %T", blocks[breakIdx+1])
	}
}

func TestLayoutEmptyTextYieldsOneEmptyLine(t *testing.T) {
	labeled := []transcript.LabeledSegment{
		{Speaker: "A", Start: 0, End: 1, Text: ""},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected header + heading + one empty line, got %d blocks", len(blocks))
	}
	if line := blocks[2].(TextLine); line.Text != "" {
		t.Errorf("expected empty line, got %q", line.Text)
	}
}

func TestLayoutPreservesBlankLineIntent(t *testing.T) {
	labeled := []transcript.LabeledSegment{
		{Speaker: "A", Start: 0, End: 1, Text: "first\n\nsecond"},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	var lines []string
	for _, b := range blocks {
		if l, ok := b.(TextLine); ok {
			lines = append(lines, l.Text)
		}
	}
	want := []string{"first", "", "second"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog and keeps running until it " +
		"reaches the far side of the meadow where the river bends south."
	labeled := []transcript.LabeledSegment{
		{Speaker: "A", Start: 0, End: 30, Text: text},
	}

	blocks, err := Layout("T", "en", false, labeled, Config{LineWidth: 30})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	var lines []string
	for _, b := range blocks {
		if l, ok := b.(TextLine); ok {
			if len(l.Text) > 30 {
				t.Errorf("line exceeds width: %q", l.Text)
			}
			lines = append(lines, l.Text)
		}
	}
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("round-trip mismatch:\n got %q\nwant %q", got, text)
	}
}

func TestLayoutValidation(t *testing.T) {
	labeled := []transcript.LabeledSegment{{Speaker: "A", Start: 0, End: 1, Text: "x"}}

	t.Run("negative line width", func(t *testing.T) {
		if _, err := Layout("T", "en", false, labeled, Config{LineWidth: -1}); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("negative lines per page", func(t *testing.T) {
		if _, err := Layout("T", "en", false, labeled, Config{LinesPerPage: -5}); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("segment ends before start", func(t *testing.T) {
		bad := []transcript.LabeledSegment{{Speaker: "A", Start: 5, End: 2, Text: "x"}}
		if _, err := Layout("T", "en", false, bad, Config{}); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("zero config uses defaults", func(t *testing.T) {
		if _, err := Layout("T", "en", false, labeled, Config{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"sentence boundaries",
			"First sentence. Second one! Third? Yes.",
			[]string{"First sentence.", "Second one!", "Third?", "Yes."},
		},
		{
			"no split before lowercase",
			"See fig. 2 for details. it continues here",
			[]string{"See fig.", "2 for details. it continues here"},
		},
		{
			"whitespace collapsed",
			"  One\n\ttwo   three.  Four five.  ",
			[]string{"One two three.", "Four five."},
		},
		{"empty", "   ", nil},
		{"single", "Just one sentence", []string{"Just one sentence"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Paragraphs(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Paragraphs(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("paragraph %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLayoutText(t *testing.T) {
	raw := "Good morning everyone. Today we discuss the quarterly results. Revenue grew by twelve percent."

	blocks, err := LayoutText("LucidScript Transcript", "en", false, raw, Config{})
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}

	hdr, ok := blocks[0].(Header)
	if !ok {
		t.Fatalf("first block is %T, want Header", blocks[0])
	}
	if hdr.Title != "LucidScript Transcript" {
		t.Errorf("Title = %q", hdr.Title)
	}

	var lines []string
	for _, b := range blocks[1:] {
		tl, ok := b.(TextLine)
		if !ok {
			t.Fatalf("unexpected block type %T", b)
		}
		lines = append(lines, tl.Text)
	}

	// Three sentence paragraphs separated by blank lines.
	want := []string{
		"Good morning everyone.",
		"",
		"Today we discuss the quarterly results.",
		"",
		"Revenue grew by twelve percent.",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %#v, want %#v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLayoutTextPagination(t *testing.T) {
	raw := "One. Two. Three."
	blocks, err := LayoutText("T", "en", false, raw, Config{LineWidth: 80, LinesPerPage: 2})
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}

	// Body sequence: "One." "" | break "Two." "" | break "Three."
	var gotBreaks int
	bodySinceBreak := 0
	for _, b := range blocks[1:] {
		switch b.(type) {
		case PageBreak:
			if bodySinceBreak != 2 {
				t.Errorf("page had %d body lines before break, want 2", bodySinceBreak)
			}
			gotBreaks++
			bodySinceBreak = 0
		case TextLine:
			bodySinceBreak++
		}
	}
	if gotBreaks != 2 {
		t.Errorf("page breaks = %d, want 2", gotBreaks)
	}
}

func TestLayoutTextInvalidConfig(t *testing.T) {
	if _, err := LayoutText("T", "en", false, "Hello.", Config{LineWidth: -1}); err == nil {
		t.Error("expected validation error")
	}
}
