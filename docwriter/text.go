package docwriter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dodd623/lucidscript/document"
)

// TextWriter renders blocks as plain UTF-8 text. Pages are separated by a
// form feed so pagination survives into the text output.
type TextWriter struct{}

// NewTextWriter creates a plain text writer.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

func (*TextWriter) Extension() string   { return "txt" }
func (*TextWriter) ContentType() string { return "text/plain; charset=utf-8" }

// Write renders the block sequence to w.
func (*TextWriter) Write(w io.Writer, blocks []document.Block) error {
	bw := bufio.NewWriter(w)

	for _, block := range blocks {
		switch b := block.(type) {
		case document.Header:
			fmt.Fprintln(bw, b.Title)
			fmt.Fprintln(bw, b.Meta())
			fmt.Fprintln(bw)
		case document.SpeakerHeading:
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, b.String())
		case document.TextLine:
			fmt.Fprintln(bw, b.Text)
		case document.PageBreak:
			fmt.Fprintln(bw, "\f")
		}
	}

	return bw.Flush()
}

var _ Writer = (*TextWriter)(nil)
