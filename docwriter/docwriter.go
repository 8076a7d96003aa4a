// Package docwriter renders laid-out document blocks into deliverable file
// formats. Each Writer consumes the block sequence produced by
// document.Layout and serializes it; the block stream is the single source
// of truth for wrapping and pagination, so writers never re-flow text.
package docwriter

import (
	"io"

	"github.com/dodd623/lucidscript/document"
	"github.com/dodd623/lucidscript/errors"
)

// Supported output formats.
const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

// Writer serializes document blocks into one output format.
type Writer interface {
	// Write renders blocks to w.
	Write(w io.Writer, blocks []document.Block) error

	// Extension returns the file extension without a dot, e.g. "pdf".
	Extension() string

	// ContentType returns the MIME type of the output.
	ContentType() string
}

// ForFormat returns the Writer for the given format name.
func ForFormat(format string) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(), nil
	case FormatPDF:
		return NewPDFWriter(), nil
	default:
		return nil, errors.InvalidInput("format", "unsupported output format: "+format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatPDF, FormatText}
}
