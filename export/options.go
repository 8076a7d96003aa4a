package export

import (
	"github.com/dodd623/lucidscript/docwriter"
	"github.com/dodd623/lucidscript/validation"
)

// Document styles.
const (
	StyleStandard   = "standard"
	StyleDeposition = "deposition"
)

// Document titles per style.
const (
	TitleStandard   = "LucidScript Transcript"
	TitleDeposition = "LucidScript Deposition Transcript"
)

// Options are the per-request export parameters. Exactly one of SourceURL
// and AudioPath must be set.
type Options struct {
	// SourceURL is a video platform URL to fetch audio from.
	SourceURL string `json:"source_url,omitempty" validate:"omitempty,url"`
	// AudioPath is a local audio file, typically a saved upload.
	AudioPath string `json:"-"`
	// Language hints the audio language; empty means auto-detect.
	Language string `json:"language,omitempty" validate:"omitempty,max=16"`
	// Translate requests translation of the transcript into English.
	Translate bool `json:"translate,omitempty"`
	// Diarize requests speaker detection. Only meaningful for the
	// deposition style; silently ignored otherwise.
	Diarize bool `json:"diarize,omitempty"`
	// NumSpeakers is the exact expected speaker count (0 = auto).
	NumSpeakers int `json:"num_speakers,omitempty" validate:"min=0,max=16"`
	// Style selects the document layout: "standard" or "deposition".
	Style string `json:"style,omitempty" validate:"omitempty,oneof=standard deposition"`
	// Format selects the output file format: "pdf" or "txt".
	Format string `json:"format,omitempty" validate:"omitempty,oneof=pdf txt"`
}

// ApplyDefaults fills unset style and format.
func (o *Options) ApplyDefaults() {
	if o.Style == "" {
		o.Style = StyleStandard
	}
	if o.Format == "" {
		o.Format = docwriter.FormatPDF
	}
}

// Validate checks the options for a runnable export request. Per-field
// constraints come from the struct tags; the cross-field source rule goes
// through the fluent validator.
func (o *Options) Validate() error {
	if err := validation.Validate(o); err != nil {
		return err
	}

	v := validation.New()
	v.Custom(o.SourceURL != "" || o.AudioPath != "", "source", "provide a file or a source URL")
	v.Custom(o.SourceURL == "" || o.AudioPath == "", "source", "provide either a file or a source URL, not both")
	v.URL("source_url", o.SourceURL)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Title returns the document title for the selected style.
func (o *Options) Title() string {
	if o.Style == StyleDeposition {
		return TitleDeposition
	}
	return TitleStandard
}

// Result describes a finished export.
type Result struct {
	Message     string  `json:"message"`
	Artifact    string  `json:"artifact"`
	URL         string  `json:"url,omitempty"`
	Language    string  `json:"language"`
	DurationSec float64 `json:"duration_sec,omitempty"`
	Translated  bool    `json:"translated"`
	// Source reports where the audio came from: "url" or "upload".
	Source string `json:"source"`
}
