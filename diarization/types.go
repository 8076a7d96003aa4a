package diarization

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Result holds the result of a diarization call.
type Result struct {
	// Turns contains speaker-attributed time intervals. The set may be
	// empty and carries no ordering guarantee.
	Turns []Turn `json:"turns"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Turn represents a time interval attributed to one speaker identity.
type Turn struct {
	// Speaker is the identified speaker label.
	Speaker string `json:"speaker"`
	// Start is the interval start time in seconds.
	Start float64 `json:"start"`
	// End is the interval end time in seconds.
	End float64 `json:"end"`
}
