// Package media prepares audio for the recognition engines. It wraps two
// external tools: ffmpeg for converting arbitrary audio/video input to the
// 16 kHz mono WAV the engines expect, and yt-dlp for fetching audio from
// video platform URLs.
//
// Both tools are invoked as subprocesses. Callers should check availability
// at startup via CheckTools and treat a missing yt-dlp as a soft failure
// (URL fetch disabled) and a missing ffmpeg as fatal.
package media
