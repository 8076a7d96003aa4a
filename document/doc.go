// Package document flows speaker-attributed transcript text into a
// fixed-width, page-bounded block layout.
//
// Layout is a pure function: it turns labeled segments into an ordered
// sequence of styled blocks (header, speaker headings, wrapped body lines,
// page breaks) that a document writer persists. It performs no I/O and may
// be invoked concurrently for independent inputs.
package document
