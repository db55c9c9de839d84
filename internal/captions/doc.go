// Package captions parses timed-text caption files and submits one caption
// track per detected language to the remote platform.
//
// Parsing is deliberately forgiving: malformed blocks are dropped from the
// track, files producing no cues are skipped with a warning, and a
// submission failure for one file never aborts the remaining files.
package captions
