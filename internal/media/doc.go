// Package media discovers staged assets inside a correlation directory.
//
// The staging convention is one directory per correlation id containing the
// primary video file(s), an optional cover image, and optional timed-text
// caption files. Discovery is extension-driven and deterministic: videos
// and captions sort by name, the cover is the first matching image.
package media
