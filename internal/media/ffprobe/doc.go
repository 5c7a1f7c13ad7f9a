// Package ffprobe wraps the ffprobe binary for audio inspection.
//
// The wrapper shells out once per file and decodes the JSON report into
// typed structs. Numeric fields arrive from ffprobe as strings and are
// parsed lazily through accessor methods; a malformed field yields NaN so
// callers can distinguish "unparseable" from a measured zero.
package ffprobe
