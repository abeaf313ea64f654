// Package encoder converts ripped WAV files into FLAC files with the cue
// sheet embedded as a CUESHEET metadata block. Encoding shells out to the
// flac binary; this package only manages destinations, concurrency, and
// library bookkeeping.
package encoder
