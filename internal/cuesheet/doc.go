// Package cuesheet converts cdrdao-style table-of-contents files into cue
// sheets suitable for embedding into a single monolithic audio file.
//
// Ripping the whole disc from sector zero means the rip may start before the
// nominal start of track 1, which stock toc2cue does not account for. The
// converter tracks the leading silence declared in the TOC and shifts audio
// track indexes by the accumulated offset so the cue matches the ripped data.
//
// Parsing is deliberately narrow: only the directives the cue output needs are
// interpreted, everything else is carried through a group unmatched, and
// brace-delimited blocks (CD_TEXT and friends) are folded into single opaque
// records so keywords inside quoted strings are never mistaken for directives.
// The conversion is a pure single-pass function from input text to output text
// with no I/O of its own.
package cuesheet
