package cuesheet

import (
	"fmt"
	"strings"

	"platter/internal/timecode"
)

// aggregateFileName picks the FILE directive name for the cue. Audio-first
// discs are ripped to a WAV container; anything else gets the generic data
// file name.
func aggregateFileName(audioFirst bool) string {
	if audioFirst {
		return `"data.wav"`
	}
	return `"data_1"`
}

type cueWriter struct {
	b strings.Builder
}

func (w *cueWriter) line(level int, parts ...string) {
	w.b.WriteString(strings.Repeat("  ", level))
	w.b.WriteString(strings.Join(parts, " "))
	w.b.WriteByte('\n')
}

// Render walks the parsed disc and renders cue text. The only state carried
// across tracks is the accumulated silence offset, which shifts every later
// audio track's indexes so they line up with a rip taken from sector zero.
func Render(disc *Disc) string {
	var w cueWriter

	audioFirst := disc.Tracks[0].Type == TrackAudio
	w.line(0, "FILE", aggregateFileName(audioFirst), "BINARY")
	if disc.Catalog != "" {
		w.line(0, "CATALOG", disc.Catalog)
	}

	var silenceOffset timecode.Frames
	for _, track := range disc.Tracks {
		number := fmt.Sprintf("%02d", track.Number)

		switch track.Type {
		case TrackAudio:
			w.line(0, "TRACK", number, "AUDIO")
			if track.CopyPermitted {
				w.line(1, "FLAGS", "DCP")
			}
			if track.ISRC != "" {
				w.line(1, "ISRC", track.ISRC)
			}

			start := track.Start + silenceOffset
			if track.HasPregap {
				w.line(1, "INDEX", "00", start.String())
				w.line(1, "INDEX", "01", (start + track.Pregap).String())
			} else {
				w.line(1, "INDEX", "01", start.String())
			}

			if track.HasSilence {
				silenceOffset += track.Silence
			}

		case TrackMode1:
			// Data tracks are not subject to pregap or silence
			// accounting.
			w.line(0, "TRACK", number, "MODE1/2048")
			w.line(1, "INDEX", "01", "00:00:00")
		}
	}

	return w.b.String()
}

// Convert translates cdrdao TOC text into cue sheet text. It is a pure
// function: no I/O, no retained state, safe to call concurrently.
func Convert(input string) (string, error) {
	disc, err := Parse(input)
	if err != nil {
		return "", err
	}
	return Render(disc), nil
}
