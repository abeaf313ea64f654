package cuesheet

import (
	"platter/internal/timecode"
)

// TrackType is the closed set of track formats the converter understands.
type TrackType int

const (
	// TrackAudio is a standard CD-DA audio track.
	TrackAudio TrackType = iota
	// TrackMode1 is a CD-ROM data track with 2048-byte sectors.
	TrackMode1
)

func (t TrackType) String() string {
	switch t {
	case TrackAudio:
		return "AUDIO"
	case TrackMode1:
		return "MODE1"
	default:
		return "UNKNOWN"
	}
}

// Track is one parsed track group. Number is the 1-based position of the
// group in the disc.
type Track struct {
	Number        int
	Type          TrackType
	ISRC          string
	CopyPermitted bool

	// Start is the declared position within the source file, with the
	// TOC's bare "0" shorthand already normalized to zero frames.
	Start timecode.Frames

	Pregap    timecode.Frames
	HasPregap bool

	// Silence is leading silence declared before the track data. cdrdao
	// only writes it ahead of the first track of a rip, but that is a
	// convention of the writer, not enforced here; the emitter accumulates
	// it wherever it appears.
	Silence    timecode.Frames
	HasSilence bool
}

// Disc is the validated, immutable result of parsing a TOC. It is built in a
// single pass and discarded once the cue text has been emitted.
type Disc struct {
	Catalog string
	Tracks  []Track
}

// Parse folds, splits, and validates TOC text into a Disc tree.
func Parse(input string) (*Disc, error) {
	records, err := foldRecords(input)
	if err != nil {
		return nil, err
	}
	return parseDisc(splitTracks(records))
}

// parseDisc validates the token groups into a Disc tree.
func parseDisc(groups [][]string) (*Disc, error) {
	if len(groups) < 2 {
		return nil, &MissingFieldError{Key: trackKeyword}
	}

	tokenized := make([][][]string, 0, len(groups))
	for _, group := range groups {
		tokenized = append(tokenized, tokenize(group))
	}

	catalog, _, err := quotedField(tokenized[0], "CATALOG")
	if err != nil {
		return nil, err
	}

	disc := &Disc{Catalog: catalog}
	for number, group := range tokenized[1:] {
		track, err := parseTrack(number+1, group)
		if err != nil {
			return nil, err
		}
		disc.Tracks = append(disc.Tracks, track)
	}
	return disc, nil
}

func parseTrack(number int, group [][]string) (Track, error) {
	track := Track{Number: number}

	switch trackTypeToken(group) {
	case "AUDIO":
		track.Type = TrackAudio
	case "MODE1":
		track.Type = TrackMode1
	default:
		return Track{}, &UnknownTrackTypeError{Value: trackTypeToken(group)}
	}

	isrc, _, err := quotedField(group, "ISRC")
	if err != nil {
		return Track{}, err
	}
	track.ISRC = isrc
	track.CopyPermitted = copyPermitted(group)

	start, _, err := fileField(group)
	if err != nil {
		return Track{}, err
	}
	track.Start, err = parseStart(start)
	if err != nil {
		return Track{}, err
	}

	if raw, ok, err := timecodeField(group, "START"); err != nil {
		return Track{}, err
	} else if ok {
		track.Pregap, err = timecode.Parse(raw)
		if err != nil {
			return Track{}, err
		}
		track.HasPregap = true
	}

	if raw, ok, err := timecodeField(group, "SILENCE"); err != nil {
		return Track{}, err
	} else if ok {
		track.Silence, err = timecode.Parse(raw)
		if err != nil {
			return Track{}, err
		}
		track.HasSilence = true
	}

	return track, nil
}

// parseStart converts a FILE start position. cdrdao writes a literal 0 for
// the beginning of the file rather than a timecode.
func parseStart(raw string) (timecode.Frames, error) {
	if raw == "0" {
		return 0, nil
	}
	return timecode.Parse(raw)
}
