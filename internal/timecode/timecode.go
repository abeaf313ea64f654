// Package timecode represents disc time positions as frame counts.
//
// CDs address audio in frames of 1/75 second. Positions in TOC and cue files
// are written as MM:SS:FF with FF below 75. Keeping positions as a distinct
// Frames type avoids mixing them up with seconds or track numbers, and makes
// offset arithmetic plain integer addition with the carry handled at render
// time.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// FramesPerSecond is the CD audio addressing rate.
const FramesPerSecond = 75

// Frames is a count of 1/75-second frames. The zero value renders as
// "00:00:00" and is the additive identity.
type Frames int64

// MalformedTimecodeError reports text that is not a valid MM:SS:FF timecode.
type MalformedTimecodeError struct {
	Text string
}

func (e *MalformedTimecodeError) Error() string {
	return fmt.Sprintf("malformed timecode %q", e.Text)
}

// Parse converts an MM:SS:FF string into a frame count. The input must be
// exactly three colon-separated integer fields. No upper bound is placed on
// the minutes field; long discs legitimately exceed an hour.
func Parse(text string) (Frames, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0, &MalformedTimecodeError{Text: text}
	}
	fields := make([]int64, 3)
	for i, part := range parts {
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, &MalformedTimecodeError{Text: text}
		}
		fields[i] = value
	}
	minutes, seconds, frames := fields[0], fields[1], fields[2]
	return Frames(minutes*60*FramesPerSecond + seconds*FramesPerSecond + frames), nil
}

// String renders the frame count as zero-padded MM:SS:FF. Carries across the
// 75-frame and 60-second boundaries fall out of the divmod chain.
func (f Frames) String() string {
	seconds, frames := f/FramesPerSecond, f%FramesPerSecond
	minutes, seconds := seconds/60, seconds%60
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}
