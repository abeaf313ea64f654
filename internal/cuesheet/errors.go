package cuesheet

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBraces reports a brace-delimited block that never closes, or a
// closing brace with no matching open. The input is rejected outright since
// record folding cannot recover from it.
var ErrUnbalancedBraces = errors.New("unbalanced braces in toc input")

// AmbiguousFieldError reports a directive that appeared more than once in a
// group where at most one occurrence is allowed.
type AmbiguousFieldError struct {
	Key string
}

func (e *AmbiguousFieldError) Error() string {
	return fmt.Sprintf("directive %s appears more than once in group", e.Key)
}

// MissingFieldError reports a required directive that was absent from a group.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required directive %s missing from group", e.Key)
}

// UnknownTrackTypeError reports a TRACK declaration outside the supported
// AUDIO and MODE1 types.
type UnknownTrackTypeError struct {
	Value string
}

func (e *UnknownTrackTypeError) Error() string {
	return fmt.Sprintf("unknown track type %q", e.Value)
}
