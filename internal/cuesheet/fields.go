package cuesheet

import "strings"

// tokenize splits every record in a group on whitespace. A folded block
// record tokenizes across its embedded newlines, but only its first token is
// ever compared against a directive key, so its interior stays opaque.
func tokenize(group []string) [][]string {
	tokens := make([][]string, 0, len(group))
	for _, record := range group {
		tokens = append(tokens, strings.Fields(record))
	}
	return tokens
}

// extractField finds the single record in a tokenized group whose first token
// equals key and returns its remaining tokens. Two or more matches is an
// AmbiguousFieldError; zero matches is a MissingFieldError when required,
// otherwise an absent result.
func extractField(group [][]string, key string, required bool) ([]string, bool, error) {
	var (
		match []string
		found bool
	)
	for _, tokens := range group {
		if len(tokens) == 0 || tokens[0] != key {
			continue
		}
		if found {
			return nil, false, &AmbiguousFieldError{Key: key}
		}
		match = tokens[1:]
		found = true
	}
	if !found {
		if required {
			return nil, false, &MissingFieldError{Key: key}
		}
		return nil, false, nil
	}
	return match, true, nil
}

// unquote strips one pair of surrounding double quotes. Tokens that are not
// quoted pass through unchanged; the TOC grammar quotes the values we care
// about, anything else is preserved as written.
func unquote(token string) string {
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		return token[1 : len(token)-1]
	}
	return token
}

// quotedField extracts an optional single-value directive and unquotes it.
// Used for CATALOG and ISRC.
func quotedField(group [][]string, key string) (string, bool, error) {
	tokens, ok, err := extractField(group, key, false)
	if err != nil || !ok {
		return "", false, err
	}
	if len(tokens) == 0 {
		return "", false, nil
	}
	return unquote(tokens[0]), true, nil
}

// fileField extracts the required FILE directive and returns its start and
// length tokens. The file name itself is discarded: the cue always names the
// aggregate rip file, not the per-track source the TOC declares.
func fileField(group [][]string) (start, length string, err error) {
	tokens, _, err := extractField(group, "FILE", true)
	if err != nil {
		return "", "", err
	}
	if len(tokens) < 3 {
		return "", "", &MissingFieldError{Key: "FILE"}
	}
	return tokens[1], tokens[2], nil
}

// timecodeField extracts an optional directive carrying a single timecode
// token, such as START or SILENCE.
func timecodeField(group [][]string, key string) (string, bool, error) {
	tokens, ok, err := extractField(group, key, false)
	if err != nil || !ok {
		return "", false, err
	}
	if len(tokens) == 0 {
		return "", false, nil
	}
	return tokens[0], true, nil
}

// copyPermitted reports whether the group carries a bare COPY directive.
// Most tracks carry NO COPY, whose first token never matches.
func copyPermitted(group [][]string) bool {
	for _, tokens := range group {
		if len(tokens) == 1 && tokens[0] == "COPY" {
			return true
		}
	}
	return false
}

// trackTypeToken returns the declared type from the group's TRACK record.
// TRACK is always the group's first record because it is what starts a group.
func trackTypeToken(group [][]string) string {
	if len(group) == 0 || len(group[0]) < 2 || group[0][0] != trackKeyword {
		return ""
	}
	return group[0][1]
}
