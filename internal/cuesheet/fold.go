package cuesheet

import "strings"

const commentMarker = "//"

func netBraces(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// foldRecords turns raw TOC text into logical records. Blank lines and
// comment lines are dropped. Lines inside a brace-delimited block are joined
// into a single record so the block is handled as one opaque unit; a CD_TEXT
// block may contain quoted strings that look like directives, and folding
// keeps them from ever being matched as such.
func foldRecords(input string) ([]string, error) {
	var (
		records []string
		pending []string
		balance int
	)

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}
		pending = append(pending, line)

		balance += netBraces(line)
		if balance < 0 {
			return nil, ErrUnbalancedBraces
		}
		if balance == 0 {
			records = append(records, strings.TrimLeft(strings.Join(pending, "\n"), " \t"))
			pending = nil
		}
	}

	if balance != 0 || len(pending) != 0 {
		return nil, ErrUnbalancedBraces
	}
	return records, nil
}
