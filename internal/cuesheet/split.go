package cuesheet

import "strings"

const trackKeyword = "TRACK"

func firstToken(record string) string {
	fields := strings.Fields(record)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitTracks partitions logical records into groups: a leading header group
// holding everything before the first TRACK directive, then one group per
// track. The header group is always present, even when no records precede the
// first track. Track numbers are positional; the Nth non-header group is
// track N regardless of anything declared inside it.
func splitTracks(records []string) [][]string {
	groups := [][]string{nil}

	for _, record := range records {
		if firstToken(record) == trackKeyword {
			groups = append(groups, nil)
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], record)
	}

	return groups
}
