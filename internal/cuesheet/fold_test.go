package cuesheet

import (
	"errors"
	"strings"
	"testing"
)

func TestFoldRecordsBasic(t *testing.T) {
	input := "CATALOG \"1234567890123\"\n" +
		"\n" +
		"// a comment\n" +
		"TRACK AUDIO\n" +
		"  NO COPY\n"

	records, err := foldRecords(input)
	if err != nil {
		t.Fatalf("foldRecords: %v", err)
	}
	want := []string{
		`CATALOG "1234567890123"`,
		"TRACK AUDIO",
		"NO COPY",
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records %q, want %d", len(records), records, len(want))
	}
	for i, record := range records {
		if record != want[i] {
			t.Errorf("record %d = %q, want %q", i, record, want[i])
		}
	}
}

func TestFoldRecordsBlock(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"CD_TEXT {\n" +
		"  LANGUAGE 0 {\n" +
		"    TITLE \"ISRC inside a string\"\n" +
		"  }\n" +
		"}\n" +
		"FILE \"data.wav\" 0 300\n"

	records, err := foldRecords(input)
	if err != nil {
		t.Fatalf("foldRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records %q, want 3", len(records), records)
	}
	if firstToken(records[1]) != "CD_TEXT" {
		t.Errorf("block record starts with %q, want CD_TEXT", firstToken(records[1]))
	}
	if !strings.Contains(records[1], "ISRC inside a string") {
		t.Errorf("block interior lost: %q", records[1])
	}
	if records[2] != `FILE "data.wav" 0 300` {
		t.Errorf("record after block = %q", records[2])
	}
}

func TestFoldRecordsUnbalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"never closed", "CD_TEXT {\n  TITLE \"x\"\n"},
		{"negative balance", "}\n"},
		{"close without open after record", "TRACK AUDIO\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := foldRecords(tt.input)
			if !errors.Is(err, ErrUnbalancedBraces) {
				t.Fatalf("foldRecords error = %v, want ErrUnbalancedBraces", err)
			}
		})
	}
}

func TestFoldRecordsEmptyInput(t *testing.T) {
	records, err := foldRecords("// only a comment\n\n")
	if err != nil {
		t.Fatalf("foldRecords: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestSplitTracks(t *testing.T) {
	records := []string{
		`CATALOG "1234567890123"`,
		"TRACK AUDIO",
		"NO COPY",
		`FILE "data.wav" 0 03:24:50`,
		"TRACK AUDIO",
		`FILE "data.wav" 03:24:50 04:11:02`,
	}

	groups := splitTracks(records)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if len(groups[0]) != 1 || groups[0][0] != records[0] {
		t.Errorf("header group = %q", groups[0])
	}
	if len(groups[1]) != 3 {
		t.Errorf("track 1 group = %q", groups[1])
	}
	if len(groups[2]) != 2 {
		t.Errorf("track 2 group = %q", groups[2])
	}
}

func TestSplitTracksEmptyHeader(t *testing.T) {
	groups := splitTracks([]string{"TRACK AUDIO", `FILE "data.wav" 0 300`})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 0 {
		t.Errorf("header group = %q, want empty", groups[0])
	}
}
