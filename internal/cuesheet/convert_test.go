package cuesheet

import (
	"errors"
	"strings"
	"testing"
)

func TestConvertSimpleAudioDisc(t *testing.T) {
	input := "CD_DA\n" +
		"\n" +
		"TRACK AUDIO\n" +
		"NO COPY\n" +
		"FILE \"data.wav\" 0 03:24:50\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "FILE \"data.wav\" BINARY\n" +
		"TRACK 01 AUDIO\n" +
		"  INDEX 01 00:00:00\n"
	if got != want {
		t.Errorf("Convert =\n%q\nwant\n%q", got, want)
	}
	if strings.Contains(got, "INDEX 00") {
		t.Error("no-pregap track emitted INDEX 00")
	}
}

func TestConvertEndToEnd(t *testing.T) {
	input := "CATALOG \"1234567890123\"\n" +
		"\n" +
		"TRACK AUDIO\n" +
		"COPY\n" +
		"ISRC \"US1234567890\"\n" +
		"FILE \"data.wav\" 0 300\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	wantOrder := []string{
		`FILE "data.wav" BINARY`,
		"CATALOG 1234567890123",
		"TRACK 01 AUDIO",
		"FLAGS DCP",
		"ISRC US1234567890",
		"INDEX 01 00:00:00",
	}
	rest := got
	for _, line := range wantOrder {
		idx := strings.Index(rest, line)
		if idx < 0 {
			t.Fatalf("output missing %q in order:\n%s", line, got)
		}
		rest = rest[idx+len(line):]
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("output does not end with newline")
	}
}

func TestConvertPregap(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"NO COPY\n" +
		"FILE \"data.wav\" 0 05:00:00\n" +
		"START 00:02:00\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(got, "INDEX 00 00:00:00\n") {
		t.Errorf("missing pregap INDEX 00:\n%s", got)
	}
	if !strings.Contains(got, "INDEX 01 00:02:00\n") {
		t.Errorf("missing shifted INDEX 01:\n%s", got)
	}
}

func TestConvertSilenceOffset(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"NO COPY\n" +
		"SILENCE 00:01:00\n" +
		"FILE \"data.wav\" 0 03:00:00\n" +
		"TRACK AUDIO\n" +
		"NO COPY\n" +
		"FILE \"data.wav\" 03:00:00 04:00:00\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	// Track 1 starts at its declared position; the declared silence only
	// shifts tracks after it.
	if !strings.Contains(got, "TRACK 01 AUDIO\n  INDEX 01 00:00:00\n") {
		t.Errorf("track 1 start wrong:\n%s", got)
	}
	if !strings.Contains(got, "TRACK 02 AUDIO\n  INDEX 01 03:01:00\n") {
		t.Errorf("track 2 not shifted by silence:\n%s", got)
	}
}

func TestConvertMode1Track(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"NO COPY\n" +
		"SILENCE 00:02:00\n" +
		"FILE \"data.wav\" 0 03:00:00\n" +
		"TRACK MODE1\n" +
		"FILE \"data_1\" 0 1234\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	// Data tracks ignore accumulated silence entirely.
	if !strings.Contains(got, "TRACK 02 MODE1/2048\n  INDEX 01 00:00:00\n") {
		t.Errorf("MODE1 track wrong:\n%s", got)
	}
}

func TestConvertDataFirstDisc(t *testing.T) {
	input := "TRACK MODE1\n" +
		"FILE \"data_1\" 0 1234\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.HasPrefix(got, "FILE \"data_1\" BINARY\n") {
		t.Errorf("data-first disc FILE line wrong:\n%s", got)
	}
}

func TestConvertAmbiguousCatalog(t *testing.T) {
	input := "CATALOG \"1234567890123\"\n" +
		"CATALOG \"3210987654321\"\n" +
		"TRACK AUDIO\n" +
		"FILE \"data.wav\" 0 300\n"

	_, err := Convert(input)
	var ambiguous *AmbiguousFieldError
	if !errors.As(err, &ambiguous) || ambiguous.Key != "CATALOG" {
		t.Fatalf("err = %v, want AmbiguousFieldError{CATALOG}", err)
	}
}

func TestConvertAmbiguousISRC(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"ISRC \"US1234567890\"\n" +
		"ISRC \"US0987654321\"\n" +
		"FILE \"data.wav\" 0 300\n"

	_, err := Convert(input)
	var ambiguous *AmbiguousFieldError
	if !errors.As(err, &ambiguous) || ambiguous.Key != "ISRC" {
		t.Fatalf("err = %v, want AmbiguousFieldError{ISRC}", err)
	}
}

func TestConvertMissingFile(t *testing.T) {
	input := "TRACK AUDIO\nNO COPY\n"

	_, err := Convert(input)
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Key != "FILE" {
		t.Fatalf("err = %v, want MissingFieldError{FILE}", err)
	}
}

func TestConvertUnknownTrackType(t *testing.T) {
	input := "TRACK MODE2\n" +
		"FILE \"data_1\" 0 1234\n"

	_, err := Convert(input)
	var unknown *UnknownTrackTypeError
	if !errors.As(err, &unknown) || unknown.Value != "MODE2" {
		t.Fatalf("err = %v, want UnknownTrackTypeError{MODE2}", err)
	}
}

func TestConvertUnbalancedInput(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"CD_TEXT {\n" +
		"  TITLE \"never closed\"\n"

	out, err := Convert(input)
	if !errors.Is(err, ErrUnbalancedBraces) {
		t.Fatalf("err = %v, want ErrUnbalancedBraces", err)
	}
	if out != "" {
		t.Errorf("failed conversion produced output %q", out)
	}
}

func TestConvertBlockKeywordsIgnored(t *testing.T) {
	// An ISRC inside a CD_TEXT block must not count as the track's ISRC.
	input := "TRACK AUDIO\n" +
		"NO COPY\n" +
		"CD_TEXT {\n" +
		"  LANGUAGE 0 {\n" +
		"    ISRC \"ZZ0000000000\"\n" +
		"  }\n" +
		"}\n" +
		"ISRC \"US1234567890\"\n" +
		"FILE \"data.wav\" 0 300\n"

	got, err := Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(got, "ISRC US1234567890\n") {
		t.Errorf("real ISRC missing:\n%s", got)
	}
	if strings.Contains(got, "ZZ0000000000") {
		t.Errorf("CD_TEXT interior leaked into output:\n%s", got)
	}
}

func TestConvertMalformedTimecode(t *testing.T) {
	input := "TRACK AUDIO\n" +
		"FILE \"data.wav\" 00:00 300\n"

	_, err := Convert(input)
	if err == nil {
		t.Fatal("Convert succeeded on malformed start timecode")
	}
}

func TestConvertNoTracks(t *testing.T) {
	_, err := Convert("CATALOG \"1234567890123\"\n")
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Key != "TRACK" {
		t.Fatalf("err = %v, want MissingFieldError{TRACK}", err)
	}
}
