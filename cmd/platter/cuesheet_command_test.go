package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTOC = "CD_DA\n" +
	"CATALOG \"1234567890123\"\n" +
	"\n" +
	"TRACK AUDIO\n" +
	"NO COPY\n" +
	"ISRC \"US1234567890\"\n" +
	"FILE \"data.wav\" 0 03:24:50\n"

func runCuesheet(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"cuesheet"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCuesheetCommandPrintsCue(t *testing.T) {
	tocPath := writeTemp(t, "disc.toc", sampleTOC)

	out, err := runCuesheet(t, tocPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		"FILE \"data.wav\" BINARY",
		"CATALOG 1234567890123",
		"TRACK 01 AUDIO",
		"ISRC US1234567890",
		"INDEX 01 00:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output missing trailing newline")
	}
}

func TestCuesheetCommandCompare(t *testing.T) {
	tocPath := writeTemp(t, "disc.toc", sampleTOC)

	expected, err := runCuesheet(t, tocPath)
	if err != nil {
		t.Fatalf("generate reference: %v", err)
	}
	matching := writeTemp(t, "match.cue", expected)
	if _, err := runCuesheet(t, tocPath, "--compare", matching); err != nil {
		t.Errorf("matching reference reported mismatch: %v", err)
	}

	different := writeTemp(t, "diff.cue", expected+"REM extra\n")
	_, err = runCuesheet(t, tocPath, "--compare", different)
	if !errors.Is(err, errCueMismatch) {
		t.Errorf("err = %v, want errCueMismatch", err)
	}
}

func TestCuesheetCommandOutputFile(t *testing.T) {
	tocPath := writeTemp(t, "disc.toc", sampleTOC)
	cuePath := filepath.Join(t.TempDir(), "disc.cue")

	if _, err := runCuesheet(t, tocPath, "-o", cuePath); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(cuePath)
	if err != nil {
		t.Fatalf("cue not written: %v", err)
	}
	if !strings.Contains(string(data), "TRACK 01 AUDIO") {
		t.Errorf("cue content wrong:\n%s", data)
	}
}

func TestCuesheetCommandBadTOC(t *testing.T) {
	tocPath := writeTemp(t, "bad.toc", "CD_DA\nCD_TEXT {\nTRACK AUDIO\n")

	_, err := runCuesheet(t, tocPath)
	if err == nil {
		t.Fatal("expected conversion failure")
	}
	if !strings.Contains(err.Error(), "never closed") {
		t.Errorf("err = %v, want unbalanced-brace hint", err)
	}
}

func TestCuesheetCommandMissingInput(t *testing.T) {
	_, err := runCuesheet(t, filepath.Join(t.TempDir(), "absent.toc"))
	if err == nil {
		t.Fatal("expected read failure")
	}
}
