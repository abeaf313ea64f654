package ripdir

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	return Layout{RipDir: t.TempDir(), FlacDir: t.TempDir()}
}

func TestArtifactPaths(t *testing.T) {
	l := testLayout(t)

	if got := l.TOCPath("abc"); got != filepath.Join(l.RipDir, "abc.toc") {
		t.Errorf("TOCPath = %q", got)
	}
	if got := l.CuePath("abc"); got != filepath.Join(l.RipDir, "abc.cue") {
		t.Errorf("CuePath = %q", got)
	}
	if got := l.WAVPath("abc"); got != filepath.Join(l.RipDir, "abc.wav") {
		t.Errorf("WAVPath = %q", got)
	}
	if got := l.FlacPath("abc", 0); got != filepath.Join(l.FlacDir, "abc", "abc.flac") {
		t.Errorf("FlacPath = %q", got)
	}
	if got := l.FlacPath("abc", 2); got != filepath.Join(l.FlacDir, "abc-2", "abc-2.flac") {
		t.Errorf("FlacPath seq = %q", got)
	}
}

func TestDone(t *testing.T) {
	l := testLayout(t)

	if l.Done("abc") {
		t.Error("Done true before marker written")
	}
	if err := os.WriteFile(l.DonePath("abc"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !l.Done("abc") {
		t.Error("Done false after marker written")
	}
}

func TestDoneDiscIDsOrder(t *testing.T) {
	l := testLayout(t)

	base := time.Now().Add(-time.Hour)
	for _, id := range []string{"second", "first", "third"} {
		path := l.DonePath(id)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		var offset time.Duration
		switch id {
		case "first":
			offset = 0
		case "second":
			offset = time.Minute
		case "third":
			offset = 2 * time.Minute
		}
		mtime := base.Add(offset)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}
	// An unrelated file must not show up.
	if err := os.WriteFile(filepath.Join(l.RipDir, "first.toc"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := l.DoneDiscIDs()
	if err != nil {
		t.Fatalf("DoneDiscIDs: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %q", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestReadyDiscIDs(t *testing.T) {
	l := testLayout(t)

	write := func(path string) {
		t.Helper()
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// ready: all artifacts present
	write(l.DonePath("ready"))
	write(l.WAVPath("ready"))
	write(l.CuePath("ready"))
	// encoded already: wav gone
	write(l.DonePath("nowav"))
	write(l.CuePath("nowav"))
	// incomplete: no cue
	write(l.DonePath("nocue"))
	write(l.WAVPath("nocue"))

	ids, err := l.ReadyDiscIDs()
	if err != nil {
		t.Fatalf("ReadyDiscIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "ready" {
		t.Errorf("ReadyDiscIDs = %q, want [ready]", ids)
	}
}
