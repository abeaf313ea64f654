// Package ripdir defines the on-disk layout of the rip workspace and the
// flac library.
//
// Every disc is keyed by its disc ID and owns a fixed set of artifacts in the
// rip directory: the raw TOC from cdrdao, the generated cue sheet, the ripped
// WAV, and a done marker whose presence means the rip completed. Encoded
// output lives under the flac directory with one subdirectory per disc so
// players that group by directory keep releases apart.
package ripdir

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Artifact suffixes within the rip directory.
const (
	TOCSuffix  = ".toc"  // from cdrdao read-toc
	CueSuffix  = ".cue"  // generated, input to flac encoding
	WAVSuffix  = ".wav"  // from cdparanoia
	DoneSuffix = ".done" // rip completion marker
	FlacSuffix = ".flac"
)

// Layout resolves artifact paths for a configured workspace.
type Layout struct {
	RipDir  string
	FlacDir string
}

func (l Layout) ripPath(discID, suffix string) string {
	return filepath.Join(l.RipDir, discID+suffix)
}

// TOCPath returns where cdrdao writes the disc's table of contents.
func (l Layout) TOCPath(discID string) string { return l.ripPath(discID, TOCSuffix) }

// CuePath returns where the generated cue sheet is published.
func (l Layout) CuePath(discID string) string { return l.ripPath(discID, CueSuffix) }

// WAVPath returns where cdparanoia writes the whole-disc rip.
func (l Layout) WAVPath(discID string) string { return l.ripPath(discID, WAVSuffix) }

// DonePath returns the completion marker path. A disc is done when this file
// exists.
func (l Layout) DonePath(discID string) string { return l.ripPath(discID, DoneSuffix) }

// FlacPath returns the encoded output path for a disc. A nonzero sequence
// distinguishes multiple rips of the same disc ID.
func (l Layout) FlacPath(discID string, sequence int) string {
	name := discID
	if sequence > 0 {
		name = discID + "-" + strconv.Itoa(sequence)
	}
	return filepath.Join(l.FlacDir, name, name+FlacSuffix)
}

// Done reports whether the disc's completion marker exists.
func (l Layout) Done(discID string) bool {
	_, err := os.Stat(l.DonePath(discID))
	return err == nil
}

// DoneDiscIDs lists completed disc IDs ordered by marker modification time,
// oldest first.
func (l Layout) DoneDiscIDs() ([]string, error) {
	entries, err := os.ReadDir(l.RipDir)
	if err != nil {
		return nil, err
	}

	type done struct {
		id    string
		mtime int64
	}
	var found []done
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, DoneSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		found = append(found, done{
			id:    strings.TrimSuffix(name, DoneSuffix),
			mtime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].mtime != found[j].mtime {
			return found[i].mtime < found[j].mtime
		}
		return found[i].id < found[j].id
	})

	ids := make([]string, 0, len(found))
	for _, d := range found {
		ids = append(ids, d.id)
	}
	return ids, nil
}

// ReadyDiscIDs lists completed discs that still have their WAV and cue on
// disk, in completion order. These are the discs `platter encode` picks up.
func (l Layout) ReadyDiscIDs() ([]string, error) {
	done, err := l.DoneDiscIDs()
	if err != nil {
		return nil, err
	}

	var ready []string
	for _, id := range done {
		if _, err := os.Stat(l.WAVPath(id)); err != nil {
			continue
		}
		if _, err := os.Stat(l.CuePath(id)); err != nil {
			continue
		}
		ready = append(ready, id)
	}
	return ready, nil
}
