// Package deps checks the external programs and resources platter relies on
// before a workflow starts, so failures surface as a readable report instead
// of a mid-rip error.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"platter/internal/config"
)

// Requirement defines an external dependency platter relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external tools for the configured pipeline.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "cdrdao", Command: cfg.Tools.Cdrdao, Description: "reads the disc table of contents"},
		{Name: "cdparanoia", Command: cfg.Tools.Cdparanoia, Description: "rips audio data"},
		{Name: "flac", Command: cfg.Tools.Flac, Description: "encodes ripped audio"},
		{Name: "eject", Command: "eject", Description: "releases the disc tray", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if _, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of non-optional dependencies that are
// unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}

// minFreeBytes is roughly one full CD rip (~800 MiB WAV) with headroom.
const minFreeBytes = 2 << 30

// CheckFreeSpace verifies the filesystem holding dir has room for a rip.
func CheckFreeSpace(dir string) Status {
	status := Status{Name: "free space", Description: fmt.Sprintf("filesystem of %s", dir)}

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		status.Detail = fmt.Sprintf("statfs %s: %v", dir, err)
		return status
	}

	free := uint64(stat.Bavail) * uint64(stat.Bsize)
	if free < minFreeBytes {
		status.Detail = fmt.Sprintf("%d MiB free, need %d MiB", free>>20, uint64(minFreeBytes)>>20)
		return status
	}
	status.Available = true
	status.Detail = fmt.Sprintf("%d MiB free", free>>20)
	return status
}
