package deps

import (
	"os"
	"path/filepath"
	"testing"

	"platter/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: ""},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Errorf("present binary reported unavailable: %+v", results[0])
	}
	if results[1].Available || results[2].Available {
		t.Errorf("missing binaries reported available: %+v %+v", results[1], results[2])
	}
	if results[2].Detail != "command not configured" {
		t.Errorf("unset detail = %q", results[2].Detail)
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b", Available: false},
		{Name: "c", Available: false, Optional: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "b" {
		t.Errorf("MissingRequired = %q, want [b]", missing)
	}
}

func TestRequirementsUseConfiguredPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Cdrdao = "/opt/bin/cdrdao"

	reqs := Requirements(&cfg)
	if reqs[0].Command != "/opt/bin/cdrdao" {
		t.Errorf("cdrdao command = %q", reqs[0].Command)
	}
	for _, req := range reqs[:3] {
		if req.Optional {
			t.Errorf("%s should be required", req.Name)
		}
	}
}

func TestCheckFreeSpace(t *testing.T) {
	status := CheckFreeSpace(t.TempDir())
	if status.Detail == "" {
		t.Error("free space check produced no detail")
	}
	// Result depends on the host filesystem; just require the call to
	// complete without a statfs error.
	if !status.Available && status.Detail[:6] == "statfs" {
		t.Errorf("statfs failed: %s", status.Detail)
	}
}
