package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/fileutil"
	"platter/internal/library"
	"platter/internal/ripdir"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove rip artifacts for discs that have been encoded",
		Long: "Deletes the toc, cue, wav, and done-marker files of every encoded disc\n" +
			"from the rip workspace, reports WAV files that no library entry accounts\n" +
			"for, and prunes empty release directories left behind by failed encodes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := library.Open(cfg)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			defer store.Close()

			layout := ripdir.Layout{RipDir: cfg.Paths.RipDir, FlacDir: cfg.Paths.FlacDir}
			discs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			removed := 0
			cleaned := map[string]bool{}
			for _, disc := range discs {
				if disc.Status != library.StatusEncoded {
					continue
				}
				cleaned[disc.DiscID] = true
				for _, path := range []string{
					layout.TOCPath(disc.DiscID),
					layout.CuePath(disc.DiscID),
					layout.WAVPath(disc.DiscID),
					layout.DonePath(disc.DiscID),
				} {
					if _, err := os.Stat(path); err != nil {
						continue
					}
					if dryRun {
						fmt.Fprintf(out, "would remove %s\n", path)
						continue
					}
					if err := os.Remove(path); err != nil {
						return fmt.Errorf("remove %s: %w", path, err)
					}
					removed++
				}
			}

			wavs, err := fileutil.FindWithExtension(cfg.Paths.RipDir, ripdir.WAVSuffix)
			if err != nil {
				return fmt.Errorf("scan rip dir: %w", err)
			}
			for _, wav := range wavs {
				discID := strings.TrimSuffix(filepath.Base(wav), ripdir.WAVSuffix)
				if cleaned[discID] || layout.Done(discID) {
					continue
				}
				fmt.Fprintf(out, "orphaned wav (no completed rip): %s\n", wav)
			}

			if !dryRun {
				if err := fileutil.PruneEmptyDirs(cfg.Paths.FlacDir); err != nil {
					return fmt.Errorf("prune flac dir: %w", err)
				}
			}

			if dryRun {
				fmt.Fprintln(out, "Dry run; nothing removed")
				return nil
			}
			fmt.Fprintf(out, "Removed %d file(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without touching anything")
	return cmd
}
