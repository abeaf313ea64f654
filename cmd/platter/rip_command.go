package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"platter/internal/config"
	"platter/internal/deps"
	"platter/internal/library"
	"platter/internal/logging"
	"platter/internal/ripper"
)

func newRipCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "rip",
		Short: "Rip inserted discs to WAV with generated cue sheets",
		Long: "Waits for a disc, reads its table of contents, generates a cue sheet,\n" +
			"and rips the audio. Without --once it keeps watching the drive and rips\n" +
			"every disc that is inserted until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkRequired(cfg); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			store, err := library.Open(cfg)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			defer store.Close()

			r, err := ripper.New(cfg, store, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if once {
				result, err := r.RipOnce(runCtx)
				if errors.Is(err, ripper.ErrAlreadyRipped) {
					fmt.Fprintln(cmd.OutOrStdout(), "Disc already ripped")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ripped disc %s (%d tracks)\n",
					result.DiscID, result.TrackCount)
				return nil
			}
			return r.Loop(runCtx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Rip the currently loaded disc and exit")
	return cmd
}

// checkRequired fails fast when a required external tool is missing or the
// rip directory is low on space.
func checkRequired(cfg *config.Config) error {
	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (run `platter preflight` for details)",
			strings.Join(missing, ", "))
	}
	if space := deps.CheckFreeSpace(cfg.Paths.RipDir); !space.Available {
		return errors.New(space.Detail)
	}
	return nil
}
