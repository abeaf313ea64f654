package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"platter/internal/encoder"
	"platter/internal/library"
	"platter/internal/logging"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "encode [disc-id...]",
		Short: "Encode ripped discs to FLAC",
		Long: "Encodes ripped WAV files to FLAC with the cue sheet embedded. With no\n" +
			"arguments every completed rip that has not been encoded yet is processed;\n" +
			"disc IDs restrict the run to those discs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
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

			e, err := encoder.New(cfg, store, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				if title != "" && len(args) > 1 {
					return fmt.Errorf("--title applies to a single disc, got %d", len(args))
				}
				for _, discID := range args {
					flacPath, err := e.Encode(runCtx, discID, title)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Encoded %s -> %s\n", discID, flacPath)
				}
				return nil
			}
			if title != "" {
				return fmt.Errorf("--title requires a disc ID")
			}

			count, err := e.EncodeReady(runCtx)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Fprintln(out, "Nothing to encode")
				return nil
			}
			fmt.Fprintf(out, "Encoded %d disc(s)\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Name the output directory after this album title")
	return cmd
}
