package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"platter/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ripped discs and their encode status",
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

			discs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(discs))
			for _, disc := range discs {
				if failedOnly && disc.Status != library.StatusFailed {
					continue
				}
				detail := disc.FlacPath
				if disc.Status == library.StatusFailed {
					detail = disc.ErrorText
				}
				rows = append(rows, []string{
					disc.DiscID,
					string(disc.Status),
					strconv.Itoa(disc.TrackCount),
					disc.UpdatedAt.Local().Format(time.DateTime),
					detail,
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "Library is empty")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"DISC", "STATUS", "TRACKS", "UPDATED", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d total: %d ripped, %d encoded, %d failed\n",
				stats.Total, stats.Ripped, stats.Encoded, stats.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed discs")
	return cmd
}
