package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/deps"
	"platter/internal/ripper"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check external tools, disk space, and the drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses)+2)
			for _, status := range statuses {
				rows = append(rows, []string{status.Name, availability(status), status.Detail})
			}

			space := deps.CheckFreeSpace(cfg.Paths.RipDir)
			rows = append(rows, []string{"disk space", availability(space), space.Detail})

			driveStatus, driveErr := ripper.CheckDriveStatus(cfg.Drive.Device)
			driveRow := []string{"drive", "ok", driveStatus.String()}
			if driveErr != nil {
				driveRow = []string{"drive", "MISSING", driveErr.Error()}
			}
			rows = append(rows, driveRow)

			fmt.Fprintln(out, renderTable(
				[]string{"CHECK", "STATUS", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return errors.New("required tools are missing")
			}
			if !space.Available {
				return errors.New("not enough free space in the rip directory")
			}
			return nil
		},
	}
}

func availability(status deps.Status) string {
	switch {
	case status.Available:
		return "ok"
	case status.Optional:
		return "missing (optional)"
	default:
		return "MISSING"
	}
}
