package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/cuesheet"
	"platter/internal/fileutil"
)

// errCueMismatch drives the exit code for --compare without printing the
// usual error prefix noise twice.
var errCueMismatch = errors.New("cue sheet does not match reference")

func newCuesheetCommand() *cobra.Command {
	var comparePath string
	var outputPath string

	cmd := &cobra.Command{
		Use:         "cuesheet <toc-file>",
		Short:       "Convert a cdrdao TOC file to a CUE sheet",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tocText, err := fileutil.Contents(args[0])
			if err != nil {
				return fmt.Errorf("read toc: %w", err)
			}
			cueText, err := cuesheet.Convert(tocText)
			if err != nil {
				if hint := describeConversionError(err); hint != "" {
					return fmt.Errorf("convert %s: %w (%s)", args[0], err, hint)
				}
				return fmt.Errorf("convert %s: %w", args[0], err)
			}

			if comparePath != "" {
				reference, err := fileutil.Contents(comparePath)
				if err != nil {
					return fmt.Errorf("read reference cue: %w", err)
				}
				if cueText != reference {
					return errCueMismatch
				}
				return nil
			}

			if outputPath != "" {
				if err := fileutil.WriteFileAtomic(outputPath, cueText); err != nil {
					return fmt.Errorf("write cue: %w", err)
				}
				return nil
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), cueText)
			return err
		},
	}

	cmd.Flags().StringVar(&comparePath, "compare", "", "Compare generated cue against this file instead of printing")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the cue sheet to this path instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("compare", "output")
	return cmd
}

// describeConversionError turns a conversion error into a hint for humans
// staring at a hand-edited TOC. Errors that are already self-explanatory get
// no hint.
func describeConversionError(err error) string {
	var ambiguous *cuesheet.AmbiguousFieldError
	var missing *cuesheet.MissingFieldError
	var unknown *cuesheet.UnknownTrackTypeError
	switch {
	case errors.Is(err, cuesheet.ErrUnbalancedBraces):
		return "a { block is never closed, or a stray } appears"
	case errors.As(err, &ambiguous):
		return fmt.Sprintf("the %s directive may appear at most once", ambiguous.Key)
	case errors.As(err, &missing):
		return fmt.Sprintf("the required %s directive is absent", missing.Key)
	case errors.As(err, &unknown):
		return "only AUDIO and MODE1 tracks are supported"
	default:
		return ""
	}
}
