package encoder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"platter/internal/config"
	"platter/internal/fileutil"
	"platter/internal/library"
	"platter/internal/logging"
	"platter/internal/ripdir"
	"platter/internal/ripper"
	"platter/internal/textutil"
)

// maxSequence bounds the search for a free output directory when a disc ID
// has already been encoded.
const maxSequence = 100

// Encoder turns ripped WAV files into cue-embedded FLAC files.
type Encoder struct {
	cfg    *config.Config
	layout ripdir.Layout
	store  *library.Store
	logger *slog.Logger
	exec   ripper.Executor
}

// Option configures the encoder.
type Option func(*Encoder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec ripper.Executor) Option {
	return func(e *Encoder) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// New constructs an encoder.
func New(cfg *config.Config, store *library.Store, logger *slog.Logger, opts ...Option) (*Encoder, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("encoder requires config and library store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	e := &Encoder{
		cfg:    cfg,
		layout: ripdir.Layout{RipDir: cfg.Paths.RipDir, FlacDir: cfg.Paths.FlacDir},
		store:  store,
		logger: logging.NewComponentLogger(logger, "encoder"),
		exec:   ripper.NewExecutor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// flacArgs builds the flac command line for one disc. The cue sheet is
// embedded in the FLAC as a CUESHEET metadata block, which keeps the track
// boundaries with the audio.
func (e *Encoder) flacArgs(cuePath, wavPath, flacPath, title string) []string {
	args := make([]string, 0, 8)
	if level := e.cfg.Encoding.CompressionLevel; level >= 8 {
		args = append(args, "--best")
	} else {
		args = append(args, "-"+strconv.Itoa(level))
	}
	args = append(args,
		"--cuesheet="+cuePath,
		"--output-name="+flacPath,
	)
	if title != "" {
		args = append(args, "--tag=ALBUM="+title)
	}
	if e.cfg.Encoding.DeleteWAVAfterEncode {
		args = append(args, "--delete-input-file")
	}
	return append(args, wavPath)
}

// outputName derives the FLAC directory name for a disc. A caller-supplied
// title is folded to ASCII and sanitized for the filesystem; without one the
// disc ID is used directly.
func (e *Encoder) outputName(discID, title string) string {
	name := textutil.SanitizeFileName(textutil.ASCIIFold(strings.TrimSpace(title)))
	name = textutil.Truncate(name, e.cfg.Encoding.MaxNameLength, "")
	if name == "" {
		return discID
	}
	return name
}

// outputPath finds an unused FLAC destination, bumping the sequence suffix
// when an earlier encode already claimed the directory.
func (e *Encoder) outputPath(name string) (string, error) {
	for sequence := 0; sequence < maxSequence; sequence++ {
		path := e.layout.FlacPath(name, sequence)
		if _, err := os.Stat(filepath.Dir(path)); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free output directory for %s", name)
}

// Encode converts one ripped disc to FLAC and records the result in the
// library. An optional title names the output directory; empty falls back
// to the disc ID.
func (e *Encoder) Encode(ctx context.Context, discID, title string) (string, error) {
	logger := e.logger.With(logging.String("disc_id", discID))

	cuePath := e.layout.CuePath(discID)
	wavPath := e.layout.WAVPath(discID)
	for _, path := range []string{cuePath, wavPath} {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("disc %s not ready to encode: %w", discID, err)
		}
	}

	flacPath, err := e.outputPath(e.outputName(discID, title))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(flacPath), 0o755); err != nil {
		return "", fmt.Errorf("create flac directory: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Tools.EncodeTimeout)*time.Second)
	defer cancel()
	started := time.Now()
	if err := e.exec.Run(runCtx, e.cfg.Tools.Flac, e.flacArgs(cuePath, wavPath, flacPath, strings.TrimSpace(title))...); err != nil {
		_ = e.store.MarkFailed(ctx, discID, err.Error())
		// flac leaves a partial output behind on failure.
		_ = os.Remove(flacPath)
		return "", fmt.Errorf("encode disc %s: %w", discID, err)
	}
	logger.Info("encode complete",
		logging.String("flac", flacPath),
		logging.Duration("elapsed", time.Since(started)))

	if err := e.copyArtifacts(discID, flacPath); err != nil {
		return "", err
	}
	if err := e.store.MarkEncoded(ctx, discID, flacPath); err != nil {
		return "", err
	}
	return flacPath, nil
}

// copyArtifacts places the cue and toc next to the FLAC so each release
// directory stands on its own once the rip workspace is cleaned.
func (e *Encoder) copyArtifacts(discID, flacPath string) error {
	base := strings.TrimSuffix(flacPath, ripdir.FlacSuffix)
	copies := map[string]string{
		e.layout.CuePath(discID): base + ripdir.CueSuffix,
		e.layout.TOCPath(discID): base + ripdir.TOCSuffix,
	}
	for src, dst := range copies {
		if err := fileutil.CopyFile(src, dst); err != nil {
			return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
		}
	}
	return nil
}

// EncodeReady encodes every disc in the rip directory that has a done
// marker plus its cue and WAV files, running up to the configured number of
// encodes in parallel. It returns the count of discs encoded.
func (e *Encoder) EncodeReady(ctx context.Context) (int, error) {
	discIDs, err := e.layout.ReadyDiscIDs()
	if err != nil {
		return 0, err
	}
	if len(discIDs) == 0 {
		e.logger.Info("nothing to encode")
		return 0, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	parallelism := e.cfg.Encoding.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	group.SetLimit(parallelism)

	for _, discID := range discIDs {
		discID := discID
		group.Go(func() error {
			_, err := e.Encode(groupCtx, discID, "")
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}
	return len(discIDs), nil
}
