package ripper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"platter/internal/config"
	"platter/internal/cuesheet"
	"platter/internal/fileutil"
	"platter/internal/library"
	"platter/internal/logging"
	"platter/internal/ripdir"
)

// ErrAlreadyRipped reports a disc whose done marker already exists.
var ErrAlreadyRipped = errors.New("disc already ripped")

// Ripper drives the read-toc, cue generation, and rip steps for one disc at
// a time.
type Ripper struct {
	cfg     *config.Config
	layout  ripdir.Layout
	store   *library.Store
	logger  *slog.Logger
	exec    Executor
	ejector Ejector
	monitor *discMonitor
}

// Option configures the ripper.
type Option func(*Ripper)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Ripper) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithEjector injects a custom ejector (primarily for tests).
func WithEjector(ejector Ejector) Option {
	return func(r *Ripper) {
		if ejector != nil {
			r.ejector = ejector
		}
	}
}

// New constructs a ripper.
func New(cfg *config.Config, store *library.Store, logger *slog.Logger, opts ...Option) (*Ripper, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("ripper requires config and library store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	r := &Ripper{
		cfg:     cfg,
		layout:  ripdir.Layout{RipDir: cfg.Paths.RipDir, FlacDir: cfg.Paths.FlacDir},
		store:   store,
		logger:  logging.NewComponentLogger(logger, "ripper"),
		exec:    commandExecutor{},
		ejector: NewEjector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.monitor = newDiscMonitor(cfg.Drive.Device,
		time.Duration(cfg.Drive.PollInterval)*time.Second, logger)
	return r, nil
}

// Result describes a completed rip.
type Result struct {
	DiscID     string
	TrackCount int
	CuePath    string
	WAVPath    string
}

// readTOC runs cdrdao read-toc into dest. cdrdao refuses to overwrite, so
// any stale file at dest is removed first.
func (r *Ripper) readTOC(ctx context.Context, dest string) error {
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear stale toc: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Tools.ReadTOCTimeout)*time.Second)
	defer cancel()
	return r.exec.Run(ctx, r.cfg.Tools.Cdrdao,
		"read-toc", "--device", r.cfg.Drive.Device, dest)
}

// ripAudio rips the whole disc starting from sector zero, which is what the
// cue converter's silence accounting assumes.
func (r *Ripper) ripAudio(ctx context.Context, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Tools.RipTimeout)*time.Second)
	defer cancel()
	return r.exec.Run(ctx, r.cfg.Tools.Cdparanoia,
		"-d", r.cfg.Drive.Device, "[00:00:00.00]-", dest)
}

// discFingerprint derives a stable disc ID from the TOC text. Identical
// pressings produce identical TOCs, which is exactly the dedup behavior the
// skip-if-done check needs.
func discFingerprint(tocText string) string {
	sum := sha256.Sum256([]byte(tocText))
	return hex.EncodeToString(sum[:])[:28]
}

// RipOnce reads the TOC of the loaded disc, generates its cue sheet, rips
// the audio, and records the disc in the library. A disc whose done marker
// already exists returns ErrAlreadyRipped without touching the drive again.
func (r *Ripper) RipOnce(ctx context.Context) (*Result, error) {
	session := uuid.NewString()
	logger := r.logger.With(logging.String("session_id", session))

	tempTOC := r.layout.TOCPath(".scan-" + session)
	defer os.Remove(tempTOC)

	if err := r.readTOC(ctx, tempTOC); err != nil {
		return nil, fmt.Errorf("read toc: %w", err)
	}
	tocText, err := fileutil.Contents(tempTOC)
	if err != nil {
		return nil, fmt.Errorf("read toc output: %w", err)
	}

	discID := discFingerprint(tocText)
	logger = logger.With(logging.String("disc_id", discID))

	if r.layout.Done(discID) {
		logger.Info("disc already ripped, skipping")
		return nil, ErrAlreadyRipped
	}

	disc, err := cuesheet.Parse(tocText)
	if err != nil {
		r.recordFailure(ctx, discID, err)
		return nil, fmt.Errorf("parse toc: %w", err)
	}
	cueText := cuesheet.Render(disc)

	tocPath := r.layout.TOCPath(discID)
	if err := fileutil.WriteFileAtomic(tocPath, tocText); err != nil {
		return nil, fmt.Errorf("publish toc: %w", err)
	}
	cuePath := r.layout.CuePath(discID)
	if err := fileutil.WriteFileAtomic(cuePath, cueText); err != nil {
		return nil, fmt.Errorf("publish cue: %w", err)
	}
	logger.Info("cue sheet generated", logging.Int("tracks", len(disc.Tracks)))

	wavPath := r.layout.WAVPath(discID)
	started := time.Now()
	if err := r.ripAudio(ctx, wavPath); err != nil {
		r.recordFailure(ctx, discID, err)
		return nil, fmt.Errorf("rip audio: %w", err)
	}
	logger.Info("rip complete", logging.Duration("elapsed", time.Since(started)))

	if err := fileutil.WriteFileAtomic(r.layout.DonePath(discID),
		time.Now().UTC().Format(time.RFC3339)+"\n"); err != nil {
		return nil, fmt.Errorf("publish done marker: %w", err)
	}

	if err := r.store.SaveRip(ctx, &library.Disc{
		DiscID:     discID,
		TrackCount: len(disc.Tracks),
		TOCPath:    tocPath,
		CuePath:    cuePath,
		WAVPath:    wavPath,
	}); err != nil {
		return nil, err
	}

	return &Result{
		DiscID:     discID,
		TrackCount: len(disc.Tracks),
		CuePath:    cuePath,
		WAVPath:    wavPath,
	}, nil
}

// recordFailure best-effort marks the disc failed; the returned rip error is
// the one that matters.
func (r *Ripper) recordFailure(ctx context.Context, discID string, cause error) {
	if err := r.store.SaveRip(ctx, &library.Disc{DiscID: discID}); err != nil {
		return
	}
	_ = r.store.MarkFailed(ctx, discID, cause.Error())
}

func (r *Ripper) eject(ctx context.Context) {
	if !r.cfg.Drive.EjectAfterRip {
		return
	}
	if err := r.ejector.Eject(ctx, r.cfg.Drive.Device); err != nil {
		r.logger.Warn("eject failed", logging.Error(err))
	}
}
