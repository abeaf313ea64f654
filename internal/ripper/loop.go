package ripper

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"platter/internal/logging"
)

// Loop waits for discs and rips them until the context is cancelled. A flock
// lock file under the log directory keeps a second loop from fighting over
// the drive.
func (r *Ripper) Loop(ctx context.Context) error {
	lockPath := filepath.Join(r.cfg.Paths.LogDir, "platter-rip.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire rip lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another rip loop is already running (lock %s)", lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	r.logger.Info("rip loop started",
		logging.String("device", r.cfg.Drive.Device),
		logging.String("rip_dir", r.cfg.Paths.RipDir))

	for {
		if err := r.monitor.WaitForDisc(ctx); err != nil {
			return loopExit(err)
		}

		result, err := r.RipOnce(ctx)
		switch {
		case errors.Is(err, ErrAlreadyRipped):
			// Fall through to eject so the done disc is released.
		case err != nil:
			if ctx.Err() != nil {
				return loopExit(ctx.Err())
			}
			r.logger.Error("rip failed", logging.Error(err))
		default:
			r.logger.Info("disc ripped",
				logging.String("disc_id", result.DiscID),
				logging.Int("tracks", result.TrackCount))
		}

		r.eject(ctx)
		if err := r.monitor.WaitForRemoval(ctx); err != nil {
			return loopExit(err)
		}
	}
}

// loopExit maps context cancellation to a clean stop.
func loopExit(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
