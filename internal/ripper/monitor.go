package ripper

import (
	"context"
	"log/slog"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"platter/internal/logging"
)

// discMonitor waits for a disc to appear in the drive. It prefers udev
// netlink events so an idle loop costs nothing; when the netlink socket is
// unavailable (permissions, non-udev systems) it falls back to polling the
// drive status ioctl.
type discMonitor struct {
	device       string
	pollInterval time.Duration
	logger       *slog.Logger

	// statusFn is swappable for tests.
	statusFn func(string) (DriveStatus, error)
}

func newDiscMonitor(device string, pollInterval time.Duration, logger *slog.Logger) *discMonitor {
	return &discMonitor{
		device:       device,
		pollInterval: pollInterval,
		logger:       logging.NewComponentLogger(logger, "disc-monitor"),
		statusFn:     CheckDriveStatus,
	}
}

// WaitForDisc blocks until the drive reports a loaded disc or the context is
// cancelled.
func (m *discMonitor) WaitForDisc(ctx context.Context) error {
	if loaded, err := m.loaded(); err == nil && loaded {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("netlink unavailable, falling back to status polling",
			logging.Error(err))
		return m.pollUntilLoaded(ctx)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, discInsertMatcher())
	defer close(monitorQuit)

	// Events can race the initial check; keep a slow poll as a backstop.
	ticker := time.NewTicker(m.pollInterval * 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-queue:
			if loaded, err := m.loaded(); err == nil && loaded {
				return nil
			}
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Error(err))
		case <-ticker.C:
			if loaded, err := m.loaded(); err == nil && loaded {
				return nil
			}
		}
	}
}

// WaitForRemoval blocks until the drive no longer reports a loaded disc.
// Used between loop iterations so one disc is not ripped twice.
func (m *discMonitor) WaitForRemoval(ctx context.Context) error {
	for {
		if loaded, err := m.loaded(); err != nil || !loaded {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.pollInterval):
		}
	}
}

func (m *discMonitor) loaded() (bool, error) {
	status, err := m.statusFn(m.device)
	if err != nil {
		return false, err
	}
	return status == DriveStatusDiscOK, nil
}

func (m *discMonitor) pollUntilLoaded(ctx context.Context) error {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if loaded, err := m.loaded(); err == nil && loaded {
				return nil
			}
		}
	}
}

// discInsertMatcher matches udev block events for cdrom media changes:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add.
func discInsertMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}
