package ripper

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Linux cdrom ioctl numbers from <linux/cdrom.h>.
const (
	ioctlCDROMDriveStatus = 0x5326
	cdslCurrent           = 0x7FFFFFFF
)

// DriveStatus represents the result of a CDROM_DRIVE_STATUS ioctl call.
type DriveStatus int

const (
	DriveStatusNoInfo   DriveStatus = 0
	DriveStatusNoDisc   DriveStatus = 1
	DriveStatusTrayOpen DriveStatus = 2
	DriveStatusNotReady DriveStatus = 3
	DriveStatusDiscOK   DriveStatus = 4
)

func (s DriveStatus) String() string {
	switch s {
	case DriveStatusNoInfo:
		return "no_info"
	case DriveStatusNoDisc:
		return "no_disc"
	case DriveStatusTrayOpen:
		return "tray_open"
	case DriveStatusNotReady:
		return "not_ready"
	case DriveStatusDiscOK:
		return "disc_ok"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// CheckDriveStatus queries the drive state using the CDROM_DRIVE_STATUS
// ioctl. This is drive control, not disc reading; the actual disc data only
// ever flows through the external ripping tools.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return DriveStatusNoInfo, fmt.Errorf("empty device path")
	}

	fd, err := unix.Open(devicePath, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return DriveStatusNoInfo, fmt.Errorf("open %s: %w", devicePath, err)
	}
	defer unix.Close(fd)

	r1, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(ioctlCDROMDriveStatus),
		uintptr(cdslCurrent),
	)
	if errno != 0 {
		return DriveStatusNoInfo, fmt.Errorf("ioctl CDROM_DRIVE_STATUS on %s: %w", devicePath, errno)
	}

	return DriveStatus(r1), nil
}

// DriveLoaded reports whether the drive holds a readable disc.
func DriveLoaded(devicePath string) bool {
	status, err := CheckDriveStatus(devicePath)
	return err == nil && status == DriveStatusDiscOK
}
