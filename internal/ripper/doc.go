// Package ripper coordinates disc ripping: waiting for a disc, reading its
// table of contents with cdrdao, generating the cue sheet, ripping audio
// with cdparanoia, and recording the result in the library.
//
// The package never reads disc data itself; all disc access happens inside
// the external tools. Its own responsibilities are sequencing, atomic
// publication of artifacts, and single-instance locking of the rip loop.
// Disc insertion is detected through udev netlink events with a polling
// fallback on the drive status ioctl.
package ripper
