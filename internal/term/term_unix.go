//go:build linux || darwin || freebsd || netbsd || openbsd

package term

import "golang.org/x/sys/unix"

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}
