// Package term answers whether a file descriptor is an interactive
// terminal.
package term

import "os"

// IsTerminalFile reports whether f is connected to a terminal.
func IsTerminalFile(f *os.File) bool {
	return IsTerminal(f.Fd())
}
