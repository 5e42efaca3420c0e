//go:build unix

package collector

import "golang.org/x/sys/unix"

// runningAsRoot reports whether the effective user is root; smartctl needs
// it to open block devices.
func runningAsRoot() bool {
	return unix.Geteuid() == 0
}
