//go:build !unix

package collector

func runningAsRoot() bool { return true }
