//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	return []string{
		filepath.Join(os.Getenv("LOCALAPPDATA"), "prtg-sensors", "config.yaml"),
		filepath.Join(os.Getenv("ProgramData"), "prtg-sensors", "config.yaml"),
	}
}
