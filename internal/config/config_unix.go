//go:build !windows

package config

import (
	"path/filepath"
	"strings"

	"github.com/andrieee44/analogsdk/internal/xdgpaths"
)

// defaultPluginDir is the compiled-in Unix default, per spec.md §6.
func defaultPluginDir(appName string) string {
	return filepath.Join("/usr/local/share", appName+"Plugins")
}

// platformExtraDirs supplements the hardcoded default with
// "$dir/<appName>Plugins" for every directory named in $XDG_DATA_DIRS,
// so a plugin installed under a user-local XDG data directory is found
// without needing ANALOG_SDK_PLUGIN_DIR.
func platformExtraDirs(appName string) []string {
	var (
		dirs  []string
		parts = strings.Split(xdgpaths.DataDirs(), ":")
	)

	for _, part := range parts {
		if part == "" {
			continue
		}

		dirs = append(dirs, filepath.Join(part, appName+"Plugins"))
	}

	return dirs
}
