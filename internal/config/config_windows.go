//go:build windows

package config

import "path/filepath"

// defaultPluginDir is the compiled-in Windows default, per spec.md §6.
func defaultPluginDir(appName string) string {
	return filepath.Join(`C:\Program Files`, appName+"Plugins")
}

// platformExtraDirs has nothing to add on Windows: there is no XDG-style
// supplementary search path convention to draw from.
func platformExtraDirs(string) []string {
	return nil
}
