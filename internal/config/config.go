// Package config resolves the runtime's environment-driven
// configuration: the plugin search directory and its override, in the
// same "env var if absolute, else default" shape as the teacher
// lineage's xdg package.
package config

import (
	"os"
	"path/filepath"
)

// PluginDirEnv overrides the compiled-in default plugin search
// directory when set to an absolute path.
const PluginDirEnv = "ANALOG_SDK_PLUGIN_DIR"

// resolve returns env's value if it is set and absolute, otherwise
// fallback. This is the xdg package's own xdg() helper, generalized
// beyond XDG_* variables to any single env override.
func resolve(env, fallback string) string {
	var val = os.Getenv(env)
	if val == "" || !filepath.IsAbs(val) {
		return fallback
	}

	return val
}

// PluginSearchDirs returns every directory the loader should scan for
// plugins, in priority order: first the ANALOG_SDK_PLUGIN_DIR override
// if it is set to an absolute path, otherwise the compiled-in OS default
// (the override replaces the default, it is not scanned in addition to
// it), then any supplementary directories platformExtraDirs contributes
// (XDG_DATA_DIRS-derived "<name>Plugins" subdirectories on Unix hosts).
func PluginSearchDirs(appName string) []string {
	var primary = resolve(PluginDirEnv, defaultPluginDir(appName))

	var dirs = []string{primary}

	for _, dir := range platformExtraDirs(appName) {
		if dir != primary {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
