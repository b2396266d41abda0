// Package xdgpaths implements the directory-resolution half of the [XDG
// Base Directory Specification]. Unlike the teacher lineage's xdg
// package, this one never opens or creates files: the runtime only ever
// reads plugin search paths, it does not persist state (see spec.md's
// non-goals), so only the read-only directory getters are carried over.
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/latest
package xdgpaths

import "os"

func env(name, fallback string) string {
	var val = os.Getenv(name)
	if val == "" {
		return fallback
	}

	return val
}

// DataDirs retrieves $XDG_DATA_DIRS if set and non-empty, otherwise the
// spec's default of "/usr/local/share/:/usr/share/".
//
// From the XDG Base Directory Specification:
//
// $XDG_DATA_DIRS defines the preference-ordered set of base directories
// to search for data files in addition to the $XDG_DATA_HOME base
// directory. The directories in $XDG_DATA_DIRS should be separated with
// a colon ':'.
func DataDirs() string {
	return env("XDG_DATA_DIRS", "/usr/local/share/:/usr/share/")
}

// ConfigDirs retrieves $XDG_CONFIG_DIRS if set and non-empty, otherwise
// the spec's default of "/etc/xdg".
func ConfigDirs() string {
	return env("XDG_CONFIG_DIRS", "/etc/xdg")
}
