//go:build linux

package plugin

// librarySuffix is the platform's dynamic library extension.
const librarySuffix = ".so"
