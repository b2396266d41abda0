//go:build windows

package plugin

// librarySuffix is the platform's dynamic library extension.
const librarySuffix = ".dll"
