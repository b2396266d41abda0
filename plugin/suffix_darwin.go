//go:build darwin

package plugin

// librarySuffix is the platform's dynamic library extension.
const librarySuffix = ".dylib"
