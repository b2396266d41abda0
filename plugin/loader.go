// Package plugin discovers, loads, version-checks, and isolates analog
// SDK plugins. A plugin is a dynamic library exporting either the
// native vtable-factory flavor or the foreign flat-C flavor described in
// package pluginapi; this package normalizes both to a pluginapi.Plugin.
package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/ebitengine/purego"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// abiVersionSymbol is the required exported int32 every plugin carries.
const abiVersionSymbol = "ANALOG_SDK_PLUGIN_ABI_VERSION"

// versionSymbol is the optional SemVer-string export used for the
// major-version compatibility check.
const versionSymbol = "plugin_version"

const nativeFactorySymbol = "_plugin_create"

// loadedLibrary pairs a retained dlopen handle with the plugin adapted
// from it. The handle is never closed before the plugin's Unload has run
// and the loader itself is draining — see the cyclic lifetime concern in
// spec.md §9: a plugin's vtable is backed by code in the library, so the
// handle must outlive every function pointer resolved from it.
type loadedLibrary struct {
	path   string
	handle uintptr
	abi    int32
	plugin pluginapi.Plugin
}

// Loader owns every successfully loaded plugin library for the lifetime
// of one core initialisation.
type Loader struct {
	log       *zap.SugaredLogger
	libraries []*loadedLibrary
}

// NewLoader returns a Loader that logs through log.
func NewLoader(log *zap.SugaredLogger) *Loader {
	return &Loader{log: log}
}

// candidatePaths enumerates regular files under dir matching the
// platform's dynamic-library suffix, and, if nested, also scans each
// immediate subdirectory one level deep.
func candidatePaths(dir string, nested bool) ([]string, error) {
	var (
		entries []os.DirEntry
		paths   []string
		err     error
	)

	entries, err = os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("plugin.candidatePaths: %w", err)
	}

	for _, entry := range entries {
		var full = filepath.Join(dir, entry.Name())

		switch {
		case entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), librarySuffix):
			paths = append(paths, full)
		case entry.IsDir() && nested:
			var sub []string

			sub, err = candidatePaths(full, false)
			if err != nil {
				continue
			}

			paths = append(paths, sub...)
		}
	}

	return paths, nil
}

// Load scans root (and, if nested, its immediate subdirectories) for
// candidate dynamic libraries and attempts to load each as a plugin.
// Libraries that fail to open, mismatch ABI, or reject their name query
// are logged and skipped; they never prevent other plugins from
// loading. Load never returns an error for a partially-failed scan —
// only a directory read failure on root itself is fatal.
func (l *Loader) Load(root string, nested bool) error {
	var (
		paths []string
		err   error
	)

	paths, err = candidatePaths(root, nested)
	if err != nil {
		return fmt.Errorf("plugin.Loader.Load: %w", err)
	}

	for _, path := range paths {
		l.loadOne(path)
	}

	return nil
}

func (l *Loader) loadOne(path string) {
	var (
		handle uintptr
		err    error
	)

	handle, err = purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		l.log.Warnw("plugin: failed to open library", "path", path, "error", err)

		return
	}

	// The handle is held in lib before any call into the library. Every
	// failure below closes it before returning, dropping the plugin
	// object with it; only a library that passes every check is appended
	// to l.libraries, which keeps its handle open until UnloadAll.
	var lib = &loadedLibrary{path: path, handle: handle}

	if !l.checkABIVersion(lib) {
		_ = purego.Dlclose(handle)

		return
	}

	if !l.checkPluginVersion(lib) {
		_ = purego.Dlclose(handle)

		return
	}

	var plug pluginapi.Plugin

	plug, err = l.construct(lib)
	if err != nil {
		l.log.Warnw("plugin: not a valid plugin", "path", path, "error", err)
		_ = purego.Dlclose(handle)

		return
	}

	var nameResult = plug.Name()

	name, ok := nameResult.Get()
	if !ok {
		l.log.Warnw("plugin: name() failed", "path", path, "error", nameResult.Err())
		_ = purego.Dlclose(handle)

		return
	}

	l.log.Infow("plugin: loaded", "path", path, "name", name)

	lib.plugin = plug
	l.libraries = append(l.libraries, lib)
}

func (l *Loader) checkABIVersion(lib *loadedLibrary) bool {
	var (
		sym uintptr
		err error
	)

	sym, err = purego.Dlsym(lib.handle, abiVersionSymbol)
	if err != nil || sym == 0 {
		l.log.Warnw("plugin: missing ABI version symbol", "path", lib.path)

		return false
	}

	var abi = *(*int32)(unsafe.Pointer(sym)) //nolint:govet // purego FFI boundary

	if abi != pluginapi.NativeABIVersion && abi != pluginapi.ForeignABIVersion {
		l.log.Warnw("plugin: incompatible ABI version", "path", lib.path, "abi", abi)

		return false
	}

	lib.abi = abi

	return true
}

// checkPluginVersion reads the optional plugin_version() export and
// rejects the library if its major component doesn't match
// pluginapi.CoreMajorVersion. Absence of the export is not a failure.
func (l *Loader) checkPluginVersion(lib *loadedLibrary) bool {
	var (
		sym uintptr
		err error
	)

	sym, err = purego.Dlsym(lib.handle, versionSymbol)
	if err != nil || sym == 0 {
		return true
	}

	var fn func(outBuf *byte, outLen uint32) int32

	purego.RegisterFunc(&fn, sym)

	var buf = make([]byte, nameBufSize)

	var rc = fn(&buf[0], nameBufSize)
	if rc < 0 {
		l.log.Warnw("plugin: plugin_version() failed", "path", lib.path)

		return false
	}

	var ver = cGoString(uintptr(unsafe.Pointer(&buf[0]))) //nolint:govet // purego FFI boundary
	if !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}

	if !semver.IsValid(ver) {
		l.log.Warnw("plugin: unparsable plugin_version()", "path", lib.path, "version", ver)

		return false
	}

	var wantMajor = "v" + strconv.Itoa(pluginapi.CoreMajorVersion)
	if semver.Major(ver) != wantMajor {
		l.log.Warnw("plugin: incompatible plugin major version", "path", lib.path, "version", ver)

		return false
	}

	return true
}

func (l *Loader) construct(lib *loadedLibrary) (pluginapi.Plugin, error) {
	var (
		sym uintptr
		err error
	)

	sym, err = purego.Dlsym(lib.handle, nativeFactorySymbol)
	if err == nil && sym != 0 {
		if lib.abi != pluginapi.NativeABIVersion {
			return nil, fmt.Errorf("plugin: native plugin has ABI version %d, want %d", lib.abi, pluginapi.NativeABIVersion)
		}

		return newNativePlugin(sym)
	}

	if lib.abi != pluginapi.ForeignABIVersion {
		return nil, fmt.Errorf("plugin: foreign plugin has ABI version %d, want %d", lib.abi, pluginapi.ForeignABIVersion)
	}

	var fp *foreignPlugin

	fp, err = newForeignPlugin(lib.handle)
	if err != nil {
		return nil, errNoFactorySymbol
	}

	return fp, nil
}

// InitialiseAll calls Initialise on every loaded plugin. Plugins that
// fail remain loaded but inert and are not counted. If none report
// success, the result is NoPlugins; otherwise the sum of reported device
// counts is returned.
func (l *Loader) InitialiseAll(cb pluginapi.EventCallback) analogsdk.Result[int] {
	var (
		total     int
		succeeded int
	)

	for _, lib := range l.libraries {
		var r = lib.plugin.Initialise(cb)

		count, ok := r.Get()
		if !ok {
			l.log.Warnw("plugin: initialise failed", "path", lib.path, "error", r.Err())

			continue
		}

		succeeded++
		total += int(count)
	}

	if succeeded == 0 {
		return analogsdk.ErrResult[int](analogsdk.NoPlugins)
	}

	return analogsdk.OkResult(total)
}

// Plugins returns every successfully loaded plugin.
func (l *Loader) Plugins() []pluginapi.Plugin {
	var out = make([]pluginapi.Plugin, len(l.libraries))

	for i, lib := range l.libraries {
		out[i] = lib.plugin
	}

	return out
}

// UnloadAll calls Unload on every plugin (joining their worker threads)
// before closing any library handle, preserving the invariant that a
// handle outlives every function pointer resolved from it.
func (l *Loader) UnloadAll() {
	for _, lib := range l.libraries {
		lib.plugin.Unload()
	}

	for _, lib := range l.libraries {
		_ = purego.Dlclose(lib.handle)
	}

	l.libraries = nil
}
