// Package core orchestrates the plugin loader, device event router, and
// aggregation core into the runtime the C ABI facade (package capi)
// wraps in a process-wide singleton. Runtime itself holds no process-wide
// state and is safe to construct more than once — the singleton and its
// mutex live in capi, not here.
package core

import (
	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/aggregate"
	"github.com/andrieee44/analogsdk/keycode"
	"github.com/andrieee44/analogsdk/plugin"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/andrieee44/analogsdk/registry"
	"go.uber.org/zap"
)

// Runtime is one initialised instance of the core: a loaded plugin set,
// its event router, the aggregation core, and the current keycode mode.
type Runtime struct {
	log      *zap.SugaredLogger
	loader   *plugin.Loader
	router   *registry.Router
	agg      *aggregate.Core
	mode     analogsdk.KeycodeMode
	running  bool
}

// New constructs an uninitialised Runtime. Call Initialise before using
// it for reads.
func New(log *zap.SugaredLogger) *Runtime {
	return &Runtime{
		log:    log,
		router: registry.NewRouter(log),
		agg:    aggregate.NewCore(log),
		mode:   analogsdk.HID,
	}
}

// Initialise loads every plugin under dirs (scanning each one level deep
// if nested), initialises them all, and returns the total device count.
// Per spec.md §4.4/§4.7, a second Initialise on an already-running
// Runtime first runs Uninitialise.
func (r *Runtime) Initialise(dirs []string, nested bool) analogsdk.Result[int] {
	if r.running {
		r.Uninitialise()
	}

	var loader = plugin.NewLoader(r.log)

	for _, dir := range dirs {
		if err := loader.Load(dir, nested); err != nil {
			r.log.Warnw("core: plugin directory scan failed", "dir", dir, "error", err)
		}
	}

	var result = loader.InitialiseAll(r.router.Forward)

	count, ok := result.Get()
	if !ok {
		return result
	}

	r.loader = loader
	r.mode = analogsdk.HID
	r.running = true

	return analogsdk.OkResult(count)
}

// Uninitialise drains the plugin list: Unload on every plugin (joining
// their workers) before the loader closes any library handle. It is
// idempotent.
func (r *Runtime) Uninitialise() {
	if !r.running {
		return
	}

	r.loader.UnloadAll()
	r.loader = nil
	r.router.ClearCallback()
	r.running = false
}

// IsInitialised reports whether Initialise has succeeded and
// Uninitialise has not since been called.
func (r *Runtime) IsInitialised() bool {
	return r.running
}

// SetKeycodeMode changes the active keycode namespace for subsequent
// reads. VirtualKey modes are rejected with NotAvailable on non-Windows
// hosts.
func (r *Runtime) SetKeycodeMode(mode analogsdk.KeycodeMode) analogsdk.ErrorKind {
	if !keycode.ModeSupported(mode) {
		return analogsdk.NotAvailable
	}

	r.mode = mode

	return analogsdk.Ok
}

// KeycodeMode returns the active keycode namespace.
func (r *Runtime) KeycodeMode() analogsdk.KeycodeMode {
	return r.mode
}

// ReadAnalog reads a single key's depression value, interpreted in the
// active keycode mode.
func (r *Runtime) ReadAnalog(code uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32] {
	if !r.running {
		return analogsdk.ErrResult[float32](analogsdk.UnInitialized)
	}

	return r.agg.ReadAnalog(r.loader.Plugins(), r.mode, code, deviceID)
}

// ReadFullBuffer reads up to maxItems (code, analog) pairs, interpreted
// in the active keycode mode.
func (r *Runtime) ReadFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32] {
	if !r.running {
		return analogsdk.ErrResult[map[uint16]float32](analogsdk.UnInitialized)
	}

	return r.agg.ReadFullBuffer(r.loader.Plugins(), r.mode, maxItems, deviceID)
}

// SetDeviceEventCallback installs cb as the consumer's device event
// callback.
func (r *Runtime) SetDeviceEventCallback(cb analogsdk.DeviceEventCallback) {
	r.router.SetCallback(cb)
}

// ClearDeviceEventCallback removes the consumer's device event callback.
func (r *Runtime) ClearDeviceEventCallback() {
	r.router.ClearCallback()
}

// ConnectedDevices lists every device currently reported by any loaded
// plugin.
func (r *Runtime) ConnectedDevices() analogsdk.Result[[]analogsdk.DeviceInfo] {
	if !r.running {
		return analogsdk.ErrResult[[]analogsdk.DeviceInfo](analogsdk.UnInitialized)
	}

	var (
		out       []analogsdk.DeviceInfo
		lastError = analogsdk.Ok
		anyOK     bool
	)

	for _, p := range r.loader.Plugins() {
		var result = p.DeviceInfo()

		infos, ok := result.Get()
		if !ok {
			lastError = result.Err()

			continue
		}

		anyOK = true
		out = append(out, infos...)
	}

	if !anyOK {
		if lastError == analogsdk.Ok {
			lastError = analogsdk.NoDevices
		}

		return analogsdk.ErrResult[[]analogsdk.DeviceInfo](lastError)
	}

	return analogsdk.OkResult(out)
}

// Plugins exposes the underlying plugin set, for callers (such as
// Client.Plugins) that need direct access without going through the
// cgo boundary.
func (r *Runtime) Plugins() []pluginapi.Plugin {
	if !r.running {
		return nil
	}

	return r.loader.Plugins()
}
