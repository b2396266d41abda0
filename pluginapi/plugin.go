// Package pluginapi defines the capability set every plugin — native or
// foreign — is adapted to once loaded. The loader (package plugin) is the
// only consumer that cares which flavor produced a given Plugin; every
// other package in this module only ever sees this interface.
package pluginapi

import "github.com/andrieee44/analogsdk"

// NativeABIVersion is the expected value of the exported
// ANALOG_SDK_PLUGIN_ABI_VERSION symbol for native-flavor plugins.
const NativeABIVersion int32 = 1

// ForeignABIVersion is the expected value of the exported
// ANALOG_SDK_PLUGIN_ABI_VERSION symbol for foreign-flavor plugins.
const ForeignABIVersion int32 = 0

// CoreMajorVersion is the major component of this core's own semantic
// version. A plugin's optional plugin_version() must share this major
// component or the loader rejects it.
const CoreMajorVersion = 1

// EventCallback is the closure the core passes to Plugin.Initialise. It
// is called from whatever thread the plugin uses to detect topology
// changes and must never block: the core only enqueues the event for
// its single dispatch goroutine (see package registry), so a plugin may
// call it directly from its reader thread without any buffering of its
// own.
type EventCallback func(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo)

// Plugin is the capability set every loaded plugin exposes, regardless
// of whether it was loaded via the native factory or adapted from a
// foreign flat-C export set (see package plugin).
type Plugin interface {
	// Name returns the plugin's human-readable name.
	Name() analogsdk.Result[string]

	// Initialise starts the plugin: it begins whatever discovery and
	// worker threads it needs, invoking cb for every device topology
	// change from then on, and returns the number of devices found
	// during the initial synchronous scan.
	Initialise(cb EventCallback) analogsdk.Result[uint32]

	// IsInitialised reports whether Initialise has been called
	// successfully and Unload has not since been called.
	IsInitialised() bool

	// Unload stops the plugin. It is idempotent and must join any
	// worker threads before returning.
	Unload()

	// DeviceInfo lists every device the plugin currently considers open.
	DeviceInfo() analogsdk.Result[[]analogsdk.DeviceInfo]

	// ReadAnalog reads a single HID-coded key's depression value.
	// deviceID == analogsdk.AnyDevice reads from any device the plugin
	// owns, taking the maximum across devices that report a value.
	ReadAnalog(hidCode uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32]

	// ReadFullBuffer reads up to maxItems (hidCode, analog) pairs across
	// the devices deviceID selects (see ReadAnalog). It must honor the
	// one-shot sticky-release contract: a key that transitioned from
	// non-zero to zero since the previous call is reported exactly once
	// more, at 0.0, then omitted.
	ReadFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32]
}
