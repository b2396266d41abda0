// Command capi (built with `go build -buildmode=c-shared`) is the
// process-wide C ABI facade (C7): a lazily-initialized core.Runtime
// behind a single global mutex, exported as a flat set of extern "C"
// entry points. Every exported function recovers from panics crossing
// the ABI and reports them as Failure, per spec.md §4.7 — a caller in
// another language has no Go stack to unwind into.
package main

/*
#include "capi.h"
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/internal/config"
	"github.com/andrieee44/analogsdk/internal/core"
	"github.com/andrieee44/analogsdk/internal/plog"
	"github.com/andrieee44/analogsdk/pluginapi"
)

// appName names the compiled-in plugin search directory, e.g.
// "/usr/local/share/AnalogSDKPlugins".
const appName = "AnalogSDK"

// coreMajorVersion is what analog_sdk_version reports; it never changes
// without also bumping pluginapi.CoreMajorVersion.
const coreMajorVersion = pluginapi.CoreMajorVersion

var (
	mu sync.Mutex
	rt = core.New(plog.Logger())

	// batchMu and lastBatch emulate the spec's "thread-local retained
	// batch" for get_connected_devices_info. The ABI is already
	// serialized behind mu for every other call, so a single retained
	// batch per process — rather than genuine per-OS-thread storage,
	// which cgo exports cannot cheaply provide without pulling in TLS
	// helpers nothing else in this module needs — satisfies the same
	// "freed at the next call, or at uninitialise" contract for the
	// realistic case of one consumer thread driving the ABI.
	batchMu   sync.Mutex
	lastBatch []*C.struct_analog_device_info
)

//export analog_sdk_version
func analog_sdk_version() (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	return C.int(coreMajorVersion)
}

//export analog_sdk_initialise
func analog_sdk_initialise() (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	var dirs = config.PluginSearchDirs(appName)

	return C.int(analogsdk.IntFromResult(rt.Initialise(dirs, true)))
}

//export analog_sdk_is_initialised
func analog_sdk_is_initialised() (rc C.bool) {
	defer recoverToFailure(func(analogsdk.ErrorKind) { rc = false })

	mu.Lock()
	defer mu.Unlock()

	return C.bool(rt.IsInitialised())
}

//export analog_sdk_uninitialise
func analog_sdk_uninitialise() (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	rt.Uninitialise()

	batchMu.Lock()
	freeRetainedBatchLocked()
	batchMu.Unlock()

	return C.int(analogsdk.Ok)
}

//export analog_sdk_set_keycode_mode
func analog_sdk_set_keycode_mode(mode C.uint32_t) (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.int(analogsdk.UnInitialized)
	}

	return C.int(rt.SetKeycodeMode(analogsdk.KeycodeMode(mode)))
}

//export analog_sdk_read_analog
func analog_sdk_read_analog(code C.uint16_t) (rc C.float) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.float(k) })

	return analogSdkReadAnalogDevice(code, C.uint64_t(analogsdk.AnyDevice))
}

//export analog_sdk_read_analog_device
func analog_sdk_read_analog_device(code C.uint16_t, deviceID C.uint64_t) (rc C.float) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.float(k) })

	return analogSdkReadAnalogDevice(code, deviceID)
}

func analogSdkReadAnalogDevice(code C.uint16_t, deviceID C.uint64_t) C.float {
	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.float(analogsdk.UnInitialized)
	}

	return C.float(analogsdk.FloatFromResult(rt.ReadAnalog(uint16(code), analogsdk.DeviceID(deviceID))))
}

//export analog_sdk_set_device_event_cb
func analog_sdk_set_device_event_cb(cb C.analog_sdk_device_event_cb, userData unsafe.Pointer) (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.int(analogsdk.UnInitialized)
	}

	registerEventCallback(cb, userData)

	return C.int(analogsdk.Ok)
}

//export analog_sdk_clear_device_event_cb
func analog_sdk_clear_device_event_cb() (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.int(analogsdk.UnInitialized)
	}

	clearEventCallback()

	return C.int(analogsdk.Ok)
}

//export analog_sdk_get_connected_devices_info
func analog_sdk_get_connected_devices_info(outInfo **C.struct_analog_device_info, maxLen C.uintptr_t) (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.int(analogsdk.UnInitialized)
	}

	var result = rt.ConnectedDevices()

	infos, ok := result.Get()
	if !ok {
		return C.int(result.Err())
	}

	batchMu.Lock()
	defer batchMu.Unlock()

	freeRetainedBatchLocked()

	var n = len(infos)
	if uintptr(maxLen) < uintptr(n) {
		n = int(maxLen)
	}

	var ptrs = (*[1 << 28]*C.struct_analog_device_info)(unsafe.Pointer(outInfo))[:n:n]

	lastBatch = make([]*C.struct_analog_device_info, 0, n)

	for i := 0; i < n; i++ {
		var wire = newWireDeviceInfo(infos[i])

		lastBatch = append(lastBatch, wire)
		ptrs[i] = wire
	}

	return C.int(n)
}

//export analog_sdk_read_full_buffer
func analog_sdk_read_full_buffer(outCodes *C.uint16_t, outValues *C.float, maxItems C.uintptr_t) (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	return readFullBufferDevice(outCodes, outValues, maxItems, C.uint64_t(analogsdk.AnyDevice))
}

//export analog_sdk_read_full_buffer_device
func analog_sdk_read_full_buffer_device(outCodes *C.uint16_t, outValues *C.float, maxItems C.uintptr_t, deviceID C.uint64_t) (rc C.int) {
	defer recoverToFailure(func(k analogsdk.ErrorKind) { rc = C.int(k) })

	return readFullBufferDevice(outCodes, outValues, maxItems, deviceID)
}

func readFullBufferDevice(outCodes *C.uint16_t, outValues *C.float, maxItems C.uintptr_t, deviceID C.uint64_t) C.int {
	mu.Lock()
	defer mu.Unlock()

	if !rt.IsInitialised() {
		return C.int(analogsdk.UnInitialized)
	}

	var result = rt.ReadFullBuffer(uint(maxItems), analogsdk.DeviceID(deviceID))

	pairs, ok := result.Get()
	if !ok {
		return C.int(result.Err())
	}

	var (
		codes = (*[1 << 28]C.uint16_t)(unsafe.Pointer(outCodes))[:len(pairs):len(pairs)]
		vals  = (*[1 << 28]C.float)(unsafe.Pointer(outValues))[:len(pairs):len(pairs)]
		i     int
	)

	for code, value := range pairs {
		codes[i] = C.uint16_t(code)
		vals[i] = C.float(value)
		i++
	}

	return C.int(len(pairs))
}

func main() {}
