// Command referencehid (built with `go build -buildmode=c-shared`) is
// the reference hardware plugin of spec.md §4.8: a foreign-flavor
// plugin exporting the flat C entry points package plugin's
// foreignPlugin adapter resolves, backed by github.com/karalabe/hid for
// cross-platform device access. See abi.c for the exported
// ANALOG_SDK_PLUGIN_ABI_VERSION global and state.go for the worker and
// timer threads.
package main

/*
#include "referencehid.h"
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/andrieee44/analogsdk"
)

const pluginName = "Reference HID Plugin"

const pluginSemVer = "v1.0.0"

type wireDeviceInfo = C.struct_analog_device_info

func newWireDeviceInfo(info analogsdk.DeviceInfo) *wireDeviceInfo {
	var wire = (*wireDeviceInfo)(C.malloc(C.sizeof_struct_analog_device_info))

	wire.vendor_id = C.uint16_t(info.VendorID)
	wire.product_id = C.uint16_t(info.ProductID)
	wire.manufacturer_name = C.CString(info.Manufacturer)
	wire.device_name = C.CString(info.ProductName)
	wire.device_id = C.uint64_t(info.DeviceID)
	wire.device_type = C.uint32_t(info.DeviceType)

	return wire
}

func freeWireDeviceInfo(wire *wireDeviceInfo) {
	C.free(unsafe.Pointer(wire.manufacturer_name))
	C.free(unsafe.Pointer(wire.device_name))
	C.free(unsafe.Pointer(wire))
}

func deriveDeviceID(vendorID, productID uint16, serial string) analogsdk.DeviceID {
	return analogsdk.DeriveDeviceID(vendorID, productID, []byte(serial))
}

func writeCString(dst *byte, dstLen uint32, s string) int32 {
	if len(s)+1 > int(dstLen) {
		return int32(analogsdk.Failure)
	}

	var out = unsafe.Slice(dst, dstLen)

	copy(out, s)
	out[len(s)] = 0

	return 0
}

//export analog_sdk_plugin_name
func analog_sdk_plugin_name(outBuf *byte, outLen C.uint32_t) C.int32_t {
	return C.int32_t(writeCString(outBuf, uint32(outLen), pluginName))
}

//export plugin_version
func plugin_version(outBuf *byte, outLen C.uint32_t) C.int32_t {
	return C.int32_t(writeCString(outBuf, uint32(outLen), pluginSemVer))
}

//export analog_sdk_plugin_initialise
func analog_sdk_plugin_initialise(cb C.analog_sdk_plugin_event_cb, userData C.uintptr_t) C.int32_t {
	var count = runtimeState.start(func(event uint32, info *wireDeviceInfo) {
		C.analog_sdk_plugin_invoke_cb(cb, C.uint32_t(event), info, userData)
	})

	return C.int32_t(count)
}

//export analog_sdk_plugin_is_initialised
func analog_sdk_plugin_is_initialised() C.uint32_t {
	if runtimeState.isInitialised() {
		return 1
	}

	return 0
}

//export analog_sdk_plugin_unload
func analog_sdk_plugin_unload() {
	runtimeState.unload()
	freeRetainedInfoStrings()
}

// infoStringsMu and infoStrings retain the malloc'd manufacturer/product
// strings written into the caller's buffer by the previous
// analog_sdk_plugin_device_info call, freed at the start of the next
// call (or at unload). The core copies every string out before the call
// returns, exactly as it does for its own get_connected_devices_info
// batch (see capi.freeRetainedBatchLocked) — this plugin reuses the
// same retain-until-next-call contract instead of leaking one malloc
// per device per poll.
var (
	infoStringsMu sync.Mutex
	infoStrings   []unsafe.Pointer
)

func freeRetainedInfoStrings() {
	infoStringsMu.Lock()
	defer infoStringsMu.Unlock()

	for _, p := range infoStrings {
		C.free(p)
	}

	infoStrings = nil
}

//export analog_sdk_plugin_device_info
func analog_sdk_plugin_device_info(outBuf *wireDeviceInfo, outCap C.uint32_t) C.int32_t {
	freeRetainedInfoStrings()

	var infos = runtimeState.deviceInfos()

	var n = len(infos)
	if n > int(outCap) {
		n = int(outCap)
	}

	var slots = unsafe.Slice(outBuf, outCap)

	infoStringsMu.Lock()
	defer infoStringsMu.Unlock()

	for i := 0; i < n; i++ {
		var manufacturer = C.CString(infos[i].Manufacturer)
		var product = C.CString(infos[i].ProductName)

		infoStrings = append(infoStrings, unsafe.Pointer(manufacturer), unsafe.Pointer(product))

		slots[i].vendor_id = C.uint16_t(infos[i].VendorID)
		slots[i].product_id = C.uint16_t(infos[i].ProductID)
		slots[i].manufacturer_name = manufacturer
		slots[i].device_name = product
		slots[i].device_id = C.uint64_t(infos[i].DeviceID)
		slots[i].device_type = C.uint32_t(infos[i].DeviceType)
	}

	return C.int32_t(n)
}

//export analog_sdk_plugin_read_analog
func analog_sdk_plugin_read_analog(hidCode C.uint16_t, deviceID C.uint64_t) C.float {
	var value, kind = runtimeState.readAnalog(uint16(hidCode), analogsdk.DeviceID(deviceID))
	if kind != analogsdk.Ok {
		return C.float(kind)
	}

	return C.float(value)
}

//export analog_sdk_plugin_read_full_buffer
func analog_sdk_plugin_read_full_buffer(outCodes *C.uint16_t, outValues *C.float, maxItems C.uint32_t, deviceID C.uint64_t) C.int32_t {
	var pairs, kind = runtimeState.readFullBuffer(uint(maxItems), analogsdk.DeviceID(deviceID))
	if kind != analogsdk.Ok {
		return C.int32_t(kind)
	}

	var (
		codes = unsafe.Slice(outCodes, maxItems)
		vals  = unsafe.Slice(outValues, maxItems)
		i     int
	)

	for code, value := range pairs {
		codes[i] = C.uint16_t(code)
		vals[i] = C.float(value)
		i++
	}

	return C.int32_t(len(pairs))
}

func main() {}
