package main

/*
#include "capi.h"
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/andrieee44/analogsdk"
)

// recoverToFailure recovers a panic crossing the ABI and calls set with
// Failure, matching spec.md §4.7's "catches panics/aborts crossing the
// ABI and converts them to Failure". A caller in another language has
// no Go stack to unwind into.
func recoverToFailure(set func(analogsdk.ErrorKind)) {
	if r := recover(); r != nil {
		set(analogsdk.Failure)
	}
}

// newWireDeviceInfo allocates a C-owned copy of info. The caller is
// responsible for eventually freeing it via freeWireDeviceInfo (done in
// bulk by freeRetainedBatchLocked).
func newWireDeviceInfo(info analogsdk.DeviceInfo) *C.struct_analog_device_info {
	var wire = (*C.struct_analog_device_info)(C.malloc(C.sizeof_struct_analog_device_info))

	wire.vendor_id = C.uint16_t(info.VendorID)
	wire.product_id = C.uint16_t(info.ProductID)
	wire.manufacturer_name = C.CString(info.Manufacturer)
	wire.device_name = C.CString(info.ProductName)
	wire.device_id = C.uint64_t(info.DeviceID)
	wire.device_type = C.uint32_t(info.DeviceType)

	return wire
}

func freeWireDeviceInfo(wire *C.struct_analog_device_info) {
	C.free(unsafe.Pointer(wire.manufacturer_name))
	C.free(unsafe.Pointer(wire.device_name))
	C.free(unsafe.Pointer(wire))
}

// freeRetainedBatchLocked frees whatever device info batch is still
// retained from the previous get_connected_devices_info call (or from
// before an uninitialise). Callers must hold batchMu.
func freeRetainedBatchLocked() {
	for _, wire := range lastBatch {
		freeWireDeviceInfo(wire)
	}

	lastBatch = nil
}

var (
	cbMu       sync.Mutex
	cbFn       C.analog_sdk_device_event_cb
	cbUserData unsafe.Pointer
)

// registerEventCallback installs cb/userData as the consumer's raw C
// callback and wires runtime's Go-side callback slot to invoke it
// through the cgo trampoline in capi.h.
func registerEventCallback(cb C.analog_sdk_device_event_cb, userData unsafe.Pointer) {
	cbMu.Lock()
	cbFn = cb
	cbUserData = userData
	cbMu.Unlock()

	rt.SetDeviceEventCallback(func(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo) {
		cbMu.Lock()
		var (
			fn = cbFn
			ud = cbUserData
		)
		cbMu.Unlock()

		if fn == nil {
			return
		}

		var wire = newWireDeviceInfo(info)
		defer freeWireDeviceInfo(wire)

		C.analog_sdk_invoke_cb(fn, C.uint32_t(event), wire, ud)
	})
}

func clearEventCallback() {
	cbMu.Lock()
	cbFn = nil
	cbUserData = nil
	cbMu.Unlock()

	rt.ClearDeviceEventCallback()
}
