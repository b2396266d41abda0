package plugin

import (
	"unsafe"

	"github.com/andrieee44/analogsdk"
)

// cDeviceInfo is the wire-form DeviceInfo every plugin ABI crossing uses:
// fixed-width fields plus two null-terminated string pointers, owned by
// the plugin for the duration of the call. This mirrors the wire-form
// layout in spec.md §6 exactly, since it is the one struct shape both
// plugin flavors and the C ABI facade all marshal through.
type cDeviceInfo struct {
	vendorID     uint16
	productID    uint16
	manufacturer uintptr // char*
	productName  uintptr // char*
	deviceID     uint64
	deviceType   uint32
}

// maxCStringLen bounds the defensive scan in cGoString: plugins are
// expected to null-terminate well inside this, and a plugin that doesn't
// is treated as producing garbage rather than hung forever.
const maxCStringLen = 1 << 16

// cGoString copies a null-terminated C string at ptr into a Go string. It
// is the one place in this package that reaches past the Go memory model
// via unsafe, because every plugin ABI crossing hands back raw pointers
// the producer owns only for the duration of the call — the core must
// copy out anything it needs before returning.
func cGoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	var data = unsafe.Slice((*byte)(unsafe.Pointer(ptr)), maxCStringLen)

	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}

	return string(data)
}

func (c cDeviceInfo) toDeviceInfo() analogsdk.DeviceInfo {
	return analogsdk.DeviceInfo{
		VendorID:     c.vendorID,
		ProductID:    c.productID,
		Manufacturer: cGoString(c.manufacturer),
		ProductName:  cGoString(c.productName),
		DeviceID:     analogsdk.DeviceID(c.deviceID),
		DeviceType:   analogsdk.DeviceType(c.deviceType),
	}
}
