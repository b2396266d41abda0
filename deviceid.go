package analogsdk

import "hash/fnv"

// DeriveDeviceID computes the DeviceID for a device from its vendor id,
// product id, and serial bytes, per §3 of the spec: hash(vendor_id ||
// product_id || serial_bytes). Plugins call this when they open a device;
// the core never derives it itself, since only the plugin knows the
// device's serial.
//
// FNV-1a is used rather than a cryptographic hash: DeviceID only needs to
// be stable and collision-resistant enough for a handful of simultaneously
// connected devices, not attacker-resistant, so the stdlib hash avoids
// pulling in a hashing library for a few lines of mixing.
func DeriveDeviceID(vendorID, productID uint16, serial []byte) DeviceID {
	var h = fnv.New64a()

	_, _ = h.Write([]byte{byte(vendorID >> 8), byte(vendorID)})
	_, _ = h.Write([]byte{byte(productID >> 8), byte(productID)})
	_, _ = h.Write(serial)

	var id = DeviceID(h.Sum64())
	if id == AnyDevice {
		// Vanishingly unlikely, but a real device must never collide
		// with the "any device" sentinel.
		id = DeviceID(1)
	}

	return id
}
