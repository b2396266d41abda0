package analogsdk

// DeviceID identifies a single connected device. It is derived
// deterministically from the device's vendor id, product id, and serial
// bytes (see DeriveDeviceID). Zero is reserved and means "any
// device" in read paths; a plugin must never let a real device hash to
// zero, substituting a stable placeholder serial when the hardware has
// none.
type DeviceID uint64

// AnyDevice is the reserved DeviceID meaning "any device the plugin owns".
const AnyDevice DeviceID = 0

// DeviceType classifies a connected device.
type DeviceType uint32

const (
	// Keyboard is a full-size or compact keyboard.
	Keyboard DeviceType = 1

	// Keypad is a numpad or macro-pad style device.
	Keypad DeviceType = 2

	// Other is any device that is neither a Keyboard nor a Keypad.
	Other DeviceType = 3
)

// DeviceInfo describes one connected device. This is the owning,
// core-internal form: Manufacturer and ProductName are Go strings,
// always non-empty (placeholders are allowed), and DeviceID is always
// non-zero. capi translates this to the wire form at the ABI boundary.
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	ProductName  string
	DeviceID     DeviceID
	DeviceType   DeviceType
}

// Clone returns a deep copy of info. Event delivery (registry.Router)
// clones DeviceInfo before handing it to a worker so the plugin thread
// that produced it is never blocked on string data shared with a
// consumer callback.
func (info DeviceInfo) Clone() DeviceInfo {
	return DeviceInfo{
		VendorID:     info.VendorID,
		ProductID:    info.ProductID,
		Manufacturer: info.Manufacturer,
		ProductName:  info.ProductName,
		DeviceID:     info.DeviceID,
		DeviceType:   info.DeviceType,
	}
}

// KeycodeMode selects the keycode namespace used by read paths and
// whole-buffer reads. It is process-wide state with a lifecycle tied to
// the core singleton, defaulting to HID on initialisation.
type KeycodeMode uint32

const (
	// HID is the USB HID Usage ID namespace (Keyboard/Keypad page). The
	// default mode.
	HID KeycodeMode = 0

	// ScanCode1 is the IBM PC/AT Scan-Code Set 1 namespace.
	ScanCode1 KeycodeMode = 1

	// VirtualKey is the OS's key-layout-independent Virtual-Key
	// namespace. Windows-only; rejected with NotAvailable elsewhere.
	VirtualKey KeycodeMode = 2

	// VirtualKeyTranslate is the OS's layout-dependent Virtual-Key
	// namespace, resolved against the current foreground window's
	// layout. Windows-only; rejected with NotAvailable elsewhere.
	VirtualKeyTranslate KeycodeMode = 3
)

// DeviceEventType names the kind of topology change delivered through the
// device event callback.
type DeviceEventType uint32

const (
	// Connected is emitted when a plugin opens a new device.
	Connected DeviceEventType = 1

	// Disconnected is emitted when a previously open device goes away.
	Disconnected DeviceEventType = 2
)

// DeviceEventCallback receives device topology changes. It is invoked on
// a single dispatch goroutine decoupled from the plugin thread that
// produced the event, in the order the events occurred (see
// registry.Router), so it may safely call back into the core.
type DeviceEventCallback func(event DeviceEventType, info DeviceInfo)
