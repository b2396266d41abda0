// Package keycode implements the bijections between the keycode
// namespaces the runtime accepts: USB HID Usage IDs (Keyboard/Keypad
// page), IBM PC/AT Scan-Code Set 1, and (Windows-only) Virtual-Key codes.
package keycode

import "github.com/andrieee44/analogsdk"

// CustomRangeStart is the first code in the custom/user range. Codes at
// or above this value that are not 0xE0-prefixed pass through unchanged
// in every mode, in both directions, reserving a range for non-standard
// keys without blocking the mapping tables below.
const CustomRangeStart uint16 = 0x200

// extendedPrefix marks an 0xE0xx extended Scan-Code Set 1 code.
const extendedPrefix uint16 = 0xE0

func isCustom(code uint16) bool {
	return code >= CustomRangeStart && code>>8 != extendedPrefix
}

func highByte(code uint16) uint16 {
	return code >> 8
}

// invalidOutsideScanCode1 reports whether code's high byte is reserved
// for Scan-Code Set 1 (plain 0x01xx codes, and the 0xE0xx extended
// range) and is therefore invalid in every other mode.
func invalidOutsideScanCode1(code uint16) bool {
	var hi = highByte(code)

	return hi == 0x01 || hi == extendedPrefix
}

// ModeSupported reports whether mode is usable on this host. VirtualKey
// and VirtualKeyTranslate require the OS key-layout API and are only
// supported on Windows; every other mode is always supported.
func ModeSupported(mode analogsdk.KeycodeMode) bool {
	switch mode {
	case analogsdk.VirtualKey, analogsdk.VirtualKeyTranslate:
		return windowsHost
	default:
		return true
	}
}

// CodeToHID translates code, interpreted in mode, to its HID Usage ID. It
// returns false when no mapping exists: an unmapped Scan-Code Set 1 code,
// a reserved high byte used outside ScanCode1, or a VirtualKey* mode on a
// non-Windows host.
func CodeToHID(code uint16, mode analogsdk.KeycodeMode) (uint16, bool) {
	if isCustom(code) {
		return code, true
	}

	switch mode {
	case analogsdk.HID:
		if invalidOutsideScanCode1(code) {
			return 0, false
		}

		return code, true
	case analogsdk.ScanCode1:
		return scanCodeToHID(code)
	case analogsdk.VirtualKey:
		return virtualKeyToHID(code, false)
	case analogsdk.VirtualKeyTranslate:
		return virtualKeyToHID(code, true)
	default:
		return 0, false
	}
}

// HIDToCode translates a HID Usage ID to code in mode. It returns false
// under the same conditions as CodeToHID.
func HIDToCode(hidCode uint16, mode analogsdk.KeycodeMode) (uint16, bool) {
	if isCustom(hidCode) {
		return hidCode, true
	}

	switch mode {
	case analogsdk.HID:
		if invalidOutsideScanCode1(hidCode) {
			return 0, false
		}

		return hidCode, true
	case analogsdk.ScanCode1:
		return hidToScanCode(hidCode)
	case analogsdk.VirtualKey:
		return hidToVirtualKey(hidCode, false)
	case analogsdk.VirtualKeyTranslate:
		return hidToVirtualKey(hidCode, true)
	default:
		return 0, false
	}
}

func virtualKeyToHID(vk uint16, translate bool) (uint16, bool) {
	var (
		sc uint16
		ok bool
	)

	if !windowsHost {
		return 0, false
	}

	if sc, ok = overrideVKToSC(vk); ok {
		return scanCodeToHID(sc)
	}

	if sc, ok = vkToScanCode(vk, translate); !ok {
		return 0, false
	}

	return scanCodeToHID(sc)
}

func hidToVirtualKey(hidCode uint16, translate bool) (uint16, bool) {
	var (
		sc uint16
		ok bool
	)

	if !windowsHost {
		return 0, false
	}

	if sc, ok = hidToScanCode(hidCode); !ok {
		return 0, false
	}

	if vk, ok := overrideSCToVK(sc); ok {
		return vk, true
	}

	return scanCodeToVK(sc, translate)
}

func scanCodeToHID(sc uint16) (uint16, bool) {
	hid, ok := scanCodeToHIDTable[sc]

	return hid, ok
}

func hidToScanCode(hidCode uint16) (uint16, bool) {
	sc, ok := hidToScanCodeTable[hidCode]

	return sc, ok
}

func overrideVKToSC(vk uint16) (uint16, bool) {
	sc, ok := vkOverrideToSC[vk]

	return sc, ok
}

func overrideSCToVK(sc uint16) (uint16, bool) {
	vk, ok := scOverrideToVK[sc]

	return vk, ok
}
