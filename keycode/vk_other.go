//go:build !windows

package keycode

// windowsHost is always false on every non-Windows GOOS.
const windowsHost = false

// vkToScanCode and scanCodeToVK are only meaningful on Windows, where the
// OS keyboard layout API can translate Virtual-Key codes. Per spec,
// VirtualKey and VirtualKeyTranslate report no mapping on every other
// host.
func vkToScanCode(_ uint16, _ bool) (uint16, bool) {
	return 0, false
}

func scanCodeToVK(_ uint16, _ bool) (uint16, bool) {
	return 0, false
}
