//go:build windows

package keycode

import "golang.org/x/sys/windows"

// windowsHost is true on every build of this file, i.e. GOOS=windows.
const windowsHost = true

// mapVirtualKeyEx / GetKeyboardLayout / GetForegroundWindow /
// GetWindowThreadProcessId are resolved directly from user32.dll: the
// teacher's golang.org/x/sys dependency ships the low-level syscall
// plumbing (windows.NewLazySystemDLL is the package's own pattern for
// Windows-only API surface it doesn't wrap itself) but has no typed
// wrapper for these particular user32 entry points.
var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procMapVirtualKeyExW      = user32.NewProc("MapVirtualKeyExW")
	procGetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadPID    = user32.NewProc("GetWindowThreadProcessId")
	procGetKeyboardLayout     = user32.NewProc("GetKeyboardLayout")
)

const (
	mapvkVkToVsc   = 0
	mapvkVscToVk   = 1
	mapvkVkToChar  = 2
	mapvkVscToVkEx = 3
	mapvkVkToVscEx = 4
)

func keyboardLayout() uintptr {
	var (
		foreground, _, _ = procGetForegroundWindow.Call()
		threadID, _, _   = procGetWindowThreadPID.Call(foreground, 0)
		layout, _, _     = procGetKeyboardLayout.Call(threadID)
	)

	return layout
}

func mapVirtualKey(code uint16, mapType uintptr, translate bool) (uint16, bool) {
	var (
		layout uintptr
		result uintptr
	)

	if translate {
		layout = keyboardLayout()
	}

	result, _, _ = procMapVirtualKeyExW.Call(uintptr(code), mapType, layout)
	if result == 0 {
		return 0, false
	}

	return uint16(result), true
}

func vkToScanCode(vk uint16, translate bool) (uint16, bool) {
	return mapVirtualKey(vk, mapvkVkToVscEx, translate)
}

func scanCodeToVK(sc uint16, translate bool) (uint16, bool) {
	return mapVirtualKey(sc, mapvkVscToVkEx, translate)
}
