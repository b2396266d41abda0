package plugin

import (
	"sync"
	"unsafe"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/ebitengine/purego"
)

// callbackRegistry maps the opaque user-data token handed to a plugin's
// initialise call back to the Go closure it should invoke. Both plugin
// flavors receive a single process-wide trampoline function pointer
// (trampolinePtr) plus a per-call token instead of a real closure
// pointer, since a Go closure has no stable C-callable address.
var callbackRegistry struct {
	mu   sync.Mutex
	next uintptr
	fns  map[uintptr]pluginapi.EventCallback
}

func init() {
	callbackRegistry.fns = make(map[uintptr]pluginapi.EventCallback)
}

func registerCallback(cb pluginapi.EventCallback) uintptr {
	callbackRegistry.mu.Lock()
	defer callbackRegistry.mu.Unlock()

	callbackRegistry.next++
	var token = callbackRegistry.next

	callbackRegistry.fns[token] = cb

	return token
}

func unregisterCallback(token uintptr) {
	callbackRegistry.mu.Lock()
	defer callbackRegistry.mu.Unlock()

	delete(callbackRegistry.fns, token)
}

func lookupCallback(token uintptr) (pluginapi.EventCallback, bool) {
	callbackRegistry.mu.Lock()
	defer callbackRegistry.mu.Unlock()

	cb, ok := callbackRegistry.fns[token]

	return cb, ok
}

// trampoline is the single Go function every loaded plugin's event
// callback ultimately calls through. eventType is the DeviceEventType,
// infoPtr a *cDeviceInfo valid only for the duration of this call, and
// userData the token from registerCallback identifying which plugin's
// Go closure to invoke.
func trampoline(eventType uint32, infoPtr uintptr, userData uintptr) {
	var (
		cb hasCallback
		ok bool
	)

	cb, ok = lookupCallback(userData)
	if !ok || infoPtr == 0 {
		return
	}

	var c = (*cDeviceInfo)(unsafe.Pointer(infoPtr)) //nolint:govet // purego FFI boundary

	cb(analogsdk.DeviceEventType(eventType), c.toDeviceInfo())
}

type hasCallback = pluginapi.EventCallback

// trampolinePtr is the process-wide C-callable address every plugin is
// handed as its event callback. purego.NewCallback is only ever called
// once per signature: building one per plugin load would leak the
// underlying libffi closure.
var trampolinePtr = purego.NewCallback(trampoline)
