package plugin

import (
	"unsafe"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/ebitengine/purego"
)

// nativeVTable mirrors the C layout a native plugin's _plugin_create
// factory returns: a self pointer plus one function address per
// pluginapi.Plugin method, called with self as the implicit first
// argument. This is the Go-FFI equivalent of a Rust `Box<dyn
// AnalogPlugin>` trait object's (data, vtable) fat pointer.
type nativeVTable struct {
	name           uintptr
	initialise     uintptr
	isInitialised  uintptr
	unload         uintptr
	deviceInfo     uintptr
	readAnalog     uintptr
	readFullBuffer uintptr
}

// nativeFatPointer is the by-value struct _plugin_create returns.
type nativeFatPointer struct {
	self uintptr
	vt   uintptr // *nativeVTable
}

type nativePlugin struct {
	self uintptr

	nameFn           func(self uintptr, outBuf *byte, outLen uint32) int32
	initialiseFn     func(self uintptr, cb uintptr, userData uintptr) int32
	isInitialisedFn  func(self uintptr) uint32
	unloadFn         func(self uintptr)
	deviceInfoFn     func(self uintptr, outBuf *cDeviceInfo, outCap uint32) int32
	readAnalogFn     func(self uintptr, hidCode uint16, deviceID uint64) float32
	readFullBufferFn func(self uintptr, outCodes *uint16, outValues *float32, maxItems uint32, deviceID uint64) int32

	callbackToken uintptr
}

var _ pluginapi.Plugin = (*nativePlugin)(nil)

// newNativePlugin resolves factory (the library's exported
// `_plugin_create` symbol), invokes it, and binds every vtable slot to a
// typed Go func via purego.RegisterFunc.
func newNativePlugin(factory uintptr) (*nativePlugin, error) {
	var call func() nativeFatPointer

	purego.RegisterFunc(&call, factory)

	var fat = call()
	if fat.vt == 0 {
		return nil, errInvalidNativePlugin
	}

	var vt = (*nativeVTable)(unsafe.Pointer(fat.vt)) //nolint:govet // purego FFI boundary

	var np = &nativePlugin{self: fat.self}

	purego.RegisterFunc(&np.nameFn, vt.name)
	purego.RegisterFunc(&np.initialiseFn, vt.initialise)
	purego.RegisterFunc(&np.isInitialisedFn, vt.isInitialised)
	purego.RegisterFunc(&np.unloadFn, vt.unload)
	purego.RegisterFunc(&np.deviceInfoFn, vt.deviceInfo)
	purego.RegisterFunc(&np.readAnalogFn, vt.readAnalog)
	purego.RegisterFunc(&np.readFullBufferFn, vt.readFullBuffer)

	return np, nil
}

const nameBufSize = 256

func (p *nativePlugin) Name() analogsdk.Result[string] {
	var buf = make([]byte, nameBufSize)

	var rc = p.nameFn(p.self, &buf[0], nameBufSize)
	if rc < 0 {
		return analogsdk.ErrResult[string](decodeErr(rc))
	}

	return analogsdk.OkResult(cGoString(uintptr(unsafe.Pointer(&buf[0])))) //nolint:govet // purego FFI boundary
}

func (p *nativePlugin) Initialise(cb pluginapi.EventCallback) analogsdk.Result[uint32] {
	p.callbackToken = registerCallback(cb)

	var rc = p.initialiseFn(p.self, trampolinePtr, p.callbackToken)
	if rc < 0 {
		unregisterCallback(p.callbackToken)

		return analogsdk.ErrResult[uint32](decodeErr(rc))
	}

	return analogsdk.OkResult(uint32(rc))
}

func (p *nativePlugin) IsInitialised() bool {
	return p.isInitialisedFn(p.self) != 0
}

func (p *nativePlugin) Unload() {
	p.unloadFn(p.self)
	unregisterCallback(p.callbackToken)
}

const maxDevices = 256

func (p *nativePlugin) DeviceInfo() analogsdk.Result[[]analogsdk.DeviceInfo] {
	var buf = make([]cDeviceInfo, maxDevices)

	var rc = p.deviceInfoFn(p.self, &buf[0], maxDevices)
	if rc < 0 {
		return analogsdk.ErrResult[[]analogsdk.DeviceInfo](decodeErr(rc))
	}

	var out = make([]analogsdk.DeviceInfo, rc)
	for i := range out {
		out[i] = buf[i].toDeviceInfo()
	}

	return analogsdk.OkResult(out)
}

func (p *nativePlugin) ReadAnalog(hidCode uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32] {
	return analogsdk.ResultFromFloat(p.readAnalogFn(p.self, hidCode, uint64(deviceID)))
}

func (p *nativePlugin) ReadFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32] {
	var (
		codes  = make([]uint16, maxItems)
		values = make([]float32, maxItems)
	)

	var rc = p.readFullBufferFn(p.self, &codes[0], &values[0], uint32(maxItems), uint64(deviceID))
	if rc < 0 {
		return analogsdk.ErrResult[map[uint16]float32](decodeErr(rc))
	}

	var out = make(map[uint16]float32, rc)
	for i := 0; i < int(rc); i++ {
		out[codes[i]] = values[i]
	}

	return analogsdk.OkResult(out)
}
