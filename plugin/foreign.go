package plugin

import (
	"unsafe"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/ebitengine/purego"
)

// foreignSymbols are the flat C entry points a foreign-flavor plugin
// exports at the top level of its shared library, parallel to the
// native vtable's methods but with no implicit self argument.
var foreignSymbols = [...]string{
	"analog_sdk_plugin_name",
	"analog_sdk_plugin_initialise",
	"analog_sdk_plugin_is_initialised",
	"analog_sdk_plugin_unload",
	"analog_sdk_plugin_device_info",
	"analog_sdk_plugin_read_analog",
	"analog_sdk_plugin_read_full_buffer",
}

type foreignPlugin struct {
	nameFn           func(outBuf *byte, outLen uint32) int32
	initialiseFn     func(cb uintptr, userData uintptr) int32
	isInitialisedFn  func() uint32
	unloadFn         func()
	deviceInfoFn     func(outBuf *cDeviceInfo, outCap uint32) int32
	readAnalogFn     func(hidCode uint16, deviceID uint64) float32
	readFullBufferFn func(outCodes *uint16, outValues *float32, maxItems uint32, deviceID uint64) int32

	callbackToken uintptr
}

var _ pluginapi.Plugin = (*foreignPlugin)(nil)

// newForeignPlugin resolves every symbol in foreignSymbols from handle.
// A missing symbol rejects the whole library as not a valid plugin,
// mirroring the native path's single-factory-symbol failure mode.
func newForeignPlugin(handle uintptr) (*foreignPlugin, error) {
	var (
		fp  = &foreignPlugin{}
		sym uintptr
		err error
	)

	for _, name := range foreignSymbols {
		sym, err = purego.Dlsym(handle, name)
		if err != nil || sym == 0 {
			return nil, errInvalidForeignPlugin
		}

		switch name {
		case "analog_sdk_plugin_name":
			purego.RegisterFunc(&fp.nameFn, sym)
		case "analog_sdk_plugin_initialise":
			purego.RegisterFunc(&fp.initialiseFn, sym)
		case "analog_sdk_plugin_is_initialised":
			purego.RegisterFunc(&fp.isInitialisedFn, sym)
		case "analog_sdk_plugin_unload":
			purego.RegisterFunc(&fp.unloadFn, sym)
		case "analog_sdk_plugin_device_info":
			purego.RegisterFunc(&fp.deviceInfoFn, sym)
		case "analog_sdk_plugin_read_analog":
			purego.RegisterFunc(&fp.readAnalogFn, sym)
		case "analog_sdk_plugin_read_full_buffer":
			purego.RegisterFunc(&fp.readFullBufferFn, sym)
		}
	}

	return fp, nil
}

func (fp *foreignPlugin) Name() analogsdk.Result[string] {
	var buf = make([]byte, nameBufSize)

	var rc = fp.nameFn(&buf[0], nameBufSize)
	if rc < 0 {
		return analogsdk.ErrResult[string](decodeErr(rc))
	}

	return analogsdk.OkResult(cGoString(uintptr(unsafe.Pointer(&buf[0])))) //nolint:govet // purego FFI boundary
}

func (fp *foreignPlugin) Initialise(cb pluginapi.EventCallback) analogsdk.Result[uint32] {
	fp.callbackToken = registerCallback(cb)

	var rc = fp.initialiseFn(trampolinePtr, fp.callbackToken)
	if rc < 0 {
		unregisterCallback(fp.callbackToken)

		return analogsdk.ErrResult[uint32](decodeErr(rc))
	}

	return analogsdk.OkResult(uint32(rc))
}

func (fp *foreignPlugin) IsInitialised() bool {
	return fp.isInitialisedFn() != 0
}

func (fp *foreignPlugin) Unload() {
	fp.unloadFn()
	unregisterCallback(fp.callbackToken)
}

func (fp *foreignPlugin) DeviceInfo() analogsdk.Result[[]analogsdk.DeviceInfo] {
	var buf = make([]cDeviceInfo, maxDevices)

	var rc = fp.deviceInfoFn(&buf[0], maxDevices)
	if rc < 0 {
		return analogsdk.ErrResult[[]analogsdk.DeviceInfo](decodeErr(rc))
	}

	var out = make([]analogsdk.DeviceInfo, rc)
	for i := range out {
		out[i] = buf[i].toDeviceInfo()
	}

	return analogsdk.OkResult(out)
}

func (fp *foreignPlugin) ReadAnalog(hidCode uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32] {
	return analogsdk.ResultFromFloat(fp.readAnalogFn(hidCode, uint64(deviceID)))
}

func (fp *foreignPlugin) ReadFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32] {
	var (
		codes  = make([]uint16, maxItems)
		values = make([]float32, maxItems)
	)

	var rc = fp.readFullBufferFn(&codes[0], &values[0], uint32(maxItems), uint64(deviceID))
	if rc < 0 {
		return analogsdk.ErrResult[map[uint16]float32](decodeErr(rc))
	}

	var out = make(map[uint16]float32, rc)
	for i := 0; i < int(rc); i++ {
		out[codes[i]] = values[i]
	}

	return analogsdk.OkResult(out)
}
