package aggregate_test

import (
	"testing"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/aggregate"
	"github.com/andrieee44/analogsdk/pluginapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlugin struct {
	analog      map[uint16]float32
	analogErr   analogsdk.ErrorKind
	buffer      map[uint16]float32
	bufferErr   analogsdk.ErrorKind
	deviceID    analogsdk.DeviceID
	readCalls   int
}

func (f *fakePlugin) Name() analogsdk.Result[string] { return analogsdk.OkResult("fake") }

func (f *fakePlugin) Initialise(pluginapi.EventCallback) analogsdk.Result[uint32] {
	return analogsdk.OkResult[uint32](1)
}

func (f *fakePlugin) IsInitialised() bool { return true }
func (f *fakePlugin) Unload()             {}

func (f *fakePlugin) DeviceInfo() analogsdk.Result[[]analogsdk.DeviceInfo] {
	return analogsdk.OkResult([]analogsdk.DeviceInfo{})
}

func (f *fakePlugin) ReadAnalog(hidCode uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32] {
	f.readCalls++

	if deviceID != analogsdk.AnyDevice && deviceID != f.deviceID {
		return analogsdk.ErrResult[float32](analogsdk.NoDevices)
	}

	if f.analogErr != analogsdk.Ok && f.analogErr != 0 {
		return analogsdk.ErrResult[float32](f.analogErr)
	}

	v, ok := f.analog[hidCode]
	if !ok {
		return analogsdk.ErrResult[float32](analogsdk.NoDevices)
	}

	return analogsdk.OkResult(v)
}

func (f *fakePlugin) ReadFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32] {
	if deviceID != analogsdk.AnyDevice && deviceID != f.deviceID {
		return analogsdk.ErrResult[map[uint16]float32](analogsdk.NoDevices)
	}

	if f.bufferErr != analogsdk.Ok && f.bufferErr != 0 {
		return analogsdk.ErrResult[map[uint16]float32](f.bufferErr)
	}

	var out = make(map[uint16]float32, len(f.buffer))
	for k, v := range f.buffer {
		out[k] = v

		if uint(len(out)) >= maxItems {
			break
		}
	}

	return analogsdk.OkResult(out)
}

func newCore() *aggregate.Core {
	return aggregate.NewCore(zap.NewNop().Sugar())
}

func TestReadAnalogMaxAcrossPlugins(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{analog: map[uint16]float32{0x05: 0.3}}
		p2 = &fakePlugin{analog: map[uint16]float32{0x05: 0.9}}
		c  = newCore()
	)

	var r = c.ReadAnalog([]pluginapi.Plugin{p1, p2}, analogsdk.HID, 0x05, analogsdk.AnyDevice)

	v, ok := r.Get()
	require.True(t, ok)
	assert.InDelta(t, 0.9, v, 1e-6)
}

func TestReadAnalogSpecificDeviceStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{deviceID: 1, analog: map[uint16]float32{0x05: 0.5}}
		p2 = &fakePlugin{deviceID: 2, analog: map[uint16]float32{0x05: 1.0}}
		c  = newCore()
	)

	var r = c.ReadAnalog([]pluginapi.Plugin{p1, p2}, analogsdk.HID, 0x05, 1)

	v, ok := r.Get()
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-6)
	assert.Zero(t, p2.readCalls)
}

func TestReadAnalogNoMappingBypassesPlugins(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{analog: map[uint16]float32{}}
		c  = newCore()
	)

	var r = c.ReadAnalog([]pluginapi.Plugin{p1}, analogsdk.HID, 0x01FF, analogsdk.AnyDevice)

	_, ok := r.Get()
	require.False(t, ok)
	assert.Equal(t, analogsdk.NoMapping, r.Err())
	assert.Zero(t, p1.readCalls)
}

func TestReadAnalogNoDeviceMatches(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{deviceID: 1, analog: map[uint16]float32{0x05: 0.5}}
		c  = newCore()
	)

	var r = c.ReadAnalog([]pluginapi.Plugin{p1}, analogsdk.HID, 0x05, 999)

	_, ok := r.Get()
	require.False(t, ok)
	assert.Equal(t, analogsdk.NoDevices, r.Err())
}

func TestReadFullBufferMergesWithMax(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{buffer: map[uint16]float32{0x05: 0.2, 0x06: 0.8}}
		p2 = &fakePlugin{buffer: map[uint16]float32{0x05: 0.9}}
		c  = newCore()
	)

	var r = c.ReadFullBuffer([]pluginapi.Plugin{p1, p2}, analogsdk.HID, 10, analogsdk.AnyDevice)

	m, ok := r.Get()
	require.True(t, ok)
	assert.InDelta(t, 0.9, m[0x05], 1e-6)
	assert.InDelta(t, 0.8, m[0x06], 1e-6)
}

func TestReadFullBufferPropagatesZeroEntries(t *testing.T) {
	t.Parallel()

	var (
		p1 = &fakePlugin{buffer: map[uint16]float32{0x05: 0.0}}
		c  = newCore()
	)

	var r = c.ReadFullBuffer([]pluginapi.Plugin{p1}, analogsdk.HID, 10, analogsdk.AnyDevice)

	m, ok := r.Get()
	require.True(t, ok)
	v, present := m[0x05]
	require.True(t, present, "zero-valued sticky-release entry must be forwarded")
	assert.Equal(t, float32(0.0), v)
}
