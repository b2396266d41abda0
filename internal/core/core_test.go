package core

import (
	"testing"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/keycode"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRuntime() *Runtime {
	return New(zap.NewNop().Sugar())
}

func TestNewRuntimeStartsUninitialised(t *testing.T) {
	var r = newTestRuntime()

	assert.False(t, r.IsInitialised())
	assert.Equal(t, analogsdk.HID, r.KeycodeMode())
	assert.Nil(t, r.Plugins())
}

func TestUninitialiseBeforeInitialiseIsNoop(t *testing.T) {
	var r = newTestRuntime()

	assert.NotPanics(t, r.Uninitialise)
	assert.False(t, r.IsInitialised())
}

func TestSetKeycodeModeRejectsUnsupportedVirtualKeyModeOnNonWindows(t *testing.T) {
	var r = newTestRuntime()

	var kind = r.SetKeycodeMode(analogsdk.VirtualKey)

	if keycode.ModeSupported(analogsdk.VirtualKey) {
		assert.Equal(t, analogsdk.Ok, kind)
		assert.Equal(t, analogsdk.VirtualKey, r.KeycodeMode())
	} else {
		assert.Equal(t, analogsdk.NotAvailable, kind)
		assert.Equal(t, analogsdk.HID, r.KeycodeMode())
	}
}

func TestSetKeycodeModeAcceptsHIDAndScanCode1(t *testing.T) {
	var r = newTestRuntime()

	assert.Equal(t, analogsdk.Ok, r.SetKeycodeMode(analogsdk.ScanCode1))
	assert.Equal(t, analogsdk.ScanCode1, r.KeycodeMode())

	assert.Equal(t, analogsdk.Ok, r.SetKeycodeMode(analogsdk.HID))
	assert.Equal(t, analogsdk.HID, r.KeycodeMode())
}

func TestReadsBeforeInitialiseDoNotPanic(t *testing.T) {
	var r = newTestRuntime()

	assert.Nil(t, r.Plugins())

	var result = r.ConnectedDevices()
	_, ok := result.Get()
	assert.False(t, ok)
}
