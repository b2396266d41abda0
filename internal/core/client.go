package core

import (
	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/pluginapi"
	"go.uber.org/zap"
)

// Client is the typed, Go-native wrapper promised in SPEC_FULL.md §12:
// a thin layer over Runtime exposing the same operations through plain
// (value, error) returns instead of analogsdk.Result, the same way
// wooting-analog-wrapper wraps wooting-analog-sdk's FFI for downstream
// consumers that would rather not unwrap a Result by hand. Unlike
// wooting-analog-wrapper, Client calls straight into the in-process Go
// API: no cgo build step, no shared library to load, useful for
// exercising C5/C6 from ordinary Go code such as cmd/analogsdk-demo or a
// test.
type Client struct {
	rt *Runtime
}

// NewClient constructs a Client around a fresh, uninitialised Runtime.
func NewClient(log *zap.SugaredLogger) *Client {
	return &Client{rt: New(log)}
}

// Initialise loads every plugin under dirs and returns the total device
// count.
func (c *Client) Initialise(dirs []string, nested bool) (int, error) {
	return c.rt.Initialise(dirs, nested).Unwrap()
}

// Close uninitialises the wrapped Runtime. It is safe to call more than
// once.
func (c *Client) Close() {
	c.rt.Uninitialise()
}

// IsInitialised reports whether Initialise has succeeded and Close has
// not since been called.
func (c *Client) IsInitialised() bool {
	return c.rt.IsInitialised()
}

// SetKeycodeMode changes the active keycode namespace for subsequent
// reads.
func (c *Client) SetKeycodeMode(mode analogsdk.KeycodeMode) error {
	var kind = c.rt.SetKeycodeMode(mode)
	if kind == analogsdk.Ok {
		return nil
	}

	return kind
}

// KeycodeMode returns the active keycode namespace.
func (c *Client) KeycodeMode() analogsdk.KeycodeMode {
	return c.rt.KeycodeMode()
}

// ReadAnalog reads a single key's depression value across every
// connected device, interpreted in the active keycode mode.
func (c *Client) ReadAnalog(code uint16) (float32, error) {
	return c.rt.ReadAnalog(code, analogsdk.AnyDevice).Unwrap()
}

// ReadAnalogDevice is ReadAnalog restricted to a single device.
func (c *Client) ReadAnalogDevice(code uint16, deviceID analogsdk.DeviceID) (float32, error) {
	return c.rt.ReadAnalog(code, deviceID).Unwrap()
}

// ReadFullBuffer reads up to maxItems (code, analog) pairs across every
// connected device, interpreted in the active keycode mode.
func (c *Client) ReadFullBuffer(maxItems uint) (map[uint16]float32, error) {
	return c.rt.ReadFullBuffer(maxItems, analogsdk.AnyDevice).Unwrap()
}

// ReadFullBufferDevice is ReadFullBuffer restricted to a single device.
func (c *Client) ReadFullBufferDevice(maxItems uint, deviceID analogsdk.DeviceID) (map[uint16]float32, error) {
	return c.rt.ReadFullBuffer(maxItems, deviceID).Unwrap()
}

// ConnectedDevices lists every device currently reported by any loaded
// plugin.
func (c *Client) ConnectedDevices() ([]analogsdk.DeviceInfo, error) {
	return c.rt.ConnectedDevices().Unwrap()
}

// OnDeviceEvent installs cb as the consumer's device event callback.
func (c *Client) OnDeviceEvent(cb analogsdk.DeviceEventCallback) {
	c.rt.SetDeviceEventCallback(cb)
}

// ClearDeviceEvent removes the consumer's device event callback.
func (c *Client) ClearDeviceEvent() {
	c.rt.ClearDeviceEventCallback()
}

// Plugins exposes the underlying plugin set.
func (c *Client) Plugins() []pluginapi.Plugin {
	return c.rt.Plugins()
}
