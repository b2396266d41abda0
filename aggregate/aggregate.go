// Package aggregate implements the fan-out and merge rules of the
// aggregation core (C6): single-key and whole-buffer reads dispatched
// across every loaded plugin, merged under the "any device" vs
// "specific device" rule, and keycode-translated via package keycode.
package aggregate

import (
	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/keycode"
	"github.com/andrieee44/analogsdk/pluginapi"
	"go.uber.org/zap"
)

// Core fans single-key and whole-buffer reads out across a set of
// plugins. It holds no state of its own beyond the logger: the plugin
// list and keycode mode are supplied by the caller on every call, since
// both can change between calls (hot-plug, set_keycode_mode).
type Core struct {
	log *zap.SugaredLogger
}

// NewCore returns a Core that logs dropped translations through log.
func NewCore(log *zap.SugaredLogger) *Core {
	return &Core{log: log}
}

// ReadAnalog implements the single-key read path of spec.md §4.6.
func (c *Core) ReadAnalog(plugins []pluginapi.Plugin, mode analogsdk.KeycodeMode, code uint16, deviceID analogsdk.DeviceID) analogsdk.Result[float32] {
	if !keycode.ModeSupported(mode) {
		return analogsdk.ErrResult[float32](analogsdk.NotAvailable)
	}

	hidCode, ok := keycode.CodeToHID(code, mode)
	if !ok {
		return analogsdk.ErrResult[float32](analogsdk.NoMapping)
	}

	var (
		value     float32 = -1.0
		lastError         = analogsdk.Ok
	)

	for _, p := range plugins {
		var r = p.ReadAnalog(hidCode, deviceID)

		v, ok := r.Get()
		if ok {
			if v > value {
				value = v
			}

			if deviceID != analogsdk.AnyDevice {
				break
			}

			continue
		}

		lastError = r.Err()
	}

	if value < 0.0 {
		return analogsdk.ErrResult[float32](lastErrorOrNoDevices(lastError))
	}

	return analogsdk.OkResult(value)
}

// ReadFullBuffer implements the whole-buffer read path of spec.md §4.6.
func (c *Core) ReadFullBuffer(plugins []pluginapi.Plugin, mode analogsdk.KeycodeMode, maxItems uint, deviceID analogsdk.DeviceID) analogsdk.Result[map[uint16]float32] {
	if !keycode.ModeSupported(mode) {
		return analogsdk.ErrResult[map[uint16]float32](analogsdk.NotAvailable)
	}

	var (
		acc        = make(map[uint16]float32)
		anySuccess bool
		lastError  = analogsdk.Ok
	)

	for _, p := range plugins {
		if uint(len(acc)) >= maxItems {
			break
		}

		var remaining = maxItems - uint(len(acc))

		var r = p.ReadFullBuffer(remaining, deviceID)

		pairs, ok := r.Get()
		if !ok {
			lastError = r.Err()

			continue
		}

		for hidCode, analog := range pairs {
			modeCode, ok := keycode.HIDToCode(hidCode, mode)
			if !ok {
				c.log.Debugw("aggregate: dropping unmappable hid code", "hid", hidCode, "mode", mode)

				continue
			}

			if deviceID == analogsdk.AnyDevice {
				if existing, present := acc[modeCode]; !present || analog > existing {
					acc[modeCode] = analog
				}
			} else {
				acc[modeCode] = analog
			}
		}

		anySuccess = true

		if deviceID != analogsdk.AnyDevice {
			break
		}
	}

	if !anySuccess {
		return analogsdk.ErrResult[map[uint16]float32](lastErrorOrNoDevices(lastError))
	}

	return analogsdk.OkResult(acc)
}

func lastErrorOrNoDevices(kind analogsdk.ErrorKind) analogsdk.ErrorKind {
	if kind == analogsdk.Ok {
		return analogsdk.NoDevices
	}

	return kind
}
