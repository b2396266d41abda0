package main

import (
	"github.com/andrieee44/analogsdk"
)

// knownModel names one supported device model: the vendor/product pair
// that identifies it, the HID usage page/usage the analog report
// interface is found on, and the scaling this model's 8-bit sample
// range needs to reach [0.0, 1.0].
type knownModel struct {
	name       string
	vendorID   uint16
	productID  uint16
	usagePage  uint16
	usage      uint16
	deviceType analogsdk.DeviceType
	scale      float32
}

// knownModels is the table of device identifiers and matching
// predicates this reference plugin recognises, per spec.md §4.8. Real
// vendor/product pairs are deliberately not hardcoded to any single
// shipping product; these are representative placeholder identifiers
// for a reference analog keyboard and a companion analog keypad.
var knownModels = []knownModel{
	{
		name:       "Reference Analog Keyboard",
		vendorID:   0x3434,
		productID:  0x0101,
		usagePage:  0xFF60,
		usage:      0x61,
		deviceType: analogsdk.Keyboard,
		scale:      1.0 / 255.0,
	},
	{
		name:       "Reference Analog Keypad",
		vendorID:   0x3434,
		productID:  0x0102,
		usagePage:  0xFF60,
		usage:      0x61,
		deviceType: analogsdk.Keypad,
		scale:      1.0 / 200.0,
	},
}

func matchModel(vendorID, productID, usagePage, usage uint16) (knownModel, bool) {
	for _, m := range knownModels {
		if m.vendorID == vendorID && m.productID == productID && m.usagePage == usagePage && m.usage == usage {
			return m, true
		}
	}

	return knownModel{}, false
}
