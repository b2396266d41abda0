package keycode_test

import (
	"testing"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/keycode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCode1RoundTrip(t *testing.T) {
	t.Parallel()

	for hid := uint16(0); hid < 0x100; hid++ {
		sc, ok := keycode.HIDToCode(hid, analogsdk.ScanCode1)
		if !ok {
			continue
		}

		back, ok := keycode.CodeToHID(sc, analogsdk.ScanCode1)
		require.Truef(t, ok, "scancode 0x%x has no inverse", sc)
		assert.Equalf(t, hid, back, "hid 0x%x -> sc 0x%x -> hid 0x%x", hid, sc, back)
	}
}

func TestCustomRangePassesThroughEveryMode(t *testing.T) {
	t.Parallel()

	var modes = []analogsdk.KeycodeMode{
		analogsdk.HID, analogsdk.ScanCode1, analogsdk.VirtualKey, analogsdk.VirtualKeyTranslate,
	}

	for _, mode := range modes {
		for _, code := range []uint16{0x200, 0x2ff, 0xffff, 0x1234} {
			hid, ok := keycode.CodeToHID(code, mode)
			require.True(t, ok)
			assert.Equal(t, code, hid)

			back, ok := keycode.HIDToCode(code, mode)
			require.True(t, ok)
			assert.Equal(t, code, back)
		}
	}
}

func TestReservedHighByteInvalidOutsideScanCode1(t *testing.T) {
	t.Parallel()

	var modes = []analogsdk.KeycodeMode{analogsdk.HID, analogsdk.VirtualKey, analogsdk.VirtualKeyTranslate}

	for _, mode := range modes {
		for _, code := range []uint16{0x0100, 0x01ff, 0xe000, 0xe0ff} {
			_, ok := keycode.CodeToHID(code, mode)
			assert.Falsef(t, ok, "code 0x%x should be invalid in mode %v", code, mode)

			_, ok = keycode.HIDToCode(code, mode)
			assert.Falsef(t, ok, "code 0x%x should be invalid in mode %v", code, mode)
		}
	}
}

func TestModeSupportedOnNonWindows(t *testing.T) {
	t.Parallel()

	if keycode.ModeSupported(analogsdk.VirtualKey) {
		t.Skip("running on a host where VirtualKey is supported")
	}

	assert.False(t, keycode.ModeSupported(analogsdk.VirtualKey))
	assert.False(t, keycode.ModeSupported(analogsdk.VirtualKeyTranslate))
	assert.True(t, keycode.ModeSupported(analogsdk.HID))
	assert.True(t, keycode.ModeSupported(analogsdk.ScanCode1))
}
