package keycode

// hidToScanCodeTable is the HID Usage ID -> Scan-Code Set 1 bijection.
// Values are taken from the USB HID Keyboard/Keypad usage page mapped
// against the IBM PC/AT Set 1 scancodes; 0xE0-prefixed entries are the
// extended (two-byte) scancodes.
var hidToScanCodeTable = map[uint16]uint16{
	0x04: 0x001e, // A
	0x05: 0x0030, // B
	0x06: 0x002e, // C
	0x07: 0x0020, // D
	0x08: 0x0012, // E
	0x09: 0x0021, // F
	0x0a: 0x0022, // G
	0x0b: 0x0023, // H
	0x0c: 0x0017, // I
	0x0d: 0x0024, // J
	0x0e: 0x0025, // K
	0x0f: 0x0026, // L
	0x10: 0x0032, // M
	0x11: 0x0031, // N
	0x12: 0x0018, // O
	0x13: 0x0019, // P
	0x14: 0x0010, // Q
	0x15: 0x0013, // R
	0x16: 0x001f, // S
	0x17: 0x0014, // T
	0x18: 0x0016, // U
	0x19: 0x002f, // V
	0x1a: 0x0011, // W
	0x1b: 0x002d, // X
	0x1c: 0x0015, // Y
	0x1d: 0x002c, // Z
	0x1e: 0x0002, // DIGIT1
	0x1f: 0x0003, // DIGIT2
	0x20: 0x0004, // DIGIT3
	0x21: 0x0005, // DIGIT4
	0x22: 0x0006, // DIGIT5
	0x23: 0x0007, // DIGIT6
	0x24: 0x0008, // DIGIT7
	0x25: 0x0009, // DIGIT8
	0x26: 0x000a, // DIGIT9
	0x27: 0x000b, // DIGIT0
	0x28: 0x001c, // ENTER
	0x29: 0x0001, // ESCAPE
	0x2a: 0x000e, // BACKSPACE
	0x2b: 0x000f, // TAB
	0x2c: 0x0039, // SPACE
	0x2d: 0x000c, // MINUS
	0x2e: 0x000d, // EQUAL
	0x2f: 0x001a, // BRACKET_LEFT
	0x30: 0x001b, // BRACKET_RIGHT
	0x31: 0x002b, // BACKSLASH
	0x33: 0x0027, // SEMICOLON
	0x34: 0x0028, // QUOTE
	0x35: 0x0029, // BACKQUOTE
	0x36: 0x0033, // COMMA
	0x37: 0x0034, // PERIOD
	0x38: 0x0035, // SLASH
	0x39: 0x003a, // CAPS_LOCK
	0x3a: 0x003b, // F1
	0x3b: 0x003c, // F2
	0x3c: 0x003d, // F3
	0x3d: 0x003e, // F4
	0x3e: 0x003f, // F5
	0x3f: 0x0040, // F6
	0x40: 0x0041, // F7
	0x41: 0x0042, // F8
	0x42: 0x0043, // F9
	0x43: 0x0044, // F10
	0x44: 0x0057, // F11
	0x45: 0x0058, // F12
	0x46: 0xe037, // PRINT_SCREEN
	0x47: 0x0046, // SCROLL_LOCK
	0x48: 0x0045, // PAUSE
	0x49: 0xe052, // INSERT
	0x4a: 0xe047, // HOME
	0x4b: 0xe049, // PAGE_UP
	0x4c: 0xe053, // DEL
	0x4d: 0xe04f, // END
	0x4e: 0xe051, // PAGE_DOWN
	0x4f: 0xe04d, // ARROW_RIGHT
	0x50: 0xe04b, // ARROW_LEFT
	0x51: 0xe050, // ARROW_DOWN
	0x52: 0xe048, // ARROW_UP
	0x53: 0xe045, // NUM_LOCK
	0x54: 0xe035, // NUMPAD_DIVIDE
	0x55: 0x0037, // NUMPAD_MULTIPLY
	0x56: 0x004a, // NUMPAD_SUBTRACT
	0x57: 0x004e, // NUMPAD_ADD
	0x58: 0xe01c, // NUMPAD_ENTER
	0x59: 0x004f, // NUMPAD1
	0x5a: 0x0050, // NUMPAD2
	0x5b: 0x0051, // NUMPAD3
	0x5c: 0x004b, // NUMPAD4
	0x5d: 0x004c, // NUMPAD5
	0x5e: 0x004d, // NUMPAD6
	0x5f: 0x0047, // NUMPAD7
	0x60: 0x0048, // NUMPAD8
	0x61: 0x0049, // NUMPAD9
	0x62: 0x0052, // NUMPAD0
	0x63: 0x0053, // NUMPAD_DECIMAL
	0x64: 0x0056, // INTL_BACKSLASH
	0x65: 0xe05d, // CONTEXT_MENU
	0x66: 0xe05e, // POWER
	0x67: 0x0059, // NUMPAD_EQUAL
	0x68: 0x0064, // F13
	0x69: 0x0065, // F14
	0x6a: 0x0066, // F15
	0x6b: 0x0067, // F16
	0x6c: 0x0068, // F17
	0x6d: 0x0069, // F18
	0x6e: 0x006a, // F19
	0x6f: 0x006b, // F20
	0x70: 0x006c, // F21
	0x71: 0x006d, // F22
	0x72: 0x006e, // F23
	0x73: 0x0076, // F24
	0x75: 0xe03b, // HELP
	0x7a: 0xe008, // UNDO
	0x7b: 0xe017, // CUT
	0x7c: 0xe018, // COPY
	0x7d: 0xe00a, // PASTE
	0x7f: 0xe020, // VOLUME_MUTE
	0x80: 0xe030, // VOLUME_UP
	0x81: 0xe02e, // VOLUME_DOWN
	0x85: 0x007e, // NUMPAD_COMMA
	0x87: 0x0073, // INTL_RO
	0x88: 0x0070, // KANA_MODE
	0x89: 0x007d, // INTL_YEN
	0x8a: 0x0079, // CONVERT
	0x8b: 0x007b, // NON_CONVERT
	0x90: 0x0072, // LANG1
	0x91: 0x0071, // LANG2
	0x92: 0x0078, // LANG3
	0x93: 0x0077, // LANG4
	0xe0: 0x001d, // CONTROL_LEFT
	0xe1: 0x002a, // SHIFT_LEFT
	0xe2: 0x0038, // ALT_LEFT
	0xe3: 0xe05b, // META_LEFT
	0xe4: 0xe01d, // CONTROL_RIGHT
	0xe5: 0x0036, // SHIFT_RIGHT
	0xe6: 0xe038, // ALT_RIGHT
	0xe7: 0xe05c, // META_RIGHT
}

// scanCodeToHIDTable is the inverse of hidToScanCodeTable, built once at
// init time so the two directions can never drift out of sync.
var scanCodeToHIDTable = invert(hidToScanCodeTable)

// vkOverrideToSC and scOverrideToVK are the numpad disambiguation
// override table: on Windows, MapVirtualKey collapses numpad Virtual-Key
// codes onto the same scancodes as the top-row digits, so these pairs are
// special-cased ahead of the general VK<->SC1 chain.
var vkOverrideToSC = map[uint16]uint16{
	0x60: 0x0052, // VK_NUMPAD0
	0x61: 0x004f, // VK_NUMPAD1
	0x62: 0x0050, // VK_NUMPAD2
	0x63: 0x0051, // VK_NUMPAD3
	0x64: 0x004b, // VK_NUMPAD4
	0x65: 0x004c, // VK_NUMPAD5
	0x66: 0x004d, // VK_NUMPAD6
	0x67: 0x0047, // VK_NUMPAD7
	0x68: 0x0048, // VK_NUMPAD8
	0x69: 0x0049, // VK_NUMPAD9
	0x6e: 0x0053, // VK_DECIMAL
}

var scOverrideToVK = invert(vkOverrideToSC)

func invert(m map[uint16]uint16) map[uint16]uint16 {
	var out = make(map[uint16]uint16, len(m))

	for k, v := range m {
		out[v] = k
	}

	return out
}
