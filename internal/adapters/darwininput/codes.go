// Package darwininput samples key state from a global event tap and
// injects pointer events with robotgo. Bindings use the same canonical
// KEY_*/BTN_* names as the other backends; this table carries the
// mapping to macOS virtual keycodes.
package darwininput

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodeBTNLeft   uint16 = 0x110
	CodeBTNRight  uint16 = 0x111
	CodeBTNMiddle uint16 = 0x112
)

type codeEntry struct {
	code uint16
	name string
	mac  uint16
}

// Canonical code is the Linux event code for the key, mac the kVK
// virtual keycode reported by the event tap.
var codeTable = []codeEntry{
	{1, "KEY_ESC", 0x35},
	{2, "KEY_1", 0x12},
	{3, "KEY_2", 0x13},
	{4, "KEY_3", 0x14},
	{5, "KEY_4", 0x15},
	{6, "KEY_5", 0x17},
	{7, "KEY_6", 0x16},
	{8, "KEY_7", 0x1A},
	{9, "KEY_8", 0x1C},
	{10, "KEY_9", 0x19},
	{11, "KEY_0", 0x1D},
	{12, "KEY_MINUS", 0x1B},
	{13, "KEY_EQUAL", 0x18},
	{14, "KEY_BACKSPACE", 0x33},
	{15, "KEY_TAB", 0x30},
	{16, "KEY_Q", 0x0C},
	{17, "KEY_W", 0x0D},
	{18, "KEY_E", 0x0E},
	{19, "KEY_R", 0x0F},
	{20, "KEY_T", 0x11},
	{21, "KEY_Y", 0x10},
	{22, "KEY_U", 0x20},
	{23, "KEY_I", 0x22},
	{24, "KEY_O", 0x1F},
	{25, "KEY_P", 0x23},
	{26, "KEY_LEFTBRACE", 0x21},
	{27, "KEY_RIGHTBRACE", 0x1E},
	{28, "KEY_ENTER", 0x24},
	{29, "KEY_LEFTCTRL", 0x3B},
	{30, "KEY_A", 0x00},
	{31, "KEY_S", 0x01},
	{32, "KEY_D", 0x02},
	{33, "KEY_F", 0x03},
	{34, "KEY_G", 0x05},
	{35, "KEY_H", 0x04},
	{36, "KEY_J", 0x26},
	{37, "KEY_K", 0x28},
	{38, "KEY_L", 0x25},
	{39, "KEY_SEMICOLON", 0x29},
	{40, "KEY_APOSTROPHE", 0x27},
	{41, "KEY_GRAVE", 0x32},
	{42, "KEY_LEFTSHIFT", 0x38},
	{43, "KEY_BACKSLASH", 0x2A},
	{44, "KEY_Z", 0x06},
	{45, "KEY_X", 0x07},
	{46, "KEY_C", 0x08},
	{47, "KEY_V", 0x09},
	{48, "KEY_B", 0x0B},
	{49, "KEY_N", 0x2D},
	{50, "KEY_M", 0x2E},
	{51, "KEY_COMMA", 0x2B},
	{52, "KEY_DOT", 0x2F},
	{53, "KEY_SLASH", 0x2C},
	{54, "KEY_RIGHTSHIFT", 0x3C},
	{55, "KEY_KPASTERISK", 0x43},
	{56, "KEY_LEFTALT", 0x3A},
	{57, "KEY_SPACE", 0x31},
	{58, "KEY_CAPSLOCK", 0x39},
	{59, "KEY_F1", 0x7A},
	{60, "KEY_F2", 0x78},
	{61, "KEY_F3", 0x63},
	{62, "KEY_F4", 0x76},
	{63, "KEY_F5", 0x60},
	{64, "KEY_F6", 0x61},
	{65, "KEY_F7", 0x62},
	{66, "KEY_F8", 0x64},
	{67, "KEY_F9", 0x65},
	{68, "KEY_F10", 0x6D},
	{71, "KEY_KP7", 0x59},
	{72, "KEY_KP8", 0x5B},
	{73, "KEY_KP9", 0x5C},
	{74, "KEY_KPMINUS", 0x4E},
	{75, "KEY_KP4", 0x56},
	{76, "KEY_KP5", 0x57},
	{77, "KEY_KP6", 0x58},
	{78, "KEY_KPPLUS", 0x45},
	{79, "KEY_KP1", 0x53},
	{80, "KEY_KP2", 0x54},
	{81, "KEY_KP3", 0x55},
	{82, "KEY_KP0", 0x52},
	{83, "KEY_KPDOT", 0x41},
	{87, "KEY_F11", 0x67},
	{88, "KEY_F12", 0x6F},
	{96, "KEY_KPENTER", 0x4C},
	{97, "KEY_RIGHTCTRL", 0x3E},
	{98, "KEY_KPSLASH", 0x4B},
	{100, "KEY_RIGHTALT", 0x3D},
	{102, "KEY_HOME", 0x73},
	{103, "KEY_UP", 0x7E},
	{104, "KEY_PAGEUP", 0x74},
	{105, "KEY_LEFT", 0x7B},
	{106, "KEY_RIGHT", 0x7C},
	{107, "KEY_END", 0x77},
	{108, "KEY_DOWN", 0x7D},
	{109, "KEY_PAGEDOWN", 0x79},
	{111, "KEY_DELETE", 0x75},
	{125, "KEY_LEFTMETA", 0x37},
	{126, "KEY_RIGHTMETA", 0x36},
}

var buttonNames = map[string]uint16{
	"BTN_LEFT":   CodeBTNLeft,
	"BTN_RIGHT":  CodeBTNRight,
	"BTN_MIDDLE": CodeBTNMiddle,
}

var (
	nameToCode map[string]uint16
	codeToName map[uint16]string
	codeToMac  map[uint16]uint16
	macToCode  map[uint16]uint16
)

func init() {
	nameToCode = make(map[string]uint16, len(codeTable)+len(buttonNames))
	codeToName = make(map[uint16]string, len(codeTable)+len(buttonNames))
	codeToMac = make(map[uint16]uint16, len(codeTable))
	macToCode = make(map[uint16]uint16, len(codeTable))
	for _, entry := range codeTable {
		nameToCode[entry.name] = entry.code
		codeToName[entry.code] = entry.name
		codeToMac[entry.code] = entry.mac
		macToCode[entry.mac] = entry.code
	}
	for name, code := range buttonNames {
		nameToCode[name] = code
		codeToName[code] = name
	}
}

func ParseCode(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("key binding is empty")
	}
	if code, ok := nameToCode[raw]; ok {
		return code, nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q: use names like KEY_W/BTN_LEFT or numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("key code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

func FormatCodeName(code uint16) string {
	if name, ok := codeToName[code]; ok {
		return name
	}
	return strconv.Itoa(int(code))
}

// CodeFromMac maps an event tap keycode back to the canonical code.
func CodeFromMac(mac uint16) (uint16, bool) {
	code, ok := macToCode[mac]
	return code, ok
}
