// Package wininput samples key state with GetAsyncKeyState and injects
// pointer events with SendInput. Bindings use the same canonical
// KEY_*/BTN_* names as the Linux backends; this table carries the
// mapping to Windows virtual-key codes.
package wininput

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodeBTNLeft   uint16 = 0x110
	CodeBTNRight  uint16 = 0x111
	CodeBTNMiddle uint16 = 0x112
	CodeBTNSide   uint16 = 0x113
	CodeBTNExtra  uint16 = 0x114
)

type codeEntry struct {
	code uint16
	name string
	vk   uint32
}

// Canonical code is the Linux event code for the key, vk the Windows
// virtual-key code.
var codeTable = []codeEntry{
	{CodeBTNLeft, "BTN_LEFT", 0x01},
	{CodeBTNRight, "BTN_RIGHT", 0x02},
	{CodeBTNMiddle, "BTN_MIDDLE", 0x04},
	{CodeBTNSide, "BTN_SIDE", 0x05},
	{CodeBTNExtra, "BTN_EXTRA", 0x06},

	{1, "KEY_ESC", 0x1B},
	{2, "KEY_1", 0x31},
	{3, "KEY_2", 0x32},
	{4, "KEY_3", 0x33},
	{5, "KEY_4", 0x34},
	{6, "KEY_5", 0x35},
	{7, "KEY_6", 0x36},
	{8, "KEY_7", 0x37},
	{9, "KEY_8", 0x38},
	{10, "KEY_9", 0x39},
	{11, "KEY_0", 0x30},
	{12, "KEY_MINUS", 0xBD},
	{13, "KEY_EQUAL", 0xBB},
	{14, "KEY_BACKSPACE", 0x08},
	{15, "KEY_TAB", 0x09},
	{16, "KEY_Q", 0x51},
	{17, "KEY_W", 0x57},
	{18, "KEY_E", 0x45},
	{19, "KEY_R", 0x52},
	{20, "KEY_T", 0x54},
	{21, "KEY_Y", 0x59},
	{22, "KEY_U", 0x55},
	{23, "KEY_I", 0x49},
	{24, "KEY_O", 0x4F},
	{25, "KEY_P", 0x50},
	{26, "KEY_LEFTBRACE", 0xDB},
	{27, "KEY_RIGHTBRACE", 0xDD},
	{28, "KEY_ENTER", 0x0D},
	{29, "KEY_LEFTCTRL", 0xA2},
	{30, "KEY_A", 0x41},
	{31, "KEY_S", 0x53},
	{32, "KEY_D", 0x44},
	{33, "KEY_F", 0x46},
	{34, "KEY_G", 0x47},
	{35, "KEY_H", 0x48},
	{36, "KEY_J", 0x4A},
	{37, "KEY_K", 0x4B},
	{38, "KEY_L", 0x4C},
	{39, "KEY_SEMICOLON", 0xBA},
	{40, "KEY_APOSTROPHE", 0xDE},
	{41, "KEY_GRAVE", 0xC0},
	{42, "KEY_LEFTSHIFT", 0xA0},
	{43, "KEY_BACKSLASH", 0xDC},
	{44, "KEY_Z", 0x5A},
	{45, "KEY_X", 0x58},
	{46, "KEY_C", 0x43},
	{47, "KEY_V", 0x56},
	{48, "KEY_B", 0x42},
	{49, "KEY_N", 0x4E},
	{50, "KEY_M", 0x4D},
	{51, "KEY_COMMA", 0xBC},
	{52, "KEY_DOT", 0xBE},
	{53, "KEY_SLASH", 0xBF},
	{54, "KEY_RIGHTSHIFT", 0xA1},
	{55, "KEY_KPASTERISK", 0x6A},
	{56, "KEY_LEFTALT", 0xA4},
	{57, "KEY_SPACE", 0x20},
	{58, "KEY_CAPSLOCK", 0x14},
	{59, "KEY_F1", 0x70},
	{60, "KEY_F2", 0x71},
	{61, "KEY_F3", 0x72},
	{62, "KEY_F4", 0x73},
	{63, "KEY_F5", 0x74},
	{64, "KEY_F6", 0x75},
	{65, "KEY_F7", 0x76},
	{66, "KEY_F8", 0x77},
	{67, "KEY_F9", 0x78},
	{68, "KEY_F10", 0x79},
	{69, "KEY_NUMLOCK", 0x90},
	{70, "KEY_SCROLLLOCK", 0x91},
	{71, "KEY_KP7", 0x67},
	{72, "KEY_KP8", 0x68},
	{73, "KEY_KP9", 0x69},
	{74, "KEY_KPMINUS", 0x6D},
	{75, "KEY_KP4", 0x64},
	{76, "KEY_KP5", 0x65},
	{77, "KEY_KP6", 0x66},
	{78, "KEY_KPPLUS", 0x6B},
	{79, "KEY_KP1", 0x61},
	{80, "KEY_KP2", 0x62},
	{81, "KEY_KP3", 0x63},
	{82, "KEY_KP0", 0x60},
	{83, "KEY_KPDOT", 0x6E},
	{87, "KEY_F11", 0x7A},
	{88, "KEY_F12", 0x7B},
	{96, "KEY_KPENTER", 0x0D},
	{97, "KEY_RIGHTCTRL", 0xA3},
	{98, "KEY_KPSLASH", 0x6F},
	{100, "KEY_RIGHTALT", 0xA5},
	{102, "KEY_HOME", 0x24},
	{103, "KEY_UP", 0x26},
	{104, "KEY_PAGEUP", 0x21},
	{105, "KEY_LEFT", 0x25},
	{106, "KEY_RIGHT", 0x27},
	{107, "KEY_END", 0x23},
	{108, "KEY_DOWN", 0x28},
	{109, "KEY_PAGEDOWN", 0x22},
	{110, "KEY_INSERT", 0x2D},
	{111, "KEY_DELETE", 0x2E},
	{119, "KEY_PAUSE", 0x13},
	{125, "KEY_LEFTMETA", 0x5B},
	{126, "KEY_RIGHTMETA", 0x5C},
	{139, "KEY_MENU", 0x5D},
}

var nameAliases = map[string]string{
	"BTN_BACK":    "BTN_SIDE",
	"BTN_FORWARD": "BTN_EXTRA",
}

var (
	nameToCode map[string]uint16
	codeToName map[uint16]string
	codeToVK   map[uint16]uint32
)

func init() {
	nameToCode = make(map[string]uint16, len(codeTable))
	codeToName = make(map[uint16]string, len(codeTable))
	codeToVK = make(map[uint16]uint32, len(codeTable))
	for _, entry := range codeTable {
		nameToCode[entry.name] = entry.code
		codeToName[entry.code] = entry.name
		codeToVK[entry.code] = entry.vk
	}
}

func ParseCode(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("key binding is empty")
	}
	if canonical, ok := nameAliases[raw]; ok {
		raw = canonical
	}
	if code, ok := nameToCode[raw]; ok {
		return code, nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q: use names like KEY_W/BTN_SIDE or numeric code", value)
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

func CodeToVK(code uint16) (uint32, bool) {
	vk, ok := codeToVK[code]
	return vk, ok
}
