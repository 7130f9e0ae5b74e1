//go:build linux

package x11input

import (
	"strings"

	"mousesim/internal/adapters/evdevinput"

	"github.com/BurntSushi/xgb/xproto"
)

// Canonical KEY_* tokens whose X keysym name is not derivable from the
// token itself. Letters, digits, F-keys and the keypad are handled
// algorithmically below.
var keyTokenToXName = map[string]string{
	"ESC":        "Escape",
	"ENTER":      "Return",
	"TAB":        "Tab",
	"SPACE":      "space",
	"BACKSPACE":  "BackSpace",
	"LEFTSHIFT":  "Shift_L",
	"RIGHTSHIFT": "Shift_R",
	"LEFTCTRL":   "Control_L",
	"RIGHTCTRL":  "Control_R",
	"LEFTALT":    "Alt_L",
	"RIGHTALT":   "Alt_R",
	"LEFTMETA":   "Super_L",
	"RIGHTMETA":  "Super_R",
	"CAPSLOCK":   "Caps_Lock",
	"NUMLOCK":    "Num_Lock",
	"SCROLLLOCK": "Scroll_Lock",
	"PAGEUP":     "Page_Up",
	"PAGEDOWN":   "Page_Down",
	"INSERT":     "Insert",
	"DELETE":     "Delete",
	"HOME":       "Home",
	"END":        "End",
	"UP":         "Up",
	"DOWN":       "Down",
	"LEFT":       "Left",
	"RIGHT":      "Right",
	"MENU":       "Menu",
	"PAUSE":      "Pause",
	"MINUS":      "minus",
	"EQUAL":      "equal",
	"LEFTBRACE":  "bracketleft",
	"RIGHTBRACE": "bracketright",
	"SEMICOLON":  "semicolon",
	"APOSTROPHE": "apostrophe",
	"GRAVE":      "grave",
	"BACKSLASH":  "backslash",
	"COMMA":      "comma",
	"DOT":        "period",
	"SLASH":      "slash",
}

var keypadTokenToXName = map[string]string{
	"PLUS":     "KP_Add",
	"MINUS":    "KP_Subtract",
	"ASTERISK": "KP_Multiply",
	"SLASH":    "KP_Divide",
	"DOT":      "KP_Decimal",
	"ENTER":    "KP_Enter",
}

// codeToXKeyName maps a canonical key code to the X keysym name
// keybind resolves keycodes from.
func codeToXKeyName(code uint16) (string, bool) {
	name := evdevinput.FormatCodeName(code)
	if !strings.HasPrefix(name, "KEY_") {
		return "", false
	}
	token := strings.TrimPrefix(name, "KEY_")

	if xName, ok := keyTokenToXName[token]; ok {
		return xName, true
	}
	if len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z' {
		return strings.ToLower(token), true
	}
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return token, true
	}
	if strings.HasPrefix(token, "F") && isDigits(token[1:]) {
		return token, true
	}
	if suffix, ok := strings.CutPrefix(token, "KP"); ok {
		if xName, ok := keypadTokenToXName[suffix]; ok {
			return xName, true
		}
		if len(suffix) == 1 && suffix[0] >= '0' && suffix[0] <= '9' {
			return "KP_" + suffix, true
		}
	}
	return "", false
}

// codeToXButton maps canonical BTN_* codes to X11 pointer buttons.
func codeToXButton(code uint16) (xproto.Button, bool) {
	switch evdevinput.FormatCodeName(code) {
	case "BTN_LEFT":
		return xproto.Button(xproto.ButtonIndex1), true
	case "BTN_MIDDLE":
		return xproto.Button(xproto.ButtonIndex2), true
	case "BTN_RIGHT":
		return xproto.Button(xproto.ButtonIndex3), true
	case "BTN_SIDE", "BTN_BACK":
		return xproto.Button(8), true
	case "BTN_EXTRA", "BTN_FORWARD":
		return xproto.Button(9), true
	default:
		return 0, false
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
