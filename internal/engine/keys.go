package engine

import (
	"fmt"
	"strings"
)

// KeyCode is a browser-style key code.
type KeyCode int

var keyCodes = map[string]KeyCode{
	"BACKSPACE": 8,
	"TAB":       9,
	"ENTER":     13,
	"SHIFT":     16,
	"CTRL":      17,
	"ALT":       18,
	"PAUSE":     19,
	"CAPS_LOCK": 20,
	"ESC":       27,
	"SPACE":     32,
	"PAGE_UP":   33,
	"PAGE_DOWN": 34,
	"END":       35,
	"HOME":      36,
	"LEFT":      37,
	"UP":        38,
	"RIGHT":     39,
	"DOWN":      40,
	"INSERT":    45,
	"DELETE":    46,
	"ZERO":      48,
	"ONE":       49,
	"TWO":       50,
	"THREE":     51,
	"FOUR":      52,
	"FIVE":      53,
	"SIX":       54,
	"SEVEN":     55,
	"EIGHT":     56,
	"NINE":      57,
	"F1":        112,
	"F2":        113,
	"F3":        114,
	"F4":        115,
	"F5":        116,
	"F6":        117,
	"F7":        118,
	"F8":        119,
	"F9":        120,
	"F10":       121,
	"F11":       122,
	"F12":       123,
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyCodes[string(c)] = KeyCode(c)
	}
}

// LookupKey resolves a symbolic key name such as "SPACE" or "w".
func LookupKey(name string) (KeyCode, error) {
	code, ok := keyCodes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return code, nil
}
