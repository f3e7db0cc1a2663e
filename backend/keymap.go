package backend

/* US-QWERTY evdev keycode translation. wl_keyboard delivers raw Linux
input-event-codes (linux/input-event-codes.h), not xkb keysyms, so there is
no keysym-to-name table to borrow the way gio's cgo-based app/internal/xkb
does (xkb_unix.go's convertKeysym); wiring a real xkb_state would pull in
libxkbcommon and cgo, a build mode nothing else in wlproto uses. This is a
plain static table instead, in the same spirit as the teacher's deleted SDL2
main.go keyboard switch (sdl.K_* cases feeding unicode.IsPrint runes into
text input). Only the US layout is modeled; spec.md's binding table itself
is keyboard-layout agnostic since it names symbolic keys like "F10" and
single letters. */

/* keyEntry describes one physical key: name is the lowercase chord key
name used when no shift-specific name applies (matches KeyChord.Key,
keybinding.go), shiftName overrides it when Modifiers.Shift is held (for
punctuation keys where spec.md §6 binds the shifted symbol directly, e.g.
"+"), and rune_/shiftRune are what OnTextChar receives while typing. A zero
rune_ means the key has no printable form (function keys, arrows, Tab...). */
type keyEntry struct {
	name      string
	shiftName string
	rune_     rune
	shiftRune rune
}

func (k keyEntry) chordName(shift bool) string {
	if shift && k.shiftName != "" {
		return k.shiftName
	}
	return k.name
}

func (k keyEntry) textRune(shift bool) (rune, bool) {
	r := k.rune_
	if shift && k.shiftRune != 0 {
		r = k.shiftRune
	}
	if r == 0 {
		return 0, false
	}
	return r, true
}

/* evdev keycodes, linux/input-event-codes.h */
const (
	keyEsc        uint32 = 1
	keyMinus      uint32 = 12
	keyEqual      uint32 = 13
	keyBackspace  uint32 = 14
	keyTab        uint32 = 15
	keyLeftBrace  uint32 = 26
	keyRightBrace uint32 = 27
	keyEnter      uint32 = 28
	keyLeftCtrl   uint32 = 29
	keySemicolon  uint32 = 39
	keyApostrophe uint32 = 40
	keyGrave      uint32 = 41
	keyLeftShift  uint32 = 42
	keyBackslash  uint32 = 43
	keyComma      uint32 = 51
	keyDot        uint32 = 52
	keySlash      uint32 = 53
	keyRightShift uint32 = 54
	keyLeftAlt    uint32 = 56
	keySpace      uint32 = 57
	keyF1         uint32 = 59
	keyF10        uint32 = 68
	keyF11        uint32 = 87
	keyF12        uint32 = 88
	keyRightCtrl  uint32 = 97
	keyRightAlt   uint32 = 100
	keyDelete     uint32 = 111
)

var keyTable = buildKeyTable()

func buildKeyTable() map[uint32]keyEntry {
	t := map[uint32]keyEntry{
		keyEsc:        {name: "escape"},
		2:             {name: "1", shiftName: "!", rune_: '1', shiftRune: '!'},
		3:             {name: "2", shiftName: "@", rune_: '2', shiftRune: '@'},
		4:             {name: "3", shiftName: "#", rune_: '3', shiftRune: '#'},
		5:             {name: "4", shiftName: "$", rune_: '4', shiftRune: '$'},
		6:             {name: "5", shiftName: "%", rune_: '5', shiftRune: '%'},
		7:             {name: "6", shiftName: "^", rune_: '6', shiftRune: '^'},
		8:             {name: "7", shiftName: "&", rune_: '7', shiftRune: '&'},
		9:             {name: "8", shiftName: "*", rune_: '8', shiftRune: '*'},
		10:            {name: "9", shiftName: "(", rune_: '9', shiftRune: '('},
		11:            {name: "0", shiftName: ")", rune_: '0', shiftRune: ')'},
		keyMinus:      {name: "-", shiftName: "_", rune_: '-', shiftRune: '_'},
		keyEqual:      {name: "=", shiftName: "+", rune_: '=', shiftRune: '+'},
		keyBackspace:  {name: "backspace"},
		keyTab:        {name: "tab"},
		16:            {name: "q", rune_: 'q', shiftRune: 'Q'},
		17:            {name: "w", rune_: 'w', shiftRune: 'W'},
		18:            {name: "e", rune_: 'e', shiftRune: 'E'},
		19:            {name: "r", rune_: 'r', shiftRune: 'R'},
		20:            {name: "t", rune_: 't', shiftRune: 'T'},
		21:            {name: "y", rune_: 'y', shiftRune: 'Y'},
		22:            {name: "u", rune_: 'u', shiftRune: 'U'},
		23:            {name: "i", rune_: 'i', shiftRune: 'I'},
		24:            {name: "o", rune_: 'o', shiftRune: 'O'},
		25:            {name: "p", rune_: 'p', shiftRune: 'P'},
		keyLeftBrace:  {name: "[", shiftName: "{", rune_: '[', shiftRune: '{'},
		keyRightBrace: {name: "]", shiftName: "}", rune_: ']', shiftRune: '}'},
		keyEnter:      {name: "enter"},
		30:            {name: "a", rune_: 'a', shiftRune: 'A'},
		31:            {name: "s", rune_: 's', shiftRune: 'S'},
		32:            {name: "d", rune_: 'd', shiftRune: 'D'},
		33:            {name: "f", rune_: 'f', shiftRune: 'F'},
		34:            {name: "g", rune_: 'g', shiftRune: 'G'},
		35:            {name: "h", rune_: 'h', shiftRune: 'H'},
		36:            {name: "j", rune_: 'j', shiftRune: 'J'},
		37:            {name: "k", rune_: 'k', shiftRune: 'K'},
		38:            {name: "l", rune_: 'l', shiftRune: 'L'},
		keySemicolon:  {name: ";", shiftName: ":", rune_: ';', shiftRune: ':'},
		keyApostrophe: {name: "'", shiftName: "\"", rune_: '\'', shiftRune: '"'},
		keyGrave:      {name: "`", shiftName: "~", rune_: '`', shiftRune: '~'},
		keyBackslash:  {name: "\\", shiftName: "|", rune_: '\\', shiftRune: '|'},
		44:            {name: "z", rune_: 'z', shiftRune: 'Z'},
		45:            {name: "x", rune_: 'x', shiftRune: 'X'},
		46:            {name: "c", rune_: 'c', shiftRune: 'C'},
		47:            {name: "v", rune_: 'v', shiftRune: 'V'},
		48:            {name: "b", rune_: 'b', shiftRune: 'B'},
		49:            {name: "n", rune_: 'n', shiftRune: 'N'},
		50:            {name: "m", rune_: 'm', shiftRune: 'M'},
		keyComma:      {name: ",", shiftName: "<", rune_: ',', shiftRune: '<'},
		keyDot:        {name: ".", shiftName: ">", rune_: '.', shiftRune: '>'},
		keySlash:      {name: "/", shiftName: "?", rune_: '/', shiftRune: '?'},
		keySpace:      {name: "space", rune_: ' ', shiftRune: ' '},
		keyF1:         {name: "f1"},
		60:            {name: "f2"},
		61:            {name: "f3"},
		62:            {name: "f4"},
		63:            {name: "f5"},
		64:            {name: "f6"},
		65:            {name: "f7"},
		66:            {name: "f8"},
		67:            {name: "f9"},
		keyF10:        {name: "f10"},
		keyF11:        {name: "f11"},
		keyF12:        {name: "f12"},
		keyDelete:     {name: "delete"},
	}
	return t
}

func isModifierKey(code uint32) bool {
	switch code {
	case keyLeftCtrl, keyRightCtrl, keyLeftShift, keyRightShift, keyLeftAlt, keyRightAlt:
		return true
	}
	return false
}
