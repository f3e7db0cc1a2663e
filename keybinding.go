package scrawl

import (
	"errors"
	"sort"
	"strings"
)

var ErrDuplicateBinding = errors.New("scrawl: duplicate keybinding")

/* KeyChord is a normalized, modifier-order-independent, case-insensitive
key combination (spec.md §6, §8 invariant 7). */
type KeyChord struct {
	Key              string /* lowercased, e.g. "w", "f10", "escape" */
	Ctrl, Shift, Alt bool
}

/* ParseChord parses a binding string like "Ctrl+Shift+W" into a normalized
KeyChord. Modifier order in the input string is irrelevant to the result. */
func ParseChord(s string) KeyChord {
	parts := strings.Split(s, "+")
	chord := KeyChord{}
	var keyParts []string
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			chord.Ctrl = true
		case "shift":
			chord.Shift = true
		case "alt":
			chord.Alt = true
		default:
			keyParts = append(keyParts, strings.ToLower(strings.TrimSpace(p)))
		}
	}
	chord.Key = strings.Join(keyParts, "+")
	return chord
}

/* normalizedTriple is a stable, comparable key for duplicate detection. */
func (c KeyChord) normalizedTriple() string {
	mods := make([]string, 0, 3)
	if c.Ctrl {
		mods = append(mods, "ctrl")
	}
	if c.Shift {
		mods = append(mods, "shift")
	}
	if c.Alt {
		mods = append(mods, "alt")
	}
	sort.Strings(mods)
	return strings.Join(mods, "+") + "|" + c.Key
}

/* Bindings maps normalized chords to action names. Load rejects duplicate
bindings (two distinct actions on the same normalized triple) at load time,
a fatal error per spec.md §7. */
type Bindings struct {
	table map[string]string
}

func NewBindings() *Bindings {
	return &Bindings{table: make(map[string]string)}
}

/* LoadBindings builds a Bindings table from a chord->action map, returning
ErrDuplicateBinding if two chord strings normalize to the same triple but
name different actions; the same action bound twice is accepted. */
func LoadBindings(raw map[string]string) (*Bindings, error) {
	b := NewBindings()
	for chordStr, action := range raw {
		chord := ParseChord(chordStr)
		key := chord.normalizedTriple()
		if existing, ok := b.table[key]; ok && existing != action {
			return nil, ErrDuplicateBinding
		}
		b.table[key] = action
	}
	return b, nil
}

func (b *Bindings) Lookup(chord KeyChord) (string, bool) {
	action, ok := b.table[chord.normalizedTriple()]
	return action, ok
}

/* DefaultBindingSpecs returns the default keybinding source table named in
spec.md §6, ready to pass to LoadBindings. */
func DefaultBindingSpecs() map[string]string {
	return map[string]string{
		"Escape":        "exit",
		"Ctrl+Z":        "undo",
		"Ctrl+Shift+Z":  "redo",
		"E":             "clear_canvas",
		"F10":           "help",
		"F9":            "freeze",
		"Shift+F9":      "unfreeze",
		"Ctrl+W":        "whiteboard",
		"Ctrl+B":        "blackboard",
		"Ctrl+Shift+T":  "transparent",
		"[":             "send_to_back",
		"]":             "bring_to_front",
		"Ctrl+A":        "select_all",
		"Ctrl+D":        "duplicate",
		"Ctrl+L":        "toggle_lock",
		"Ctrl+Alt+H":    "toggle_highlight_tool",
		"Ctrl+Shift+H":  "toggle_click_highlight",
		"+":             "thickness_up",
		"-":             "thickness_down",
		"R":             "color_red",
		"G":             "color_green",
		"B":             "color_blue",
		"Y":             "color_yellow",
		"O":             "color_orange",
		"P":             "color_purple",
		"W":             "color_white",
		"K":             "color_black",
		"T":             "tool_text",
		"1":             "preset_slot_1",
		"2":             "preset_slot_2",
		"3":             "preset_slot_3",
		"4":             "preset_slot_4",
		"5":             "preset_slot_5",
		"6":             "preset_slot_6",
		"7":             "preset_slot_7",
		"8":             "preset_slot_8",
		"9":             "preset_slot_9",
		"0":             "preset_slot_10",
	}
}
