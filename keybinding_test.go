package scrawl

import "testing"

/* invariant 7: keybinding matching is independent of modifier order and
letter case. */
func TestParseChordModifierOrderIndependent(t *testing.T) {
	a := ParseChord("Ctrl+Shift+W")
	b := ParseChord("Shift+Ctrl+w")
	if a.normalizedTriple() != b.normalizedTriple() {
		t.Fatalf("expected equivalent chords, got %q vs %q", a.normalizedTriple(), b.normalizedTriple())
	}
}

func TestLoadBindingsRejectsConflict(t *testing.T) {
	_, err := LoadBindings(map[string]string{
		"Ctrl+Z":       "undo",
		"Shift+Ctrl+z": "redo",
	})
	if err != ErrDuplicateBinding {
		t.Fatalf("expected ErrDuplicateBinding, got %v", err)
	}
}

func TestLoadBindingsAllowsSameChordSameAction(t *testing.T) {
	_, err := LoadBindings(map[string]string{
		"Ctrl+Z": "undo",
		"z+ctrl": "undo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBindingsLookup(t *testing.T) {
	b, err := LoadBindings(DefaultBindingSpecs())
	if err != nil {
		t.Fatalf("default bindings must not conflict: %v", err)
	}
	action, ok := b.Lookup(ParseChord("ctrl+z"))
	if !ok || action != "undo" {
		t.Fatalf("expected ctrl+z -> undo, got %q, %v", action, ok)
	}
	action, ok = b.Lookup(ParseChord("Z+Ctrl"))
	if !ok || action != "undo" {
		t.Fatalf("expected reordered modifiers to still resolve, got %q, %v", action, ok)
	}
}

func TestDefaultBindingSpecsHasNoDuplicates(t *testing.T) {
	if _, err := LoadBindings(DefaultBindingSpecs()); err != nil {
		t.Fatalf("default binding table must be internally consistent: %v", err)
	}
}
