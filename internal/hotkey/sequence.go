// Package hotkey provides the process-wide table that maps key sequences to
// toggle callbacks, the desktop-wide grabs that feed it while the terminal
// is unfocused, and the SIGUSR1 trigger used by `qterminal toggle`.
package hotkey

import (
	"fmt"
	"slices"
	"strings"
)

// Sequence is a normalised key combination such as "ctrl+shift+f12".
// Modifiers are always ordered ctrl, alt, shift, meta, hyper, super, which is
// the order bubbletea uses for Key.Keystroke.
type Sequence string

// modifierOrder lists the recognised modifiers in canonical order.
var modifierOrder = []string{"ctrl", "alt", "shift", "meta", "hyper", "super"}

// modifierAliases maps the spellings users put in config files to canonical names.
var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"ctl":     "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"opt":     "alt",
	"shift":   "shift",
	"meta":    "meta",
	"hyper":   "hyper",
	"super":   "super",
	"cmd":     "super",
	"win":     "super",
}

// keyAliases maps alternative key names to the names bubbletea reports.
var keyAliases = map[string]string{
	"return":   "enter",
	"esc":      "escape",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pgup",
	"pageup":   "pgup",
	"pgdown":   "pgdown",
	"pagedown": "pgdown",
	" ":        "space",
}

// Parse converts a user-supplied binding ("Ctrl+Shift+F12", "alt + `")
// into its canonical Sequence. An empty string yields an empty Sequence.
func Parse(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	// A trailing "+" means the key itself is the plus sign ("ctrl++").
	plusKey := strings.HasSuffix(s, "++")
	if plusKey {
		s = strings.TrimSuffix(s, "++")
	}

	parts := strings.Split(s, "+")
	if plusKey {
		parts = append(parts, "+")
	}

	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return "", fmt.Errorf("invalid key sequence %q: missing key", s)
	}
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}

	seen := make(map[string]bool)
	for _, p := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(p))
		canonical, ok := modifierAliases[name]
		if !ok {
			return "", fmt.Errorf("invalid key sequence %q: unknown modifier %q", s, p)
		}
		seen[canonical] = true
	}

	var b strings.Builder
	for _, m := range modifierOrder {
		if seen[m] {
			b.WriteString(m)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return Sequence(b.String()), nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// compiled-in defaults.
func MustParse(s string) Sequence {
	seq, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// IsEmpty reports whether the sequence binds nothing.
func (s Sequence) IsEmpty() bool {
	return s == ""
}

// String returns the canonical form.
func (s Sequence) String() string {
	return string(s)
}

// Split returns the modifiers and the key of the sequence.
func (s Sequence) Split() (mods []string, key string) {
	str := string(s)
	if str == "" {
		return nil, ""
	}
	if str == "+" {
		return nil, "+"
	}
	var parts []string
	if strings.HasSuffix(str, "++") {
		parts = append(strings.Split(strings.TrimSuffix(str, "++"), "+"), "+")
	} else {
		parts = strings.Split(str, "+")
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// Display renders the sequence for menus and tables, e.g. "Ctrl+Shift+F12".
func (s Sequence) Display() string {
	if s.IsEmpty() {
		return ""
	}
	mods, key := s.Split()
	parts := append(slices.Clone(mods), key)
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = strings.ToUpper(p)
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "+")
}
