// Package hotkey parses key combinations and listens for them system-wide.
package hotkey

import (
	"fmt"
	"strings"
)

// Modifier flags as RegisterHotKey takes them.
type Modifier uint32

const (
	ModAlt      Modifier = 0x0001
	ModControl  Modifier = 0x0002
	ModShift    Modifier = 0x0004
	ModWin      Modifier = 0x0008
	modNoRepeat Modifier = 0x4000
)

// Combo is a modifier set plus one virtual-key code.
type Combo struct {
	Modifiers Modifier
	Key       uint32
}

var modifierNames = map[string]Modifier{
	"alt":     ModAlt,
	"ctrl":    ModControl,
	"control": ModControl,
	"shift":   ModShift,
	"win":     ModWin,
	"super":   ModWin,
}

// One name per code; keyName renders the code back through this map.
var namedKeys = map[string]uint32{
	"backspace": 0x08,
	"tab":       0x09,
	"enter":     0x0D,
	"esc":       0x1B,
	"space":     0x20,
	"pageup":    0x21,
	"pagedown":  0x22,
	"end":       0x23,
	"home":      0x24,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"insert":    0x2D,
	"delete":    0x2E,
}

// Parse reads a combo such as "win+alt+1" or "ctrl+shift+F5". Names are
// case-insensitive and at least one modifier is required.
func Parse(s string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("hotkey %q needs at least one modifier and a key", s)
	}

	var c Combo
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod, ok := modifierNames[p]
		if !ok {
			return Combo{}, fmt.Errorf("hotkey %q: unknown modifier %q", s, p)
		}
		if c.Modifiers&mod != 0 {
			return Combo{}, fmt.Errorf("hotkey %q: duplicate modifier %q", s, p)
		}
		c.Modifiers |= mod
	}

	key, err := parseKey(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return Combo{}, fmt.Errorf("hotkey %q: %w", s, err)
	}
	c.Key = key
	return c, nil
}

func parseKey(k string) (uint32, error) {
	if vk, ok := namedKeys[k]; ok {
		return vk, nil
	}
	if len(k) == 1 {
		switch ch := k[0]; {
		case ch >= '0' && ch <= '9':
			return uint32(ch), nil
		case ch >= 'a' && ch <= 'z':
			return uint32(ch - 'a' + 'A'), nil
		}
	}

	var n int
	if _, err := fmt.Sscanf(k, "numpad%d", &n); err == nil && n >= 0 && n <= 9 && k == fmt.Sprintf("numpad%d", n) {
		return 0x60 + uint32(n), nil
	}
	if _, err := fmt.Sscanf(k, "f%d", &n); err == nil && n >= 1 && n <= 24 && k == fmt.Sprintf("f%d", n) {
		return 0x70 + uint32(n-1), nil
	}
	if k == "" {
		return 0, fmt.Errorf("missing key")
	}
	return 0, fmt.Errorf("unknown key %q", k)
}

// String renders the combo in canonical form, e.g. "Ctrl+Alt+Win+1".
func (c Combo) String() string {
	var parts []string
	if c.Modifiers&ModControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if c.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if c.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if c.Modifiers&ModWin != 0 {
		parts = append(parts, "Win")
	}
	return strings.Join(append(parts, keyName(c.Key)), "+")
}

func keyName(vk uint32) string {
	for name, code := range namedKeys {
		if code == vk {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	switch {
	case vk >= '0' && vk <= '9', vk >= 'A' && vk <= 'Z':
		return string(rune(vk))
	case vk >= 0x60 && vk <= 0x69:
		return fmt.Sprintf("Numpad%d", vk-0x60)
	case vk >= 0x70 && vk <= 0x87:
		return fmt.Sprintf("F%d", vk-0x70+1)
	}
	return fmt.Sprintf("VK(%#x)", vk)
}

// Binding maps a combo to a desktop index.
type Binding struct {
	Combo   Combo
	Desktop int
}
