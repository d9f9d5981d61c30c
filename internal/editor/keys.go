// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

// KeyKind distinguishes printable input from named keys.
type KeyKind uint8

const (
	KeyRune KeyKind = iota
	KeyEscape
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
)

// Key is one keystroke delivered by the surface.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Named keys.
var (
	Escape    = Key{Kind: KeyEscape}
	Backspace = Key{Kind: KeyBackspace}
	Enter     = Key{Kind: KeyEnter}
	Left      = Key{Kind: KeyLeft}
	Right     = Key{Kind: KeyRight}
)

// RuneKey returns the key for a typed character.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// KeysFromString returns one RuneKey per rune of s.
func KeysFromString(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return string(k.Rune)
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}
