package engine

// NodeID is an opaque node handle; 0 is never assigned
type NodeID uint32

// ThemeID is an opaque theme handle
type ThemeID uint32

// AnimID is an opaque animation handle
type AnimID uint32

// GroupID is an opaque choreography group handle
type GroupID uint32

// Built-in themes, present from engine start
const (
	ThemeDark  ThemeID = 1
	ThemeLight ThemeID = 2
)

// Kind is a node variant
type Kind uint8

const (
	KindContainer Kind = iota
	KindText
	KindInput
	KindSelect
	KindScroll
	KindTextArea
)

var kindNames = [...]string{"container", "text", "input", "select", "scroll", "textarea"}

// Valid reports whether k is a known variant
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a variant name back to its Kind
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}
