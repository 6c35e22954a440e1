package goap

import "fmt"

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindString
	// KindWildcard marks a mask entry as "don't care". It is only ever
	// valid inside a Mask (preconditions, goals); a State must never
	// contain it.
	KindWildcard
)

// Value is a tagged scalar: a boolean, an integer, a short string, or the
// Wildcard marker. Using a sum type instead of the historical -1 integer
// sentinel keeps "don't care" from ever being confused with a real -1
// stored in a state.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// Wildcard is the reserved value meaning "any value acceptable". It must
// only appear in Masks.
var Wildcard = Value{kind: KindWildcard}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Str constructs a string Value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the tag of this Value.
func (v Value) Kind() Kind { return v.kind }

// BoolValue returns the payload of a KindBool Value; the result is
// meaningless for any other kind.
func (v Value) BoolValue() bool { return v.b }

// IntValue returns the payload of a KindInt Value; the result is
// meaningless for any other kind.
func (v Value) IntValue() int64 { return v.i }

// StrValue returns the payload of a KindString Value; the result is
// meaningless for any other kind.
func (v Value) StrValue() string { return v.s }

// IsWildcard reports whether v is the Wildcard marker.
func (v Value) IsWildcard() bool { return v.kind == KindWildcard }

// Equal compares two Values strictly by kind and payload. Wildcard is
// never equal to anything, including another Wildcard, since "don't
// care" is not a comparable fact about the world.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	default:
		return false
	}
}

// String renders v for canonical keys, logs, and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return v.s
	case KindWildcard:
		return "*"
	default:
		return "?"
	}
}

// TypeName returns a human-readable type name, used in InvalidEffectType
// diagnostics.
func (v Value) TypeName() string {
	switch v.kind {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}
