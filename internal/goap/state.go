package goap

import (
	"sort"
	"strings"
)

// State is a finite, concrete mapping from key to Value. States never
// contain Wildcard; that is reserved for Mask.
type State map[string]Value

// Mask is a mapping from key to Value where Wildcard at a key means
// "don't care". Preconditions, goals, and heuristic inputs are Masks.
type Mask map[string]Value

// NewState creates a new empty State.
func NewState() State { return make(State) }

// NewMask creates a new empty Mask.
func NewMask() Mask { return make(Mask) }

// Clone returns a shallow copy; Value is itself a value type, so this is
// a full deep copy of the mapping.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Clone returns a deep copy of the mask.
func (m Mask) Clone() Mask {
	c := make(Mask, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Set assigns a concrete value to a key.
func (s State) Set(key string, v Value) { s[key] = v }

// Get retrieves the value at key; the zero Value (a false KindBool) is
// returned if absent. Callers that need to distinguish "absent" from
// "false" should use Has.
func (s State) Get(key string) Value { return s[key] }

// Has reports whether key is present in the state.
func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Satisfies reports whether s satisfies mask: for every (k, v) in mask
// with v not Wildcard, s[k] must exist and equal v.
func (s State) Satisfies(mask Mask) bool {
	for k, want := range mask {
		if want.IsWildcard() {
			continue
		}
		got, ok := s[k]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// Mismatch counts keys in mask with a non-Wildcard value where s[k]
// differs from (or is absent for) that value. Keys present in s but
// absent from mask are ignored.
func (s State) Mismatch(mask Mask) int {
	n := 0
	for k, want := range mask {
		if want.IsWildcard() {
			continue
		}
		got, ok := s[k]
		if !ok || !got.Equal(want) {
			n++
		}
	}
	return n
}

// Apply returns a new State identical to s with every (k, v) in effect
// overwritten. effect must contain no Wildcard; Apply does not validate
// this (that is the Catalog's job at build time).
func (s State) Apply(effect State) State {
	next := s.Clone()
	for k, v := range effect {
		next[k] = v
	}
	return next
}

// Equal reports whether s and other have identical key sets and values.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Equal reports whether m and other have identical key sets and values.
func (m Mask) Equal(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// CanonicalKey produces a byte-stable serialization of s: keys sorted
// lexicographically ascending, each entry "key=value" (booleans as 1/0,
// integers in decimal, strings verbatim), entries joined by ";". It is
// fully determined by the state's contents, which is what lets Planner
// hash and compare states cheaply. It is injective over states sharing
// the same key set only while each key keeps a single value kind and no
// string value contains ";": Bool(true) and Int(1) both render as "1",
// and a string holding ";" can read like extra entries.
func (s State) CanonicalKey() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[k].String())
	}
	return b.String()
}

// String renders the state for logs and diagnostics, in the same
// sorted-key order as CanonicalKey.
func (s State) String() string {
	if len(s) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(s))
	for _, k := range keys {
		parts = append(parts, k+"="+s[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// String renders the mask for logs and diagnostics.
func (m Mask) String() string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(m))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
