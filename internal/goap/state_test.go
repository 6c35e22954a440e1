package goap

import "testing"

func TestStateSetGet(t *testing.T) {
	s := NewState()
	s.Set("hungry", Bool(true))
	s.Set("count", Int(3))

	if !s.Get("hungry").Equal(Bool(true)) {
		t.Errorf("expected hungry=true, got %v", s.Get("hungry"))
	}
	if !s.Get("count").Equal(Int(3)) {
		t.Errorf("expected count=3, got %v", s.Get("count"))
	}
	if s.Has("missing") {
		t.Error("expected missing key to be absent")
	}
}

func TestStateClone(t *testing.T) {
	s := NewState()
	s.Set("a", Bool(true))

	clone := s.Clone()
	clone.Set("b", Bool(true))

	if s.Has("b") {
		t.Error("original must not see mutations made to the clone")
	}
	if !clone.Has("a") {
		t.Error("clone must carry over the original's keys")
	}
}

func TestStateSatisfiesWildcard(t *testing.T) {
	s := NewState()
	s.Set("a", Bool(true))
	s.Set("b", Bool(true))
	s.Set("c", Bool(true))

	mask := Mask{"a": Bool(true), "b": Wildcard}
	if !s.Satisfies(mask) {
		t.Error("wildcard entries must never block a match")
	}

	mask["d"] = Bool(true)
	if s.Satisfies(mask) {
		t.Error("a mask key absent from state must fail satisfaction")
	}
}

func TestStateMismatch(t *testing.T) {
	current := State{"a": Bool(true), "b": Bool(true)}
	goal := Mask{"a": Bool(true), "b": Bool(false), "c": Bool(true)}

	if n := current.Mismatch(goal); n != 2 {
		t.Errorf("expected mismatch count 2, got %d", n)
	}
}

func TestStateApply(t *testing.T) {
	s := State{"a": Bool(true), "b": Bool(false)}
	effect := State{"b": Bool(true), "c": Int(5)}

	next := s.Apply(effect)

	if !next.Get("a").Equal(Bool(true)) {
		t.Error("apply must preserve keys absent from the effect")
	}
	if !next.Get("b").Equal(Bool(true)) {
		t.Error("apply must overwrite keys present in the effect")
	}
	if !next.Get("c").Equal(Int(5)) {
		t.Error("apply must add new keys introduced by the effect")
	}
	if s.Get("b").Equal(Bool(true)) {
		t.Error("apply must not mutate the receiver")
	}
}

func TestStateCanonicalKey(t *testing.T) {
	a := State{"b": Bool(true), "a": Int(1)}
	b := State{"a": Int(1), "b": Bool(true)}

	if a.CanonicalKey() != b.CanonicalKey() {
		t.Errorf("canonical key must not depend on map iteration order: %q vs %q", a.CanonicalKey(), b.CanonicalKey())
	}

	c := State{"a": Int(1), "b": Bool(false)}
	if a.CanonicalKey() == c.CanonicalKey() {
		t.Error("distinct states must not share a canonical key")
	}
}

func TestValueEqualNeverMatchesWildcard(t *testing.T) {
	if Wildcard.Equal(Wildcard) {
		t.Error("wildcard must never compare equal, even to itself")
	}
	if Bool(true).Equal(Int(1)) {
		t.Error("values of different kinds must never compare equal")
	}
}
