package automaton

import "slices"

// Hashable A key with a precomputable hash and structural equality, usable with HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// IntSet A set of ints. StateSet is the mutable (refcounted) form used while a determinization
// step is in flight; FrozenIntSet is the immutable form used as a DFA-state key.
type IntSet interface {
	Hashable

	// GetArray Returns the members, sorted ascending.
	GetArray() []int

	// Size Returns the number of members.
	Size() int
}

// Two int sets are equal when they hold the same sorted members; the hash check is just a
// cheap early out.
func intSetEquals(a IntSet, other Hashable) bool {
	b, ok := other.(IntSet)
	if !ok {
		return false
	}
	if a.Hash() != b.Hash() {
		return false
	}
	return slices.Equal(a.GetArray(), b.GetArray())
}
