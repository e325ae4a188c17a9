package automaton

import "slices"

var _ IntSet = &StateSet{}

// StateSet A multiset of NFA state ids with a positive reference count per member, used as the
// working "current subset" while determinize sweeps interval boundaries. Members whose count
// drops to zero are removed eagerly. The sorted snapshot and the hash are rebuilt lazily, so
// repeated Incr/Decr churn stays cheap.
type StateSet struct {
	inner        *IntIntHashMap
	hashCode     uint64
	hashUpdated  bool
	arrayCache   []int
	arrayUpdated bool
}

func NewStateSet(capacity int) *StateSet {
	return &StateSet{
		inner:        NewIntIntHashMap(capacity),
		hashUpdated:  true,
		arrayUpdated: true,
	}
}

// Incr Adds this state to the set, or increments its reference count if already present.
func (s *StateSet) Incr(state int) {
	if s.inner.AddTo(int32(state), 1) == 1 {
		s.keyChanged()
	}
}

// Decr Decrements the state's reference count, removing it from the set once the count hits zero.
// The state must be present; decrementing an absent state is a caller bug.
func (s *StateSet) Decr(state int) {
	idx, ok := s.inner.IndexOf(int32(state))
	if !ok {
		panic("decrementing a state that is not in the set")
	}
	count, _ := s.inner.IndexGet(idx)
	if count == 1 {
		s.inner.IndexRemove(idx)
		s.keyChanged()
	} else {
		s.inner.IndexReplace(idx, count-1)
	}
}

// Reset Removes all members, keeping the allocated storage.
func (s *StateSet) Reset() {
	s.inner.Clear()
	s.keyChanged()
}

// Freeze Creates a frozen snapshot of this set associated with the given DFA state.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return NewFrozenIntSet(slices.Clone(s.GetArray()), s.Hash(), state)
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.arrayUpdated = false
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = uint64(s.inner.Size())
	for key := range s.inner.Keys() {
		s.hashCode += uint64(mix(int(key)))
	}
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	return intSetEquals(s, other)
}

func (s *StateSet) GetArray() []int {
	if s.arrayUpdated {
		return s.arrayCache
	}
	s.arrayCache = make([]int, 0, s.inner.Size())
	for key := range s.inner.Keys() {
		s.arrayCache = append(s.arrayCache, int(key))
	}
	slices.Sort(s.arrayCache)
	s.arrayUpdated = true
	return s.arrayCache
}

func (s *StateSet) Size() int {
	return s.inner.Size()
}
