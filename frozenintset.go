package automaton

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet An immutable, hashable snapshot of a StateSet, plus the DFA state it was mapped to.
// Used as the key identifying a DFA state during determinization.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, hashCode: hashCode, state: state}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	return intSetEquals(f, other)
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// State The DFA state minted for this subset.
func (f *FrozenIntSet) State() int {
	return f.state
}
