package automaton

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Builder Records new states and transitions and then finish creates the Automaton. Use this when you
// cannot create the Automaton directly because it's too restrictive to have to add all transitions
// leaving each state at once.
type Builder struct {
	nextState int

	// Holds source, dest, min, max for each buffered transition.
	transitions    []int
	nextTransition int

	isAccept *bitset.BitSet
}

func NewBuilder() *Builder {
	return NewBuilderV1(16, 16)
}

func NewBuilderV1(numStates, numTransitions int) *Builder {
	return &Builder{
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numTransitions*4),
	}
}

// CreateState Create a new state.
func (b *Builder) CreateState() int {
	state := b.nextState
	b.nextState++
	return state
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(state int, accept bool) {
	b.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (b *Builder) IsAccept(state int) bool {
	return b.isAccept.Test(uint(state))
}

// GetNumStates How many states this builder has so far.
func (b *Builder) GetNumStates() int {
	return b.nextState
}

// AddTransitionLabel Add a new transition with min = max = label.
func (b *Builder) AddTransitionLabel(source, dest, label int) {
	b.AddTransition(source, dest, label, label)
}

// AddTransition Add a new transition with the specified source, dest, min, max. Transitions may be
// added in any order; a single global sort happens in Finish.
func (b *Builder) AddTransition(source, dest, min, max int) {
	b.transitions = grow(b.transitions, b.nextTransition+4)
	b.transitions[b.nextTransition] = source
	b.nextTransition++
	b.transitions[b.nextTransition] = dest
	b.nextTransition++
	b.transitions[b.nextTransition] = min
	b.nextTransition++
	b.transitions[b.nextTransition] = max
	b.nextTransition++
}

// AddEpsilon Add a [virtual] epsilon transition between source and dest. Dest state must already have
// all of its transitions added because this method simply copies those transitions over to source.
func (b *Builder) AddEpsilon(source, dest int) {
	// Scan the buffered transitions; dest's transitions may be anywhere in the buffer.
	upto := b.nextTransition
	for i := 0; i < upto; i += 4 {
		if b.transitions[i] == dest {
			b.AddTransition(source, b.transitions[i+1], b.transitions[i+2], b.transitions[i+3])
		}
	}

	if b.IsAccept(dest) {
		b.SetAccept(source, true)
	}
}

// CopyStates Copies over all states from other.
func (b *Builder) CopyStates(other *Automaton) {
	otherNumStates := other.GetNumStates()
	for s := 0; s < otherNumStates; s++ {
		state := b.CreateState()
		b.SetAccept(state, other.IsAccept(s))
	}
}

// Copy Copies over all states/transitions from other.
func (b *Builder) Copy(other *Automaton) {
	offset := b.GetNumStates()
	otherNumStates := other.GetNumStates()

	b.CopyStates(other)

	t := NewTransition()
	for s := 0; s < otherNumStates; s++ {
		count := other.InitTransition(s, t)
		for i := 0; i < count; i++ {
			other.GetNextTransition(t)
			b.AddTransition(offset+s, offset+t.Dest, t.Min, t.Max)
		}
	}
}

// Finish Compiles all added states and transitions into a new Automaton and returns it.
func (b *Builder) Finish() *Automaton {
	// Create automaton with all states:
	numStates := b.nextState
	numTransitions := b.nextTransition / 4
	a := NewAutomatonV1(numStates, numTransitions)
	for state := 0; state < numStates; state++ {
		a.CreateState()
		a.SetAccept(state, b.IsAccept(state))
	}

	// Sort all transitions by (source, min, max, dest) so each source's transitions land contiguously:
	b.sort(0, numTransitions)

	for upto := 0; upto < b.nextTransition; upto += 4 {
		// Replaying sorted tuples keeps the Automaton's one-state-at-a-time contract satisfied.
		_ = a.AddTransition(b.transitions[upto], b.transitions[upto+1], b.transitions[upto+2], b.transitions[upto+3])
	}

	a.FinishState()

	return a
}

var _ sort.Interface = &builderSorter{}

type builderSorter struct {
	values []int
	size   int
}

func (b *builderSorter) Len() int {
	return b.size
}

func (b *builderSorter) Less(i, j int) bool {
	i *= 4
	j *= 4

	// Source:
	if b.values[i] < b.values[j] {
		return true
	} else if b.values[i] > b.values[j] {
		return false
	}

	// Min:
	if b.values[i+2] < b.values[j+2] {
		return true
	} else if b.values[i+2] > b.values[j+2] {
		return false
	}

	// Max:
	if b.values[i+3] < b.values[j+3] {
		return true
	} else if b.values[i+3] > b.values[j+3] {
		return false
	}

	// Dest:
	if b.values[i+1] < b.values[j+1] {
		return true
	} else if b.values[i+1] > b.values[j+1] {
		return false
	}

	return false
}

func (b *builderSorter) Swap(i, j int) {
	i *= 4
	j *= 4

	b.values[i], b.values[j] = b.values[j], b.values[i]
	b.values[i+1], b.values[j+1] = b.values[j+1], b.values[i+1]
	b.values[i+2], b.values[j+2] = b.values[j+2], b.values[i+2]
	b.values[i+3], b.values[j+3] = b.values[j+3], b.values[i+3]
}

func (b *Builder) sort(from, to int) {
	sort.Sort(&builderSorter{
		values: b.transitions,
		size:   to - from,
	})
}
