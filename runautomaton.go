package automaton

import (
	"slices"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// RunAutomaton Finite-state automaton with fast run operation. The initial state is always 0.
//
// The automaton is determinized up front and its transition function flattened into a dense
// state-by-character-class table, so stepping is a couple of array reads per input character.
type RunAutomaton struct {
	automaton    *Automaton
	alphabetSize int
	size         int
	accept       *bitset.BitSet
	// Delta(state, c) = transitions[state*len(points) + getCharClass(c)]
	transitions []int
	// Char interval start points
	points []int
	// Map from char number to class
	classmap []int
}

// NewRunAutomaton Constructs a new RunAutomaton from a deterministic or non-deterministic
// automaton.
func NewRunAutomaton(a *Automaton, alphabetSize int) (*RunAutomaton, error) {
	return NewRunAutomatonV1(a, alphabetSize, DefaultDeterminizeWorkLimit)
}

// NewRunAutomatonV1 Constructs a new RunAutomaton from a deterministic or non-deterministic
// automaton, with the given work limit for determinization.
func NewRunAutomatonV1(a *Automaton, alphabetSize, determinizeWorkLimit int) (*RunAutomaton, error) {
	da, err := DeterminizeAutomaton(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}

	points := da.GetStartPoints()

	// No need for a sink state if the automaton is empty, but the table must hold state 0:
	size := max(1, da.GetNumStates())
	numStates := da.GetNumStates()

	r := &RunAutomaton{
		automaton:    da,
		alphabetSize: alphabetSize,
		size:         size,
		accept:       bitset.New(uint(size)),
		transitions:  make([]int, size*len(points)),
		points:       points,
	}

	for i := range r.transitions {
		r.transitions[i] = -1
	}

	transition := NewTransition()

	for n := 0; n < numStates; n++ {
		if da.IsAccept(n) {
			r.accept.Set(uint(n))
		}
		transition.Source = n
		transition.TransitionUpto = -1
		for c := 0; c < len(points); c++ {
			dest := da.Next(transition, points[c])
			r.transitions[n*len(points)+c] = dest
		}
	}

	// Set alphabet table for optimal run performance:
	r.classmap = make([]int, min(256, alphabetSize))
	i := 0
	for j := range r.classmap {
		if i+1 < len(points) && j == points[i+1] {
			i++
		}
		r.classmap[j] = i
	}

	return r, nil
}

// IsAccept Returns true if the given state is an accept state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept.Test(uint(state))
}

// GetSize Returns number of states in the automaton.
func (r *RunAutomaton) GetSize() int {
	return r.size
}

// GetCharIntervals Returns array of codepoint class interval start points. The array should not
// be modified by the caller.
func (r *RunAutomaton) GetCharIntervals() []int {
	return slices.Clone(r.points)
}

// Gets character class of given codepoint.
func (r *RunAutomaton) getCharClass(c int) int {
	// Binary search over the sorted points:
	return sort.Search(len(r.points), func(i int) bool {
		return r.points[i] > c
	}) - 1
}

// Step Returns the state obtained by reading the given char from the given state. Returns -1 if
// not obtaining any such state.
func (r *RunAutomaton) Step(state, c int) int {
	if c >= len(r.classmap) {
		return r.transitions[state*len(r.points)+r.getCharClass(c)]
	}
	return r.transitions[state*len(r.points)+r.classmap[c]]
}
