package automaton

import (
	"math"
	"slices"
)

// NFARunAutomaton A RunAutomaton that does not require the automaton to be determinized up
// front. The determinized states are computed on demand, one transition at a time, and cached
// for the lifetime of this object.
//
// It is thread-unsafe: the cache is mutated by Step.

const (
	// RunAutomatonMissing means the subset has no transition for the label.
	RunAutomatonMissing = -1
	// The transition for this char class has not been computed yet.
	notComputed = -2
)

var (
	_ ByteRunnable       = &NFARunAutomaton{}
	_ TransitionAccessor = &NFARunAutomaton{}
)

type NFARunAutomaton struct {
	automaton    *Automaton
	points       []int
	dStateToOrd  *HashMap[int]
	dStates      []*dState
	alphabetSize int
	classmap     []int
}

// NewNFARunAutomaton Constructs a RunAutomaton from a possibly non-deterministic automaton,
// treating it as a codepoint automaton.
func NewNFARunAutomaton(a *Automaton) *NFARunAutomaton {
	return NewNFARunAutomatonV1(a, 0x10FFFF+1)
}

// NewNFARunAutomatonV1 Constructs a RunAutomaton over the given alphabet size.
func NewNFARunAutomatonV1(a *Automaton, alphabetSize int) *NFARunAutomaton {
	r := &NFARunAutomaton{
		automaton:    a,
		points:       a.GetStartPoints(),
		dStateToOrd:  NewHashMap[int](),
		dStates:      make([]*dState, 0, 10),
		alphabetSize: alphabetSize,
	}
	r.findDState(r.newDState([]int{0}))

	// Set alphabet table for optimal run performance:
	r.classmap = make([]int, min(256, alphabetSize))
	i := 0
	for j := range r.classmap {
		if i+1 < len(r.points) && j == r.points[i+1] {
			i++
		}
		r.classmap[j] = i
	}
	return r
}

// Step Returns the state obtained by reading the given char from the given state. Returns
// RunAutomatonMissing if not obtaining any such state.
func (r *NFARunAutomaton) Step(state, c int) int {
	return r.dStates[state].nextState(r.getCharClass(c))
}

// IsAccept Returns whether the given state is an accept state.
func (r *NFARunAutomaton) IsAccept(state int) bool {
	return r.dStates[state].isAccept
}

// GetSize Returns the number of determinized states computed so far.
func (r *NFARunAutomaton) GetSize() int {
	return len(r.dStates)
}

// Run Returns true if the given byte array is accepted by this automaton.
func (r *NFARunAutomaton) Run(s []byte) bool {
	p := 0
	for _, b := range s {
		p = r.Step(p, int(b)&0xFF)
		if p == RunAutomatonMissing {
			return false
		}
	}
	return r.dStates[p].isAccept
}

// RunInts Returns true if the given codepoints are accepted by this automaton.
func (r *NFARunAutomaton) RunInts(s []int) bool {
	p := 0
	for _, c := range s {
		p = r.Step(p, c)
		if p == RunAutomatonMissing {
			return false
		}
	}
	return r.dStates[p].isAccept
}

// Gets character class of given codepoint.
func (r *NFARunAutomaton) getCharClass(c int) int {
	if c < len(r.classmap) {
		return r.classmap[c]
	}

	// Binary search
	a, b := 0, len(r.points)
	for b-a > 1 {
		d := (a + b) >> 1
		if r.points[d] > c {
			b = d
		} else if r.points[d] < c {
			a = d
		} else {
			return d
		}
	}
	return a
}

// Returns the ord of the determinized state equal to dState, assigning a new ord when it has
// not been seen before. RunAutomatonMissing for a nil (dead-end) state.
func (r *NFARunAutomaton) findDState(d *dState) int {
	if d == nil {
		return RunAutomatonMissing
	}
	ord, ok := r.dStateToOrd.Get(d)
	if ok {
		return ord
	}
	ord = r.dStateToOrd.Size()
	r.dStateToOrd.Set(d, ord)
	r.dStates = append(r.dStates, d)
	return ord
}

func (r *NFARunAutomaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.TransitionUpto = -1
	return r.GetNumTransitionsWithState(state)
}

func (r *NFARunAutomaton) GetNextTransition(t *Transition) {
	for {
		t.TransitionUpto++
		if r.dStates[t.Source].transitions[t.TransitionUpto] != RunAutomatonMissing {
			break
		}
	}
	r.setTransitionAccordingly(t)
}

func (r *NFARunAutomaton) setTransitionAccordingly(t *Transition) {
	t.Dest = r.dStates[t.Source].transitions[t.TransitionUpto]
	t.Min = r.points[t.TransitionUpto]
	if t.TransitionUpto == len(r.points)-1 {
		t.Max = r.alphabetSize - 1
	} else {
		t.Max = r.points[t.TransitionUpto+1] - 1
	}
}

func (r *NFARunAutomaton) GetNumTransitionsWithState(state int) int {
	r.dStates[state].determinize()
	return r.dStates[state].numTransitions()
}

func (r *NFARunAutomaton) GetTransition(state, index int, t *Transition) {
	r.dStates[state].determinize()
	outgoingTransitions := -1
	t.TransitionUpto = -1
	t.Source = state
	for outgoingTransitions < index && t.TransitionUpto < len(r.points)-1 {
		t.TransitionUpto++
		if r.dStates[t.Source].transitions[t.TransitionUpto] != RunAutomatonMissing {
			outgoingTransitions++
		}
	}
	r.setTransitionAccordingly(t)
}

// One determinized state: a sorted set of NFA states plus the per-char-class transition cache.
type dState struct {
	run       *NFARunAutomaton
	nfaStates []int
	// Lazily inited when a transition is first computed
	transitions []int
	hashCode    uint64
	isAccept    bool
	// Scratch for stepping the member NFA states
	stepTransition *Transition
	// The label interval all members agreed on during the last step; lets us fill
	// neighboring char classes without re-stepping
	minimalTransition   *Transition
	computedTransitions int
}

func (r *NFARunAutomaton) newDState(nfaStates []int) *dState {
	hashCode := uint64(len(nfaStates))
	isAccept := false
	for _, s := range nfaStates {
		hashCode += uint64(mix(s))
		if r.automaton.IsAccept(s) {
			isAccept = true
		}
	}
	return &dState{
		run:            r,
		nfaStates:      nfaStates,
		hashCode:       hashCode,
		isAccept:       isAccept,
		stepTransition: NewTransition(),
	}
}

func (d *dState) Hash() uint64 {
	return d.hashCode
}

func (d *dState) Equals(other Hashable) bool {
	o, ok := other.(*dState)
	if !ok {
		return false
	}
	return d.hashCode == o.hashCode && slices.Equal(d.nfaStates, o.nfaStates)
}

func (d *dState) nextState(charClass int) int {
	d.initTransitions()
	if d.transitions[charClass] == notComputed {
		d.assignTransition(charClass, d.run.findDState(d.step(d.run.points[charClass])))

		// We could potentially compute more transitions along the way:
		if d.minimalTransition != nil {
			// To the left:
			cls := charClass
			for cls > 0 {
				cls--
				if d.run.points[cls] < d.minimalTransition.Min {
					break
				}
				d.assignTransition(cls, d.transitions[charClass])
			}
			// To the right:
			cls = charClass
			for cls < len(d.run.points)-1 {
				cls++
				if d.run.points[cls] > d.minimalTransition.Max {
					break
				}
				d.assignTransition(cls, d.transitions[charClass])
			}
			d.minimalTransition = nil
		}
	}
	return d.transitions[charClass]
}

func (d *dState) initTransitions() {
	if d.transitions == nil {
		d.transitions = make([]int, len(d.run.points))
		for i := range d.transitions {
			d.transitions[i] = notComputed
		}
	}
}

func (d *dState) assignTransition(charClass, dest int) {
	if d.transitions[charClass] == notComputed {
		d.transitions[charClass] = dest
		d.computedTransitions++
	}
}

// Steps every member NFA state on label c, returning the resulting subset, or nil if none of
// them has a matching transition. Also records the minimal label interval shared by all the
// matched transitions into minimalTransition.
func (d *dState) step(c int) *dState {
	stateSet := NewStateSet(5)
	left, right := -1, math.MaxInt
	for _, nfaState := range d.nfaStates {
		numTransitions := d.run.automaton.InitTransition(nfaState, d.stepTransition)
		for i := 0; i < numTransitions; i++ {
			d.run.automaton.GetNextTransition(d.stepTransition)
			if d.stepTransition.Min <= c && d.stepTransition.Max >= c {
				stateSet.Incr(d.stepTransition.Dest)
				left = max(d.stepTransition.Min, left)
				right = min(d.stepTransition.Max, right)
			}
			if d.stepTransition.Max < c {
				left = max(d.stepTransition.Max+1, left)
			}
			if d.stepTransition.Min > c {
				right = min(d.stepTransition.Min-1, right)
			}
		}
	}
	if stateSet.Size() == 0 {
		return nil
	}
	d.minimalTransition = &Transition{Min: left, Max: right}
	return d.run.newDState(slices.Clone(stateSet.GetArray()))
}

// Computes the missing transitions so the state can be walked as a DFA state.
func (d *dState) determinize() {
	if d.transitions != nil && d.computedTransitions == len(d.transitions) {
		// Already computed
		return
	}
	d.initTransitions()
	for i := range d.transitions {
		if d.transitions[i] == notComputed {
			d.nextState(i)
		}
	}
}

func (d *dState) numTransitions() int {
	n := 0
	for _, t := range d.transitions {
		if t != RunAutomatonMissing {
			n++
		}
	}
	return n
}
