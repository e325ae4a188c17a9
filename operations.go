package automaton

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Automata operations.

// Bounds the isFinite recursion; a larger automaton is a caller bug, not a data condition.
const maxRecursionLevel = 1000

// Union Returns an automaton that accepts the union of the languages of the given automata.
//
// Complexity: linear in number of states.
func Union(automatons ...*Automaton) (*Automaton, error) {
	result := NewAutomaton()

	// Create initial state:
	result.CreateState()

	// Copy over all automata
	for _, a := range automatons {
		result.Copy(a)
	}

	// Add epsilon transition from new initial state
	stateOffset := 1
	for _, a := range automatons {
		if a.GetNumStates() == 0 {
			continue
		}
		if err := result.AddEpsilon(0, stateOffset); err != nil {
			return nil, err
		}
		stateOffset += a.GetNumStates()
	}

	result.FinishState()

	return RemoveDeadStates(result)
}

// Concatenate Returns an automaton that accepts the concatenation of the languages of the
// given automata.
//
// Complexity: linear in total number of states.
func Concatenate(automatons ...*Automaton) (*Automaton, error) {
	result := NewAutomaton()

	// First pass: create all states
	for _, a := range automatons {
		if a.GetNumStates() == 0 {
			result.FinishState()
			return result, nil
		}
		numStates := a.GetNumStates()
		for s := 0; s < numStates; s++ {
			result.CreateState()
		}
	}

	// Second pass: add transitions, carefully linking accept
	// states of A to init state of next A:
	stateOffset := 0
	t := NewTransition()

	for i, a := range automatons {
		numStates := a.GetNumStates()

		var nextA *Automaton
		if i < len(automatons)-1 {
			nextA = automatons[i+1]
		}

		for s := 0; s < numStates; s++ {
			numTransitions := a.InitTransition(s, t)
			for j := 0; j < numTransitions; j++ {
				a.GetNextTransition(t)
				err := result.AddTransition(stateOffset+s, stateOffset+t.Dest, t.Min, t.Max)
				if err != nil {
					return nil, err
				}
			}

			if a.IsAccept(s) {
				followA := nextA
				followOffset := stateOffset
				upto := i + 1
				for {
					if followA != nil {
						// Adds a "virtual" epsilon transition:
						numTransitions = followA.InitTransition(0, t)
						for j := 0; j < numTransitions; j++ {
							followA.GetNextTransition(t)
							err := result.AddTransition(stateOffset+s, followOffset+numStates+t.Dest, t.Min, t.Max)
							if err != nil {
								return nil, err
							}
						}
						if followA.IsAccept(0) {
							// Keep chaining if followA accepts empty string
							followOffset += followA.GetNumStates()
							if upto == len(automatons)-1 {
								followA = nil
							} else {
								followA = automatons[upto+1]
							}
							upto++
						} else {
							break
						}
					} else {
						result.SetAccept(stateOffset+s, true)
						break
					}
				}
			}
		}

		stateOffset += numStates
	}

	if result.GetNumStates() == 0 {
		result.CreateState()
	}

	result.FinishState()

	return result, nil
}

// Optional Returns an automaton that accepts the union of the empty string and the language of
// the given automaton.
//
// Complexity: linear in number of states.
func Optional(a *Automaton) (*Automaton, error) {
	result := NewAutomaton()
	result.CreateState()
	result.SetAccept(0, true)
	if a.GetNumStates() > 0 {
		result.Copy(a)
		if err := result.AddEpsilon(0, 1); err != nil {
			return nil, err
		}
	}
	result.FinishState()
	return result, nil
}

// Repeat Returns an automaton that accepts the Kleene star (zero or more concatenated
// repetitions) of the language of the given automaton. Never modifies the input automaton
// language.
//
// Complexity: linear in number of states.
func Repeat(a *Automaton) (*Automaton, error) {
	if a.GetNumStates() == 0 {
		// Repeating the empty automata will still only accept the empty automata.
		return a, nil
	}
	builder := NewBuilder()
	builder.CreateState()
	builder.SetAccept(0, true)
	builder.Copy(a)

	t := NewTransition()
	count := a.InitTransition(0, t)
	for i := 0; i < count; i++ {
		a.GetNextTransition(t)
		builder.AddTransition(0, t.Dest+1, t.Min, t.Max)
	}

	numStates := a.GetNumStates()
	for s := 0; s < numStates; s++ {
		if a.IsAccept(s) {
			count = a.InitTransition(0, t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(t)
				builder.AddTransition(s+1, t.Dest+1, t.Min, t.Max)
			}
		}
	}

	return builder.Finish(), nil
}

// RepeatCount Returns an automaton that accepts count or more concatenated repetitions of the
// language of the given automaton.
//
// Complexity: linear in number of states and in count.
func RepeatCount(a *Automaton, count int) (*Automaton, error) {
	if count == 0 {
		return Repeat(a)
	}
	as := make([]*Automaton, 0, count+1)
	for count > 0 {
		count--
		as = append(as, a)
	}

	ra, err := Repeat(a)
	if err != nil {
		return nil, err
	}
	as = append(as, ra)

	return Concatenate(as...)
}

// RepeatRange Returns an automaton that accepts between min and max (including both) concatenated
// repetitions of the language of the given automaton.
//
// Complexity: linear in number of states and in min and max.
func RepeatRange(a *Automaton, min, max int) (*Automaton, error) {
	if min > max {
		return defaultAutomata.MakeEmpty(), nil
	}

	var b *Automaton
	var err error
	if min == 0 {
		b = defaultAutomata.MakeEmptyString()
	} else if min == 1 {
		b = NewAutomaton()
		b.Copy(a)
	} else {
		as := make([]*Automaton, 0, min)
		for i := 0; i < min; i++ {
			as = append(as, a)
		}
		b, err = Concatenate(as...)
		if err != nil {
			return nil, err
		}
	}

	prevAcceptStates := toSet(b, 0)
	builder := NewBuilder()
	builder.Copy(b)
	for i := min; i < max; i++ {
		numStates := builder.GetNumStates()
		builder.Copy(a)
		for s := range prevAcceptStates {
			builder.AddEpsilon(s, numStates)
		}
		prevAcceptStates = toSet(a, numStates)
	}

	return builder.Finish(), nil
}

func toSet(a *Automaton, offset int) map[int]struct{} {
	numStates := uint(a.GetNumStates())
	isAccept := a.getAcceptStates()
	result := make(map[int]struct{})
	for upto, ok := isAccept.NextSet(0); ok && upto < numStates; upto, ok = isAccept.NextSet(upto + 1) {
		result[offset+int(upto)] = struct{}{}
	}
	return result
}

// Returns a totalized automaton: out of every state there is a transition for every label,
// with a fresh non-accepting sink catching everything previously undefined.
func totalize(a *Automaton) (*Automaton, error) {
	result := NewAutomaton()
	numStates := a.GetNumStates()
	for i := 0; i < numStates; i++ {
		result.CreateState()
		result.SetAccept(i, a.IsAccept(i))
	}

	deadState := result.CreateState()
	err := result.AddTransition(deadState, deadState, 0, unicode.MaxRune)
	if err != nil {
		return nil, err
	}

	t := NewTransition()
	for i := 0; i < numStates; i++ {
		maxi := 0
		count := a.InitTransition(i, t)
		for j := 0; j < count; j++ {
			a.GetNextTransition(t)
			err := result.AddTransition(i, t.Dest, t.Min, t.Max)
			if err != nil {
				return nil, err
			}
			if t.Min > maxi {
				err := result.AddTransition(i, deadState, maxi, t.Min-1)
				if err != nil {
					return nil, err
				}
			}
			if t.Max+1 > maxi {
				maxi = t.Max + 1
			}
		}

		if maxi <= unicode.MaxRune {
			err := result.AddTransition(i, deadState, maxi, unicode.MaxRune)
			if err != nil {
				return nil, err
			}
		}
	}

	result.FinishState()
	return result, nil
}

// Complement Returns a (deterministic) automaton that accepts the complement of the language of
// the given automaton.
//
// Complexity: linear in number of states if already deterministic, and subject to the
// determinization work limit otherwise.
func Complement(a *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	a, err := DeterminizeAutomaton(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	a, err = totalize(a)
	if err != nil {
		return nil, err
	}
	numStates := a.GetNumStates()
	for p := 0; p < numStates; p++ {
		a.SetAccept(p, !a.IsAccept(p))
	}
	return RemoveDeadStates(a)
}

// Minus Returns a (deterministic) automaton that accepts the intersection of the language of a1
// and the complement of the language of a2. As a side-effect, the automata may be determinized,
// if not already deterministic.
//
// Complexity: quadratic in number of states.
func Minus(a1, a2 *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	if IsEmptyAutomaton(a1) || a1 == a2 {
		return defaultAutomata.MakeEmpty(), nil
	}
	if IsEmptyAutomaton(a2) {
		return a1, nil
	}
	c, err := Complement(a2, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return Intersection(a1, c)
}

type intPair struct {
	n1 int
	n2 int
}

// Intersection Returns an automaton that accepts the intersection of the languages of the given
// automata. Never modifies the input automata languages.
//
// Complexity: quadratic in number of states.
func Intersection(a1, a2 *Automaton) (*Automaton, error) {
	if a1 == a2 {
		return a1, nil
	}
	if a1.GetNumStates() == 0 {
		return a1, nil
	}
	if a2.GetNumStates() == 0 {
		return a2, nil
	}

	transitions1 := a1.getSortedTransitions()
	transitions2 := a2.getSortedTransitions()

	c := NewAutomaton()
	c.CreateState()

	worklist := make([]intPair, 0)
	newstates := make(map[intPair]int)

	p := intPair{0, 0}
	worklist = append(worklist, p)
	newstates[p] = 0

	for len(worklist) > 0 {
		p = worklist[0]
		worklist = worklist[1:]
		s := newstates[p]

		c.SetAccept(s, a1.IsAccept(p.n1) && a2.IsAccept(p.n2))

		t1 := transitions1[p.n1]
		t2 := transitions2[p.n2]

		for n1, b2 := 0, 0; n1 < len(t1); n1++ {
			for b2 < len(t2) && t2[b2].Max < t1[n1].Min {
				b2++
			}
			for n2 := b2; n2 < len(t2) && t1[n1].Max >= t2[n2].Min; n2++ {
				if t2[n2].Max < t1[n1].Min {
					continue
				}
				q := intPair{t1[n1].Dest, t2[n2].Dest}
				r, ok := newstates[q]
				if !ok {
					r = c.CreateState()
					worklist = append(worklist, q)
					newstates[q] = r
				}
				minLabel := max(t1[n1].Min, t2[n2].Min)
				maxLabel := min(t1[n1].Max, t2[n2].Max)
				if err := c.AddTransition(s, r, minLabel, maxLabel); err != nil {
					return nil, err
				}
			}
		}
	}

	c.FinishState()
	return RemoveDeadStates(c)
}

// SameLanguage Returns true if these two automata accept exactly the same language. This is a
// costly computation! Both automata must be determinized and have no dead states.
func SameLanguage(a1, a2 *Automaton) (bool, error) {
	if a1 == a2 {
		return true, nil
	}
	sub1, err := SubsetOf(a2, a1)
	if err != nil {
		return false, err
	}
	if !sub1 {
		return false, nil
	}
	return SubsetOf(a1, a2)
}

// SubsetOf Returns true if the language of a1 is a subset of the language of a2. Both automata
// must be determinized and must have no dead states.
//
// Complexity: quadratic in number of states.
func SubsetOf(a1, a2 *Automaton) (bool, error) {
	if a1.IsDeterministic() == false {
		return false, errors.New("a1 must be deterministic")
	}
	if a2.IsDeterministic() == false {
		return false, errors.New("a2 must be deterministic")
	}
	if hasDeadStatesFromInitial(a1) {
		return false, errors.New("a1 has dead states")
	}
	if hasDeadStatesFromInitial(a2) {
		return false, errors.New("a2 has dead states")
	}
	if a1.GetNumStates() == 0 {
		// Empty language is always a subset of any other language
		return true, nil
	}
	if a2.GetNumStates() == 0 {
		return IsEmptyAutomaton(a1), nil
	}

	// Check the subset relationship by walking the two automata in lockstep:
	transitions1 := a1.getSortedTransitions()
	transitions2 := a2.getSortedTransitions()

	worklist := make([]intPair, 0)
	visited := make(map[intPair]struct{})

	p := intPair{0, 0}
	worklist = append(worklist, p)
	visited[p] = struct{}{}

	for len(worklist) > 0 {
		p = worklist[0]
		worklist = worklist[1:]

		if a1.IsAccept(p.n1) && a2.IsAccept(p.n2) == false {
			return false, nil
		}

		t1 := transitions1[p.n1]
		t2 := transitions2[p.n2]

		for n1, b2 := 0, 0; n1 < len(t1); n1++ {
			for b2 < len(t2) && t2[b2].Max < t1[n1].Min {
				b2++
			}
			min1, max1 := t1[n1].Min, t1[n1].Max

			for n2 := b2; n2 < len(t2) && t1[n1].Max >= t2[n2].Min; n2++ {
				if t2[n2].Min > min1 {
					return false, nil
				}
				if t2[n2].Max < unicode.MaxRune {
					min1 = t2[n2].Max + 1
				} else {
					min1 = unicode.MaxRune
					max1 = 0
				}
				q := intPair{t1[n1].Dest, t2[n2].Dest}
				if _, ok := visited[q]; !ok {
					worklist = append(worklist, q)
					visited[q] = struct{}{}
				}
			}

			if min1 <= max1 {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		// Common case: no states
		return true
	}

	if a.IsAccept(0) == false && a.GetNumTransitionsWithState(0) == 0 {
		// Common case: just one initial state
		return true
	}
	if a.IsAccept(0) == true {
		// Apparently common case: it accepts the damned empty string
		return false
	}

	workList := make([]int, 0)
	seen := bitset.New(uint(a.GetNumStates()))
	workList = append(workList, 0)
	seen.Set(0)

	t := NewTransition()
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if a.IsAccept(state) {
			return false
		}

		count := a.InitTransition(state, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if seen.Test(uint(t.Dest)) == false {
				workList = append(workList, t.Dest)
				seen.Set(uint(t.Dest))
			}
		}
	}
	return true
}

// IsTotalAutomaton
// Returns true if the given automaton accepts all strings. The automaton must be minimized.
func IsTotalAutomaton(a *Automaton) bool {
	return IsTotalAutomatonRange(a, 0, unicode.MaxRune)
}

// IsTotalAutomatonRange
// Returns true if the given automaton accepts all strings for the specified min/max range of the
// alphabet. The automaton must be minimized.
func IsTotalAutomatonRange(a *Automaton, minAlphabet, maxAlphabet int) bool {
	if a.GetNumStates() == 1 && a.IsAccept(0) && a.GetNumTransitionsWithState(0) == 1 {
		t := NewTransition()
		a.GetTransition(0, 0, t)
		return t.Dest == 0 && t.Min == minAlphabet && t.Max == maxAlphabet
	}
	return false
}

// GetSingletonAutomaton
// If this automaton accepts a single input, return it. Else, return nil. The automaton must be
// deterministic.
func GetSingletonAutomaton(a *Automaton) ([]int, error) {
	if a.IsDeterministic() == false {
		return nil, errors.New("input automaton must be deterministic")
	}

	if a.GetNumStates() == 0 {
		return nil, nil
	}

	ints := make([]int, 0)
	visited := make(map[int]struct{})
	s := 0
	t := NewTransition()
	for {
		visited[s] = struct{}{}

		if a.IsAccept(s) == false {
			if a.GetNumTransitionsWithState(s) == 1 {
				a.GetTransition(s, 0, t)
				if _, seen := visited[t.Dest]; t.Min == t.Max && !seen {
					ints = append(ints, t.Min)
					s = t.Dest
					continue
				}
			}
		} else if a.GetNumTransitionsWithState(s) == 0 {
			return ints, nil
		}

		// Automaton accepts more than one string:
		return nil, nil
	}
}

// IsFiniteAutomaton
// Returns true if the language of this automaton is finite. The automaton must not have any
// dead states.
func IsFiniteAutomaton(a *Automaton) (bool, error) {
	if a.GetNumStates() == 0 {
		return true, nil
	}
	numStates := uint(a.GetNumStates())
	return isFinite(NewTransition(), a, 0, bitset.New(numStates), bitset.New(numStates), 0)
}

// Checks whether there is a loop containing state. (This is sufficient since there are never
// transitions to dead states.)
func isFinite(scratch *Transition, a *Automaton, state int, path, visited *bitset.BitSet, level int) (bool, error) {
	if level > maxRecursionLevel {
		return false, fmt.Errorf("input automaton is too large: %d", level)
	}
	path.Set(uint(state))
	numTransitions := a.InitTransition(state, scratch)
	for t := 0; t < numTransitions; t++ {
		a.GetTransition(state, t, scratch)
		if path.Test(uint(scratch.Dest)) {
			return false, nil
		}
		if !visited.Test(uint(scratch.Dest)) {
			finite, err := isFinite(scratch, a, scratch.Dest, path, visited, level+1)
			if err != nil {
				return false, err
			}
			if !finite {
				return false, nil
			}
		}
	}
	path.Clear(uint(state))
	visited.Set(uint(state))
	return true, nil
}

// GetCommonSuffixBytes
// Returns the longest byte string that is a suffix of all accepted strings. Worst case
// complexity: quadratic with the number of states+transitions.
func GetCommonSuffixBytes(a *Automaton) ([]byte, error) {
	// Reverse the language of the automaton, then reverse its common prefix.
	ra, err := Reverse(a)
	if err != nil {
		return nil, err
	}
	r, err := RemoveDeadStates(ra)
	if err != nil {
		return nil, err
	}

	ref, err := getCommonPrefixBytes(r)
	if err != nil {
		return nil, err
	}
	slices.Reverse(ref)
	return ref, nil
}

// Returns the longest string that is a prefix of all accepted strings and visits each state at
// most once. The automaton must not have dead states reachable from the initial state.
func getCommonPrefix(a *Automaton) (string, error) {
	if hasDeadStatesFromInitial(a) {
		return "", errors.New("input automaton has dead states")
	}
	if IsEmptyAutomaton(a) {
		return "", nil
	}

	builder := new(strings.Builder)
	scratch := NewTransition()
	visited := bitset.New(uint(a.GetNumStates()))
	current := bitset.New(uint(a.GetNumStates()))
	next := bitset.New(uint(a.GetNumStates()))
	current.Set(0) // start with initial state

algorithm:
	for {
		label := -1
		// Do a pass, stepping all current paths forward once:
		for state, ok := current.NextSet(0); ok; state, ok = current.NextSet(state + 1) {
			visited.Set(state)

			// If it is an accept state, we are done:
			if a.IsAccept(int(state)) {
				break algorithm
			}

			for transition := 0; transition < a.GetNumTransitionsWithState(int(state)); transition++ {
				a.GetTransition(int(state), transition, scratch)
				if label == -1 {
					label = scratch.Min
				}
				// Either a range of labels, or a label that doesn't match all the other paths this round:
				if scratch.Min != scratch.Max || scratch.Min != label {
					break algorithm
				}
				// A loop means the prefix would repeat forever:
				if visited.Test(uint(scratch.Dest)) {
					break algorithm
				}
				// Mark the target state for next iteration:
				next.Set(uint(scratch.Dest))
			}
		}

		// Add the label to the prefix:
		builder.WriteRune(rune(label))
		// Swap "current" with "next", clear "next":
		current, next = next, current
		next.ClearAll()
	}
	return builder.String(), nil
}

// Same as getCommonPrefix but for a byte-labeled (binary) automaton.
func getCommonPrefixBytes(a *Automaton) ([]byte, error) {
	prefix, err := getCommonPrefix(a)
	if err != nil {
		return nil, err
	}

	ref := make([]byte, 0, len(prefix))
	for _, ch := range prefix {
		if ch > 0xff {
			return nil, errors.New("automaton is not binary")
		}
		ref = append(ref, byte(ch))
	}

	return ref, nil
}

// Reverse Returns an automaton accepting the reverse language.
func Reverse(a *Automaton) (*Automaton, error) {
	return reverseWithInitials(a, nil)
}

func reverseWithInitials(a *Automaton, initialStates map[int]struct{}) (*Automaton, error) {
	if IsEmptyAutomaton(a) {
		return NewAutomaton(), nil
	}

	numStates := a.GetNumStates()

	// Build a new automaton with all edges reversed
	builder := NewBuilder()

	// Initial node; we'll add epsilon transitions in the end:
	builder.CreateState()

	for s := 0; s < numStates; s++ {
		builder.CreateState()
	}

	// Old initial state becomes new accept state:
	builder.SetAccept(1, true)

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		numTransitions := a.GetNumTransitionsWithState(s)
		a.InitTransition(s, t)
		for i := 0; i < numTransitions; i++ {
			a.GetNextTransition(t)
			builder.AddTransition(t.Dest+1, s+1, t.Min, t.Max)
		}
	}

	result := builder.Finish()

	acceptStates := a.getAcceptStates()
	for s, ok := acceptStates.NextSet(0); ok && int(s) < numStates; s, ok = acceptStates.NextSet(s + 1) {
		if err := result.AddEpsilon(0, int(s)+1); err != nil {
			return nil, err
		}
		if initialStates != nil {
			initialStates[int(s)+1] = struct{}{}
		}
	}

	result.FinishState()

	return result, nil
}

// RemoveDeadStates Returns an automaton accepting the same language, with no dead states (a
// state is "dead" if it is not reachable from the initial state or no accept state is reachable
// from it).
func RemoveDeadStates(a *Automaton) (*Automaton, error) {
	numStates := a.GetNumStates()
	liveSet := getLiveStates(a)

	mp := make([]int, numStates)

	result := NewAutomaton()
	for i := 0; i < numStates; i++ {
		if liveSet.Test(uint(i)) {
			mp[i] = result.CreateState()
			result.SetAccept(mp[i], a.IsAccept(i))
		}
	}

	t := NewTransition()

	for i := 0; i < numStates; i++ {
		if liveSet.Test(uint(i)) {
			numTransitions := a.InitTransition(i, t)
			// Filter out transitions to dead states:
			for j := 0; j < numTransitions; j++ {
				a.GetNextTransition(t)
				if liveSet.Test(uint(t.Dest)) {
					err := result.AddTransition(mp[i], mp[t.Dest], t.Min, t.Max)
					if err != nil {
						return nil, err
					}
				}
			}
		}
	}

	result.FinishState()

	// Self-check: the rebuild must not have left any dead state behind.
	if hasDeadStates(result) {
		return nil, errors.New("removeDeadStates left dead states behind")
	}
	return result, nil
}

// Returns true if this automaton has any states that cannot be reached from the initial state
// or cannot reach an accept state. Cost is O(numTransitions + numStates).
func hasDeadStates(a *Automaton) bool {
	liveStates := getLiveStates(a)
	return int(liveStates.Count()) != a.GetNumStates()
}

// Returns true if there are dead states reachable from an initial state.
func hasDeadStatesFromInitial(a *Automaton) bool {
	reachableFromInitial := getLiveStatesFromInitial(a)
	reachableFromAccept := getLiveStatesToAccept(a)
	return reachableFromInitial.Difference(reachableFromAccept).Count() != 0
}

// Returns true if there are dead states that reach an accept state.
func hasDeadStatesToAccept(a *Automaton) bool {
	reachableFromInitial := getLiveStatesFromInitial(a)
	reachableFromAccept := getLiveStatesToAccept(a)
	return reachableFromAccept.Difference(reachableFromInitial).Count() != 0
}

// Returns the set of live states. A state is "live" if an accept state is reachable from it and
// if it is reachable from the initial state.
func getLiveStates(a *Automaton) *bitset.BitSet {
	live := getLiveStatesFromInitial(a)
	live.InPlaceIntersection(getLiveStatesToAccept(a))
	return live
}

// Returns the set of states reachable from the initial state.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}
	workList := make([]int, 0)
	live.Set(0)
	workList = append(workList, 0)

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if live.Test(uint(t.Dest)) == false {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// Returns the set of states from which an accept state is reachable, by walking the reversed
// transition graph from every accept state.
func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	builder := NewBuilder()

	// NOTE: not quite the same thing as what reverse() does:
	t := NewTransition()
	numStates := a.GetNumStates()
	for s := 0; s < numStates; s++ {
		builder.CreateState()
	}
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			builder.AddTransition(t.Dest, s, t.Min, t.Max)
		}
	}
	a2 := builder.Finish()

	workList := make([]int, 0)
	live := bitset.New(uint(numStates))
	acceptBits := a.getAcceptStates()
	for s, ok := acceptBits.NextSet(0); ok && int(s) < numStates; s, ok = acceptBits.NextSet(s + 1) {
		live.Set(s)
		workList = append(workList, int(s))
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a2.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a2.GetNextTransition(t)
			if live.Test(uint(t.Dest)) == false {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// Minimize Returns a determinized automaton accepting the same language with all dead states
// removed. The result is not guaranteed to be state-minimal, but every remaining state is both
// reachable and useful.
func Minimize(a *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	if a.GetNumStates() == 0 || (a.IsAccept(0) == false && a.GetNumTransitionsWithState(0) == 0) {
		// Fastmatch for common case
		return NewAutomaton(), nil
	}
	d, err := DeterminizeAutomaton(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return RemoveDeadStates(d)
}
