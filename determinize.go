package automaton

import (
	"fmt"
	"sort"
)

// DefaultDeterminizeWorkLimit is the maximum amount of effort DeterminizeAutomaton will spend
// before giving up and returning TooComplexToDeterminizeError.
const DefaultDeterminizeWorkLimit = 10000

// TooComplexToDeterminizeError is returned when determinizing an automaton would require too
// much work. The caller should verify the NFA is sane, retry with a higher work limit, or fall
// back to non-deterministic execution.
type TooComplexToDeterminizeError struct {
	// Automaton is the NFA that could not be determinized within the limit.
	Automaton *Automaton
	// WorkLimit is the limit that was exceeded.
	WorkLimit int
}

func (e *TooComplexToDeterminizeError) Error() string {
	return fmt.Sprintf("determinizing automaton with %d states and %d transitions would require more than %d effort",
		e.Automaton.GetNumStates(), e.Automaton.GetNumTransitions(), e.WorkLimit)
}

// DeterminizeAutomaton Returns a deterministic automaton that accepts the same language as the
// given (possibly non-deterministic) automaton.
//
// workLimit bounds how much effort the subset construction is allowed to spend; if it is
// exceeded, a TooComplexToDeterminizeError is returned.
//
// Complexity: exponential in number of states in the worst case.
func DeterminizeAutomaton(a *Automaton, workLimit int) (*Automaton, error) {
	if a.IsDeterministic() {
		// Already determinized
		return a, nil
	}
	if a.GetNumStates() <= 1 {
		// Already determinized
		return a, nil
	}

	// Subset construction:
	b := NewBuilder()

	// Same initial values and state will always have the same hashCode
	initialSet := NewFrozenIntSet([]int{0}, uint64(mix32(0)+1), 0)

	// Create state 0:
	b.CreateState()

	worklist := make([]*FrozenIntSet, 0)
	newstate := NewHashMap[int]()

	worklist = append(worklist, initialSet)

	b.SetAccept(0, a.IsAccept(0))
	newstate.Set(initialSet, 0)

	// Like Set<Integer,PointTransitions>
	points := newPointTransitionSet()

	// Like HashMap<Integer,Integer>, maps state to its count
	statesSet := NewStateSet(5)

	t := NewTransition()

	effortSpent := 0

	// LUCENE-9981: approximate conversion from what Lucene used to measure as the
	// number of determinized states to the amount of work it now takes to compute them.
	maxEffort := workLimit * 10

	for len(worklist) > 0 {
		// TODO: to make this more efficient, we could keep track of the top 5 or 10 sets
		// which we could reuse instead of re-allocating on each round.
		s := worklist[0]
		worklist = worklist[1:]

		// LUCENE-9981: the approximation of the amount of work performed on each iteration
		// is the size of the current set of states being processed.
		effortSpent += s.Size()
		if effortSpent >= maxEffort {
			return nil, &TooComplexToDeterminizeError{Automaton: a, WorkLimit: workLimit}
		}

		// Collate all outgoing transitions by min/1+max:
		for _, s0 := range s.GetArray() {
			numTransitions := a.GetNumTransitionsWithState(s0)
			a.InitTransition(s0, t)
			for j := 0; j < numTransitions; j++ {
				a.GetNextTransition(t)
				points.add(t)
			}
		}

		if points.count == 0 {
			// No outgoing transitions -- skip it
			continue
		}

		points.sort()

		lastPoint := -1
		accCount := 0

		r := s.State()

		for i := 0; i < points.count; i++ {
			point := points.points[i].point

			if statesSet.Size() > 0 {
				q, ok := newstate.Get(statesSet)
				if !ok {
					q = b.CreateState()
					p := statesSet.Freeze(q)
					worklist = append(worklist, p)
					b.SetAccept(q, accCount > 0)
					newstate.Set(p, q)
				}

				b.AddTransition(r, q, lastPoint, point-1)
			}

			// Process transitions that end on this point, to remove them from the state set:
			transitions := points.points[i].ends.transitions
			limit := points.points[i].ends.next
			for j := 0; j < limit; j += 3 {
				dest := transitions[j]
				statesSet.Decr(dest)
				if a.IsAccept(dest) {
					accCount--
				}
			}
			points.points[i].ends.next = 0

			// Process transitions that start on this point, to add them to the state set:
			transitions = points.points[i].starts.transitions
			limit = points.points[i].starts.next
			for j := 0; j < limit; j += 3 {
				dest := transitions[j]
				statesSet.Incr(dest)
				if a.IsAccept(dest) {
					accCount++
				}
			}

			lastPoint = point
			points.points[i].starts.next = 0
		}
		points.reset()
		statesSet.Reset()

		if statesSet.Size() != 0 {
			return nil, fmt.Errorf("statesSet is not empty: %d", statesSet.Size())
		}
		if accCount != 0 {
			return nil, fmt.Errorf("accCount is not zero: %d", accCount)
		}
	}

	result := b.Finish()
	if result.IsDeterministic() == false {
		return nil, fmt.Errorf("determinize produced a non-deterministic automaton")
	}
	return result, nil
}

// Holds transitions sharing one boundary point, packed like the parent automaton's transition
// array: dest, min, max triples.
type pointTransitions struct {
	point  int
	ends   *transitionList
	starts *transitionList
}

func newPointTransitions() *pointTransitions {
	return &pointTransitions{
		ends:   &transitionList{},
		starts: &transitionList{},
	}
}

func (p *pointTransitions) reset(point int) {
	p.point = point
	p.ends.next = 0
	p.starts.next = 0
}

type transitionList struct {
	// dest, min, max
	transitions []int
	next        int
}

func (t *transitionList) add(tr *Transition) {
	if len(t.transitions) < t.next+3 {
		t.transitions = grow(t.transitions, t.next+3)
	}
	t.transitions[t.next] = tr.Dest
	t.transitions[t.next+1] = tr.Min
	t.transitions[t.next+2] = tr.Max
	t.next += 3
}

// Tracks the starting and ending points of each interval of labels seen while processing one
// subset state.
type pointTransitionSet struct {
	count      int
	points     []*pointTransitions
	dict       map[int]*pointTransitions
	useHashMap bool
}

// Above this size, the linear scan over points is replaced with a map lookup.
const hashMapCutover = 30

func newPointTransitionSet() *pointTransitionSet {
	return &pointTransitionSet{
		points: make([]*pointTransitions, 0, hashMapCutover),
		dict:   make(map[int]*pointTransitions),
	}
}

func (p *pointTransitionSet) next(point int) *pointTransitions {
	// 1st time we are seeing this point
	if p.count == len(p.points) {
		p.points = append(p.points, newPointTransitions())
	}
	points0 := p.points[p.count]
	p.count++
	points0.reset(point)
	return points0
}

func (p *pointTransitionSet) find(point int) *pointTransitions {
	if p.useHashMap {
		points0, ok := p.dict[point]
		if !ok {
			points0 = p.next(point)
			p.dict[point] = points0
		}
		return points0
	}

	for i := 0; i < p.count; i++ {
		if p.points[i].point == point {
			return p.points[i]
		}
	}

	points0 := p.next(point)
	if p.count == hashMapCutover {
		// Switch to hash map on the fly
		for i := 0; i < p.count; i++ {
			p.dict[p.points[i].point] = p.points[i]
		}
		p.useHashMap = true
	}
	return points0
}

func (p *pointTransitionSet) add(t *Transition) {
	p.find(t.Min).starts.add(t)
	p.find(1 + t.Max).ends.add(t)
}

func (p *pointTransitionSet) sort() {
	// Tim sort performs well on already sorted arrays:
	if p.count > 1 {
		sort.SliceStable(p.points[:p.count], func(i, j int) bool {
			return p.points[i].point < p.points[j].point
		})
	}
}

func (p *pointTransitionSet) reset() {
	if p.useHashMap {
		clear(p.dict)
		p.useHashMap = false
	}
	p.count = 0
}
