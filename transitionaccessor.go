package automaton

// TransitionAccessor Exposes the transitions of a state, for walking a (compiled) automaton
// transition by transition.
type TransitionAccessor interface {
	// InitTransition Initialize the provided Transition to iterate through all transitions leaving
	// the specified state. You must call GetNextTransition to get each transition. Returns the
	// number of transitions leaving the state.
	InitTransition(state int, t *Transition) int

	// GetNextTransition Iterate to the next transition after the provided one.
	GetNextTransition(t *Transition)

	// GetNumTransitionsWithState How many transitions the given state has.
	GetNumTransitionsWithState(state int) int

	// GetTransition Fill the provided Transition with the index'th transition leaving the
	// specified state.
	GetTransition(state, index int, t *Transition)
}
