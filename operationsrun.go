package automaton

// Run Returns true if the given string is accepted by the automaton. The input must be
// deterministic.
//
// Complexity: linear in the length of the string.
//
// Note: for full performance, use the RunAutomaton class.
func Run(a *Automaton, s string) bool {
	state := 0
	for _, v := range s {
		nextState := a.Step(state, int(v))
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}

// RunInts Returns true if the given codepoints are accepted by the automaton. The input must be
// deterministic.
//
// Complexity: linear in the length of the input.
func RunInts(a *Automaton, s []int) bool {
	state := 0
	for _, v := range s {
		nextState := a.Step(state, v)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}
