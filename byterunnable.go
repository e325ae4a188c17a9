package automaton

// ByteRunnable A runnable automaton accepting byte arrays.
type ByteRunnable interface {
	// Step Returns the state obtained by reading the given byte from the given state. Returns -1
	// if not obtaining any such state.
	Step(state, c int) int

	// IsAccept Returns whether the given state is an accept state.
	IsAccept(state int) bool

	// GetSize Returns number of states this automaton has, note this may not be an accurate
	// number in case of NFA
	GetSize() int

	// Run Returns true if the given byte array is accepted by this automaton.
	Run(s []byte) bool
}
