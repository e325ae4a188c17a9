package automaton

var _ ByteRunnable = &ByteRunAutomaton{}

// ByteRunAutomaton Automaton representation for matching []byte.
type ByteRunAutomaton struct {
	*RunAutomaton
}

// NewByteRunAutomaton Converts incoming automaton to byte-based (UTF32ToUTF8) first.
func NewByteRunAutomaton(a *Automaton) (*ByteRunAutomaton, error) {
	return NewByteRunAutomatonV1(a, false, DefaultDeterminizeWorkLimit)
}

// NewByteRunAutomatonV1 expert: if isBinary is true, the input is already byte-based.
func NewByteRunAutomatonV1(a *Automaton, isBinary bool, determinizeWorkLimit int) (*ByteRunAutomaton, error) {
	if !isBinary {
		var err error
		a, err = NewUTF32ToUTF8().Convert(a)
		if err != nil {
			return nil, err
		}
	}
	ra, err := NewRunAutomatonV1(a, 256, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return &ByteRunAutomaton{RunAutomaton: ra}, nil
}

// Run Returns true if the given byte array is accepted by this automaton.
func (r *ByteRunAutomaton) Run(s []byte) bool {
	p := 0
	for _, b := range s {
		p = r.Step(p, int(b)&0xFF)
		if p == -1 {
			return false
		}
	}
	return r.accept.Test(uint(p))
}
