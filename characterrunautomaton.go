package automaton

import "unicode"

// CharacterRunAutomaton Automaton representation for matching char[].
type CharacterRunAutomaton struct {
	*RunAutomaton
}

// NewCharacterRunAutomaton Construct with a default number of determinized states.
func NewCharacterRunAutomaton(a *Automaton) (*CharacterRunAutomaton, error) {
	return NewCharacterRunAutomatonV1(a, DefaultDeterminizeWorkLimit)
}

// NewCharacterRunAutomatonV1 Constructor specifying determinizeWorkLimit.
func NewCharacterRunAutomatonV1(a *Automaton, determinizeWorkLimit int) (*CharacterRunAutomaton, error) {
	ra, err := NewRunAutomatonV1(a, unicode.MaxRune+1, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return &CharacterRunAutomaton{RunAutomaton: ra}, nil
}

// Run Returns true if the given string is accepted by this automaton.
func (r *CharacterRunAutomaton) Run(s string) bool {
	p := 0
	for _, ch := range s {
		p = r.Step(p, int(ch))
		if p == -1 {
			return false
		}
	}
	return r.accept.Test(uint(p))
}
