package automaton

import (
	"errors"
	"strings"
)

// AutomatonKind indicates if an automaton matches a known simple pattern.
type AutomatonKind int

const (
	// KindNone Automaton that accepts no strings.
	KindNone AutomatonKind = iota
	// KindAll Automaton that accepts all possible strings.
	KindAll
	// KindSingle Automaton that accepts only a single fixed string.
	KindSingle
	// KindNormal Catch-all for any other automata.
	KindNormal
)

// CompiledAutomaton Immutable class holding compiled details for a given Automaton. The Automaton
// could either be deterministic or non-deterministic; for deterministic ones, it must not have
// dead states but it is not necessarily minimal.
type CompiledAutomaton struct {
	// Kind If simplify is true this will be the "simplified" kind; else, this is NORMAL.
	Kind AutomatonKind

	// Term For KindSingle this is the singleton term.
	Term []byte

	// RunAutomaton Matcher for quickly determining if a byte[] is accepted.
	// Only valid for KindNormal.
	RunAutomaton ByteRunnable

	// Automaton Two dimensional array of transitions, indexed by state number for traversal.
	// The state numbering is consistent with RunAutomaton. Only valid for KindNormal.
	Automaton *Automaton

	// TransitionAccessor Walks the automaton transition by transition. Only valid for KindNormal.
	TransitionAccessor TransitionAccessor

	// CommonSuffixRef Shared common suffix accepted by the automaton. Only valid for KindNormal,
	// and only when the automaton accepts an infinite language. This will be nil if the common
	// prefix is the empty string.
	CommonSuffixRef []byte

	// Finite Indicates if the automaton accepts a finite set of strings.
	Finite bool

	// Which state, if any, accepts all suffixes, else -1.
	sinkState int
}

type compiledAutomatonOptions struct {
	finite               *bool
	simplify             bool
	isBinary             bool
	determinizeWorkLimit int
}

type CompiledAutomatonOption func(*compiledAutomatonOptions)

// WithFinite Supplies the finiteness of the automaton when the caller already knows it,
// skipping the check.
func WithFinite(finite bool) CompiledAutomatonOption {
	return func(o *compiledAutomatonOptions) {
		o.finite = &finite
	}
}

// WithSimplify Controls whether the automaton is tested for the simple NONE / ALL / SINGLE
// forms. On by default.
func WithSimplify(simplify bool) CompiledAutomatonOption {
	return func(o *compiledAutomatonOptions) {
		o.simplify = simplify
	}
}

// WithBinary Marks the incoming automaton as already byte-based, skipping the UTF32 to UTF8
// conversion.
func WithBinary(isBinary bool) CompiledAutomatonOption {
	return func(o *compiledAutomatonOptions) {
		o.isBinary = isBinary
	}
}

// WithWorkLimit Overrides the default determinization work limit.
func WithWorkLimit(workLimit int) CompiledAutomatonOption {
	return func(o *compiledAutomatonOptions) {
		o.determinizeWorkLimit = workLimit
	}
}

// NewCompiledAutomaton Create this, passing simplify=true, so that we try to simplify the
// automaton.
func NewCompiledAutomaton(a *Automaton, options ...CompiledAutomatonOption) (*CompiledAutomaton, error) {
	opts := &compiledAutomatonOptions{
		simplify:             true,
		determinizeWorkLimit: DefaultDeterminizeWorkLimit,
	}
	for _, option := range options {
		option(opts)
	}

	if a.GetNumStates() == 0 {
		a = NewAutomaton()
		a.CreateState()
	}

	c := &CompiledAutomaton{sinkState: -1}

	if opts.simplify {
		// Test whether the automaton is a "simple" form and if so, don't create a runAutomaton:
		if IsEmptyAutomaton(a) {
			// Matches nothing
			c.Kind = KindNone
			return c, nil
		}

		var isTotal bool
		if opts.isBinary {
			isTotal = IsTotalAutomatonRange(a, 0, 0xFF)
		} else {
			isTotal = IsTotalAutomaton(a)
		}
		if isTotal {
			// Matches all possible strings
			c.Kind = KindAll
			return c, nil
		}

		if a.IsDeterministic() {
			singleton, err := GetSingletonAutomaton(a)
			if err != nil {
				return nil, err
			}
			if singleton != nil {
				// Matches a fixed string
				c.Kind = KindSingle
				if opts.isBinary {
					term := make([]byte, len(singleton))
					for i, v := range singleton {
						if v > 0xFF {
							return nil, errors.New("automaton is not binary")
						}
						term[i] = byte(v)
					}
					c.Term = term
				} else {
					sb := new(strings.Builder)
					for _, cp := range singleton {
						sb.WriteRune(rune(cp))
					}
					c.Term = []byte(sb.String())
				}
				return c, nil
			}
		}
	}

	c.Kind = KindNormal

	if opts.finite != nil {
		c.Finite = *opts.finite
	} else {
		finite, err := IsFiniteAutomaton(a)
		if err != nil {
			return nil, err
		}
		c.Finite = finite
	}

	var binary *Automaton
	if opts.isBinary {
		// Caller already built binary automaton themselves:
		binary = a
	} else {
		// Incoming automaton is unicode:
		var err error
		binary, err = NewUTF32ToUTF8().Convert(a)
		if err != nil {
			return nil, err
		}
	}

	// Compute a common suffix for infinite automatons, this is an optimization for
	// "leading wildcard" style matching. The calculation is expensive, so it is
	// skipped for large automatons.
	if c.Finite == false && a.GetNumTransitions()+a.GetNumStates() <= 1000 {
		suffix, err := GetCommonSuffixBytes(binary)
		if err != nil {
			return nil, err
		}
		if len(suffix) > 0 {
			c.CommonSuffixRef = suffix
		}
	}

	if a.IsDeterministic() == false && binary.IsDeterministic() == false {
		// Not deterministic: run it as an NFA, computing the determinized states lazily.
		c.Automaton = binary
		nfa := NewNFARunAutomatonV1(binary, 0xFF+1)
		c.RunAutomaton = nfa
		c.TransitionAccessor = nfa
		return c, nil
	}

	determinized, err := DeterminizeAutomaton(binary, opts.determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	run, err := NewByteRunAutomatonV1(determinized, true, opts.determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	c.RunAutomaton = run
	c.Automaton = determinized
	c.TransitionAccessor = determinized
	c.sinkState = findSinkState(determinized)
	return c, nil
}

// GetSinkState Returns the state, if any, that accepts all suffixes, else -1.
func (c *CompiledAutomaton) GetSinkState() int {
	return c.sinkState
}

// Finds a state that accepts all suffixes: an accept state with a transition to itself
// covering every byte.
func findSinkState(a *Automaton) int {
	numStates := a.GetNumStates()
	t := NewTransition()
	foundState := -1
	for s := 0; s < numStates; s++ {
		if a.IsAccept(s) {
			count := a.InitTransition(s, t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(t)
				if t.Dest == s && t.Min == 0 && t.Max == 0xFF {
					foundState = s
					break
				}
			}
			if foundState != -1 {
				break
			}
		}
	}
	return foundState
}
