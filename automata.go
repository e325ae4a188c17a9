package automaton

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Automata Construction of basic automata.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() *Automaton {
	a := NewAutomaton()
	a.FinishState()
	return a
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *Automaton {
	a := NewAutomaton()
	a.CreateState()
	a.SetAccept(0, true)
	return a
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (*Automata) MakeAnyString() (*Automaton, error) {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.AddTransition(s, s, 0, unicode.MaxRune); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeAnyBinary
// Returns a new (deterministic) automaton that accepts all binary terms.
func (*Automata) MakeAnyBinary() (*Automaton, error) {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.AddTransition(s, s, 0, math.MaxUint8); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeNonEmptyBinary
// Returns a new (deterministic) automaton that accepts all binary terms except the empty one.
func (*Automata) MakeNonEmptyBinary() (*Automaton, error) {
	a := NewAutomaton()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	if err := a.AddTransition(s1, s2, 0, math.MaxUint8); err != nil {
		return nil, err
	}
	if err := a.AddTransition(s2, s2, 0, math.MaxUint8); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeAnyChar
// Returns a new (deterministic) automaton that accepts any single codepoint.
func (m *Automata) MakeAnyChar() (*Automaton, error) {
	return m.MakeCharRange(0, unicode.MaxRune)
}

// MakeChar
// Returns a new (deterministic) automaton that accepts a single codepoint of the given value.
func (m *Automata) MakeChar(c int) (*Automaton, error) {
	return m.MakeCharRange(c, c)
}

// MakeCharRange
// Returns a new (deterministic) automaton that accepts a single codepoint whose value is in the
// given interval (including both end points).
func (m *Automata) MakeCharRange(min, max int) (*Automaton, error) {
	if min > max {
		return m.MakeEmpty(), nil
	}
	a := NewAutomaton()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	if err := a.AddTransition(s1, s2, min, max); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func (*Automata) MakeString(s string) (*Automaton, error) {
	a := NewAutomaton()
	lastState := a.CreateState()
	for _, r := range s {
		state := a.CreateState()
		if err := a.AddTransitionLabel(lastState, state, int(r)); err != nil {
			return nil, err
		}
		lastState = state
	}

	a.SetAccept(lastState, true)
	a.FinishState()

	return a, nil
}

// MakeStringFromInts
// Returns a new (deterministic) automaton that accepts the single given string from the
// specified unicode code points.
func (*Automata) MakeStringFromInts(word []int) (*Automaton, error) {
	a := NewAutomaton()
	lastState := a.CreateState()
	for _, cp := range word {
		state := a.CreateState()
		if err := a.AddTransitionLabel(lastState, state, cp); err != nil {
			return nil, err
		}
		lastState = state
	}

	a.SetAccept(lastState, true)
	a.FinishState()

	return a, nil
}

// MakeBinary
// Returns a new (deterministic) automaton that accepts the single given binary term.
func (*Automata) MakeBinary(term []byte) (*Automaton, error) {
	a := NewAutomaton()
	lastState := a.CreateState()
	for _, label := range term {
		state := a.CreateState()
		if err := a.AddTransitionLabel(lastState, state, int(label)); err != nil {
			return nil, err
		}
		lastState = state
	}

	a.SetAccept(lastState, true)
	a.FinishState()

	return a, nil
}

// MakeBinaryInterval
// Creates a new deterministic, minimal automaton accepting all binary terms in the specified
// interval. Note that unlike MakeDecimalInterval, the returned automaton is infinite, because
// terms behave like floating point numbers leading with a decimal point. However, in the special
// case where min == max, and both are inclusive, the automaton is finite and accepts exactly the
// one term.
//
// An open-ended bound (nil min or max) must be inclusive.
func (m *Automata) MakeBinaryInterval(min []byte, minInclusive bool, max []byte, maxInclusive bool) (*Automaton, error) {
	if min == nil && minInclusive == false {
		return nil, errors.New("minInclusive must be true when min is nil (open ended)")
	}
	if max == nil && maxInclusive == false {
		return nil, errors.New("maxInclusive must be true when max is nil (open ended)")
	}

	if min == nil {
		min = []byte{}
		minInclusive = true
	}

	var cmp int
	if max != nil {
		cmp = bytes.Compare(min, max)
	} else {
		cmp = -1
		if len(min) == 0 {
			if minInclusive {
				return m.MakeAnyBinary()
			}
			return m.MakeNonEmptyBinary()
		}
	}

	if cmp == 0 {
		if minInclusive == false || maxInclusive == false {
			return m.MakeEmpty(), nil
		}
		return m.MakeBinary(min)
	} else if cmp > 0 {
		// max < min
		return m.MakeEmpty(), nil
	}

	a := NewAutomaton()
	startState := a.CreateState()
	sinkState := a.CreateState()
	a.SetAccept(sinkState, true)

	// This state accepts all suffixes:
	if err := a.AddTransition(sinkState, sinkState, 0, 0xff); err != nil {
		return nil, err
	}

	equalPrefix := true
	lastState := startState
	firstMaxState := -1
	sharedPrefixLength := 0

	for i := 0; i < len(min); i++ {
		minLabel := int(min[i])

		var maxLabel int
		if max != nil && equalPrefix && i < len(max) {
			maxLabel = int(max[i])
		} else {
			maxLabel = -1
		}

		var nextState int
		if minInclusive && i == len(min)-1 && (equalPrefix == false || minLabel != maxLabel) {
			nextState = sinkState
		} else {
			nextState = a.CreateState()
		}

		if equalPrefix {
			if minLabel == maxLabel {
				// Still in shared prefix
				if err := a.AddTransitionLabel(lastState, nextState, minLabel); err != nil {
					return nil, err
				}
				sharedPrefixLength++
			} else if max == nil {
				equalPrefix = false
				sharedPrefixLength = 0
				if err := a.AddTransition(lastState, sinkState, minLabel+1, 0xff); err != nil {
					return nil, err
				}
				if err := a.AddTransitionLabel(lastState, nextState, minLabel); err != nil {
					return nil, err
				}
			} else {
				// This is the first point where min & max diverge:
				if err := a.AddTransitionLabel(lastState, nextState, minLabel); err != nil {
					return nil, err
				}

				if maxLabel > minLabel+1 {
					if err := a.AddTransition(lastState, sinkState, minLabel+1, maxLabel-1); err != nil {
						return nil, err
					}
				}

				// Now fork off path for max:
				if maxInclusive || i < len(max)-1 {
					firstMaxState = a.CreateState()
					if i < len(max)-1 {
						a.SetAccept(firstMaxState, true)
					}
					if err := a.AddTransitionLabel(lastState, firstMaxState, maxLabel); err != nil {
						return nil, err
					}
				}
				equalPrefix = false
				sharedPrefixLength = 0
			}
		} else {
			// OK, already diverged:
			if err := a.AddTransitionLabel(lastState, nextState, minLabel); err != nil {
				return nil, err
			}
			if minLabel < 0xff {
				if err := a.AddTransition(lastState, sinkState, minLabel+1, 0xff); err != nil {
					return nil, err
				}
			}
		}
		lastState = nextState
	}

	// Accept any suffix appended to the min term:
	if equalPrefix == false && lastState != sinkState && lastState != startState {
		if err := a.AddTransition(lastState, sinkState, 0, 0xff); err != nil {
			return nil, err
		}
	}

	if minInclusive {
		// Accept exactly the min term:
		a.SetAccept(lastState, true)
	}

	if max != nil {
		// Now do max:
		if firstMaxState == -1 {
			// Min was a full prefix of max
			sharedPrefixLength = len(min)
		} else {
			lastState = firstMaxState
			sharedPrefixLength++
		}
		for i := sharedPrefixLength; i < len(max); i++ {
			maxLabel := int(max[i])
			if maxLabel > 0 {
				if err := a.AddTransition(lastState, sinkState, 0, maxLabel-1); err != nil {
					return nil, err
				}
			}
			if maxInclusive || i < len(max)-1 {
				nextState := a.CreateState()
				if i < len(max)-1 {
					a.SetAccept(nextState, true)
				}
				if err := a.AddTransitionLabel(lastState, nextState, maxLabel); err != nil {
					return nil, err
				}
				lastState = nextState
			}
		}

		if maxInclusive {
			a.SetAccept(lastState, true)
		}
	}

	a.FinishState()

	return a, nil
}

// MakeDecimalInterval
// Returns a new automaton that accepts strings representing decimal (base 10) non-negative
// integers in the given interval.
//
// min: minimal value of interval
// max: maximal value of interval (both end points are included in the interval)
// digits: if > 0, use fixed number of digits (strings must be prefixed by 0's to obtain the
// right length) – otherwise, the number of digits is variable (but with no leading 0's)
func (*Automata) MakeDecimalInterval(min, max, digits int) (*Automaton, error) {
	x := strconv.Itoa(min)
	y := strconv.Itoa(max)

	if min > max || (digits > 0 && len(y) > digits) {
		return nil, fmt.Errorf("invalid interval [%d, %d] with digits=%d", min, max, digits)
	}

	var d int
	if digits > 0 {
		d = digits
	} else {
		d = len(y)
	}

	bx := new(bytes.Buffer)
	for i := len(x); i < d; i++ {
		bx.WriteByte('0')
	}
	bx.WriteString(x)
	x = bx.String()

	by := new(bytes.Buffer)
	for i := len(y); i < d; i++ {
		by.WriteByte('0')
	}
	by.WriteString(y)
	y = by.String()

	builder := NewBuilder()

	if digits <= 0 {
		// Reserve the "real" initial state:
		builder.CreateState()
	}

	initials := make([]int, 0)

	between(builder, x, y, 0, &initials, digits <= 0)

	a1 := builder.Finish()

	if digits <= 0 {
		// Wire the entry points that skip the padded leading zeros:
		for _, p := range initials {
			if err := a1.AddEpsilon(0, p); err != nil {
				return nil, err
			}
		}
		a1.FinishState()
	}

	return a1, nil
}

// Accepts any string of digits with the same remaining length as x.
func anyOfRightLength(builder *Builder, x string, n int) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		builder.AddTransition(s, anyOfRightLength(builder, x, n+1), '0', '9')
	}
	return s
}

// Accepts any string of digits of the remaining length of x that is numerically >= x's suffix.
func atLeast(builder *Builder, x string, n int, initials *[]int, zeros bool) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		if zeros {
			*initials = append(*initials, s)
		}
		c := int(x[n])
		builder.AddTransitionLabel(s, atLeast(builder, x, n+1, initials, zeros && c == '0'), c)
		if c < '9' {
			builder.AddTransition(s, anyOfRightLength(builder, x, n+1), c+1, '9')
		}
	}
	return s
}

// Accepts any string of digits of the remaining length of y that is numerically <= y's suffix.
func atMost(builder *Builder, x string, n int) int {
	s := builder.CreateState()
	if len(x) == n {
		builder.SetAccept(s, true)
	} else {
		c := int(x[n])
		builder.AddTransitionLabel(s, atMost(builder, x, n+1), c)
		if c > '0' {
			builder.AddTransition(s, anyOfRightLength(builder, x, n+1), '0', c-1)
		}
	}
	return s
}

// Accepts any string of digits between x's and y's suffixes, sharing the anyOfRightLength
// automata by right-aligning digit positions.
func between(builder *Builder, x, y string, n int, initials *[]int, zeros bool) int {
	s := builder.CreateState()
	if len(x) == n {
		if len(y) == n {
			builder.SetAccept(s, true)
		}
	} else {
		if zeros {
			*initials = append(*initials, s)
		}
		cx := int(x[n])
		cy := int(y[n])
		if cx == cy {
			builder.AddTransitionLabel(s, between(builder, x, y, n+1, initials, zeros && cx == '0'), cx)
		} else {
			// cx < cy
			builder.AddTransitionLabel(s, atLeast(builder, x, n+1, initials, zeros && cx == '0'), cx)
			builder.AddTransitionLabel(s, atMost(builder, y, n+1), cy)
			if cx+1 < cy {
				builder.AddTransition(s, anyOfRightLength(builder, x, n+1), cx+1, cy-1)
			}
		}
	}
	return s
}

// MakeStringUnion
// Returns a new (deterministic and minimal) automaton that accepts the union of the given
// collection of UTF-8 encoded strings. The strings must be binary-sorted.
func (*Automata) MakeStringUnion(utf8Strings [][]byte) (*Automaton, error) {
	if len(utf8Strings) == 0 {
		return defaultAutomata.MakeEmpty(), nil
	}
	return buildStringUnion(utf8Strings, false)
}

// MakeBinaryStringUnion
// Returns a new (deterministic and minimal) automaton over the raw byte alphabet that accepts
// the union of the given collection of byte strings. The strings must be binary-sorted.
func (*Automata) MakeBinaryStringUnion(terms [][]byte) (*Automaton, error) {
	if len(terms) == 0 {
		return defaultAutomata.MakeEmpty(), nil
	}
	return buildStringUnion(terms, true)
}
