package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_getCommonPrefix(t *testing.T) {
	t.Run("testCommonPrefixEmpty", func(t *testing.T) {
		prefix, err := getCommonPrefix(defaultAutomata.MakeEmpty())
		assert.Nil(t, err)
		assert.Equal(t, "", prefix)
	})

	t.Run("testCommonPrefixEmptyString", func(t *testing.T) {
		prefix, err := getCommonPrefix(defaultAutomata.MakeEmptyString())
		assert.Nil(t, err)
		assert.Equal(t, "", prefix)
	})

	t.Run("testCommonPrefixAny", func(t *testing.T) {
		a, err := defaultAutomata.MakeAnyString()
		assert.Nil(t, err)
		prefix, err := getCommonPrefix(a)
		assert.Nil(t, err)
		assert.Equal(t, "", prefix)
	})

	t.Run("testCommonPrefixRange", func(t *testing.T) {
		a, err := defaultAutomata.MakeCharRange('a', 'b')
		assert.Nil(t, err)
		prefix, err := getCommonPrefix(a)
		assert.Nil(t, err)
		assert.Equal(t, "", prefix)
	})

	t.Run("testCommonPrefixTrailingKleenStar", func(t *testing.T) {
		a1, err := defaultAutomata.MakeString("foo")
		assert.Nil(t, err)
		a2, err := defaultAutomata.MakeAnyString()
		assert.Nil(t, err)
		a, err := Concatenate(a1, a2)
		assert.Nil(t, err)
		prefix, err := getCommonPrefix(a)
		assert.Nil(t, err)
		assert.Equal(t, "foo", prefix)
	})

	t.Run("testCommonPrefixOptional", func(t *testing.T) {
		a := NewAutomaton()
		init := a.CreateState()
		medial := a.CreateState()
		fini := a.CreateState()
		a.SetAccept(fini, true)
		err := a.AddTransitionLabel(init, medial, 'm')
		assert.Nil(t, err)
		err = a.AddTransitionLabel(init, fini, 'm')
		assert.Nil(t, err)
		err = a.AddTransitionLabel(medial, fini, 'o')
		assert.Nil(t, err)
		a.FinishState()

		prefix, err := getCommonPrefix(a)
		assert.Nil(t, err)
		assert.Equal(t, "m", prefix)
	})
}

func TestAutomaton_Step(t *testing.T) {
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s1, true)
	err := a.AddTransition(s0, s1, 'a', 'z')
	assert.Nil(t, err)
	a.FinishState()

	assert.Equal(t, s1, a.Step(s0, 'a'))
	assert.Equal(t, s1, a.Step(s0, 'm'))
	assert.Equal(t, s1, a.Step(s0, 'z'))
	assert.Equal(t, -1, a.Step(s0, '0'))
	assert.Equal(t, -1, a.Step(s1, 'a'))
}

func TestAutomaton_Next(t *testing.T) {
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	assert.Nil(t, a.AddTransition(s0, s1, 'a', 'c'))
	assert.Nil(t, a.AddTransition(s0, s2, 'x', 'z'))
	a.FinishState()

	transition := NewTransition()
	transition.Source = s0
	transition.TransitionUpto = -1

	// Resume forward through the sorted transitions:
	assert.Equal(t, s1, a.Next(transition, 'b'))
	assert.Equal(t, s2, a.Next(transition, 'y'))
}

func TestAutomaton_GetStartPoints(t *testing.T) {
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s1, true)
	assert.Nil(t, a.AddTransition(s0, s1, 'b', 'd'))
	assert.Nil(t, a.AddTransition(s1, s1, 'x', 'z'))
	a.FinishState()

	assert.Equal(t, []int{0, 'b', 'd' + 1, 'x', 'z' + 1}, a.GetStartPoints())
}

func TestAutomaton_SameLabelTwoDests(t *testing.T) {
	// Two transitions with the same label to different states must survive the
	// per-state sort and reduce:
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s1, true)
	a.SetAccept(s2, true)
	assert.Nil(t, a.AddTransitionLabel(s0, s1, 'a'))
	assert.Nil(t, a.AddTransitionLabel(s0, s2, 'a'))
	a.FinishState()

	assert.Equal(t, 2, a.GetNumTransitionsWithState(s0))
	assert.False(t, a.IsDeterministic())
}

func TestAutomaton_MergeAdjacentRanges(t *testing.T) {
	// Adjacent and overlapping intervals to the same dest collapse into one:
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s1, true)
	assert.Nil(t, a.AddTransition(s0, s1, 'a', 'm'))
	assert.Nil(t, a.AddTransition(s0, s1, 'n', 'z'))
	assert.Nil(t, a.AddTransition(s0, s1, 'e', 'q'))
	a.FinishState()

	assert.Equal(t, 1, a.GetNumTransitionsWithState(s0))

	scratch := NewTransition()
	a.GetTransition(s0, 0, scratch)
	assert.Equal(t, int('a'), scratch.Min)
	assert.Equal(t, int('z'), scratch.Max)
	assert.True(t, a.IsDeterministic())
}

func TestAutomaton_AddTransitionOutOfOrder(t *testing.T) {
	// Going back to a state whose transitions were already finished is a caller bug:
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	assert.Nil(t, a.AddTransitionLabel(s0, s1, 'a'))
	assert.Nil(t, a.AddTransitionLabel(s1, s0, 'b'))
	err := a.AddTransitionLabel(s0, s1, 'c')
	assert.NotNil(t, err)
}

func TestAutomaton_Copy(t *testing.T) {
	src, err := defaultAutomata.MakeString("ab")
	assert.Nil(t, err)

	dst := NewAutomaton()
	dst.CreateState()
	dst.Copy(src)
	dst.FinishState()

	assert.Equal(t, 1+src.GetNumStates(), dst.GetNumStates())
	// Offsets shifted by one state:
	s := dst.Step(1, 'a')
	assert.Equal(t, 2, s)
	s = dst.Step(s, 'b')
	assert.Equal(t, 3, s)
	assert.True(t, dst.IsAccept(s))
}

func TestAutomaton_AddEpsilon(t *testing.T) {
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	assert.Nil(t, a.AddTransitionLabel(s1, s2, 'x'))
	a.FinishState()

	assert.Nil(t, a.AddEpsilon(s0, s1))
	a.FinishState()

	assert.Equal(t, s2, a.Step(s0, 'x'))
}
