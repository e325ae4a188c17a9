package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Finish(t *testing.T) {
	// Transitions can be added in any order; Finish sorts them per state:
	b := NewBuilder()
	s0 := b.CreateState()
	s1 := b.CreateState()
	s2 := b.CreateState()
	b.SetAccept(s2, true)
	b.AddTransitionLabel(s1, s2, 'o')
	b.AddTransitionLabel(s0, s1, 'f')

	a := b.Finish()

	assert.Equal(t, 3, a.GetNumStates())
	assert.Equal(t, 2, a.GetNumTransitions())
	assert.True(t, Run(a, "fo"))
	assert.False(t, Run(a, "f"))
	assert.False(t, Run(a, "of"))
}

func TestBuilder_AddEpsilon(t *testing.T) {
	b := NewBuilder()
	s0 := b.CreateState()
	s1 := b.CreateState()
	s2 := b.CreateState()
	b.SetAccept(s2, true)
	b.AddTransitionLabel(s1, s2, 'x')
	b.AddEpsilon(s0, s1)

	a := b.Finish()

	assert.True(t, Run(a, "x"))
	assert.False(t, Run(a, ""))
}

func TestBuilder_AddEpsilonAcceptCarries(t *testing.T) {
	b := NewBuilder()
	s0 := b.CreateState()
	s1 := b.CreateState()
	b.SetAccept(s1, true)
	b.AddEpsilon(s0, s1)

	a := b.Finish()

	assert.True(t, a.IsAccept(s0))
}

func TestBuilder_Copy(t *testing.T) {
	src, err := defaultAutomata.MakeString("hi")
	assert.Nil(t, err)

	b := NewBuilder()
	b.CreateState()
	b.Copy(src)
	a := b.Finish()

	assert.Equal(t, 1+src.GetNumStates(), a.GetNumStates())
	s := a.Step(1, 'h')
	assert.Equal(t, 2, s)
	s = a.Step(s, 'i')
	assert.True(t, a.IsAccept(s))
}

func TestBuilder_EmptyFinish(t *testing.T) {
	b := NewBuilder()
	a := b.Finish()
	assert.Equal(t, 0, a.GetNumStates())
}
