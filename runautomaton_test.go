package automaton

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestRunAutomaton_Step(t *testing.T) {
	a := NewAutomaton()
	s0 := a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s1, true)
	assert.Nil(t, a.AddTransition(s0, s1, 'a', 'z'))
	a.FinishState()

	r, err := NewRunAutomaton(a, unicode.MaxRune+1)
	assert.Nil(t, err)

	next := r.Step(0, 'a')
	assert.NotEqual(t, -1, next)
	assert.True(t, r.IsAccept(next))
	assert.Equal(t, next, r.Step(0, 'z'))
	assert.Equal(t, -1, r.Step(0, '0'))
	assert.Equal(t, -1, r.Step(next, 'a'))
}

func TestRunAutomaton_CharIntervals(t *testing.T) {
	a, err := defaultAutomata.MakeCharRange('b', 'd')
	assert.Nil(t, err)

	r, err := NewRunAutomaton(a, unicode.MaxRune+1)
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 'b', 'd' + 1}, r.GetCharIntervals())
}

func TestRunAutomaton_NonASCIILabels(t *testing.T) {
	// Labels past the classmap fast path go through the binary search:
	a, err := defaultAutomata.MakeChar(0x1F600)
	assert.Nil(t, err)

	r, err := NewRunAutomaton(a, unicode.MaxRune+1)
	assert.Nil(t, err)

	next := r.Step(0, 0x1F600)
	assert.NotEqual(t, -1, next)
	assert.True(t, r.IsAccept(next))
	assert.Equal(t, -1, r.Step(0, 0x1F601))
}

func TestByteRunAutomaton(t *testing.T) {
	a, err := defaultAutomata.MakeString("日本")
	assert.Nil(t, err)

	r, err := NewByteRunAutomaton(a)
	assert.Nil(t, err)

	assert.True(t, r.Run([]byte("日本")))
	assert.False(t, r.Run([]byte("日")))
	assert.False(t, r.Run([]byte("日本a")))
	assert.False(t, r.Run(nil))
}

func TestCharacterRunAutomaton(t *testing.T) {
	a1, err := defaultAutomata.MakeString("so")
	assert.Nil(t, err)
	a2, err := defaultAutomata.MakeAnyString()
	assert.Nil(t, err)
	a, err := Concatenate(a1, a2)
	assert.Nil(t, err)

	r, err := NewCharacterRunAutomaton(a)
	assert.Nil(t, err)

	assert.True(t, r.Run("so"))
	assert.True(t, r.Run("sounds"))
	assert.False(t, r.Run("s"))
	assert.False(t, r.Run("o"))
}
