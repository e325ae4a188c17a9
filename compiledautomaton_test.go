package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompiledAutomaton_None(t *testing.T) {
	c, err := NewCompiledAutomaton(defaultAutomata.MakeEmpty())
	assert.Nil(t, err)
	assert.Equal(t, KindNone, c.Kind)
	assert.Nil(t, c.RunAutomaton)
	assert.Nil(t, c.Term)
}

func TestCompiledAutomaton_All(t *testing.T) {
	a, err := defaultAutomata.MakeAnyString()
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, KindAll, c.Kind)

	// Binary automata are total over the byte alphabet instead:
	b, err := defaultAutomata.MakeAnyBinary()
	assert.Nil(t, err)
	c, err = NewCompiledAutomaton(b, WithBinary(true))
	assert.Nil(t, err)
	assert.Equal(t, KindAll, c.Kind)
}

func TestCompiledAutomaton_Single(t *testing.T) {
	a, err := defaultAutomata.MakeString("foo")
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, KindSingle, c.Kind)
	assert.Equal(t, []byte("foo"), c.Term)
	assert.Nil(t, c.RunAutomaton)

	// Non-ASCII singleton terms come back UTF-8 encoded:
	a, err = defaultAutomata.MakeString("日本")
	assert.Nil(t, err)
	c, err = NewCompiledAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, KindSingle, c.Kind)
	assert.Equal(t, []byte("日本"), c.Term)
}

func TestCompiledAutomaton_SimplifyDisabled(t *testing.T) {
	a, err := defaultAutomata.MakeString("foo")
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a, WithSimplify(false))
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)
	assert.NotNil(t, c.RunAutomaton)
	assert.True(t, c.RunAutomaton.Run([]byte("foo")))
	assert.False(t, c.RunAutomaton.Run([]byte("fo")))
	assert.True(t, c.Finite)
}

func TestCompiledAutomaton_NormalPrefix(t *testing.T) {
	// foo.* — infinite, deterministic, with a sink state accepting all suffixes.
	prefix, err := defaultAutomata.MakeString("foo")
	assert.Nil(t, err)
	any, err := defaultAutomata.MakeAnyString()
	assert.Nil(t, err)
	a, err := Concatenate(prefix, any)
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)
	assert.False(t, c.Finite)

	assert.True(t, c.RunAutomaton.Run([]byte("foo")))
	assert.True(t, c.RunAutomaton.Run([]byte("foobar")))
	assert.False(t, c.RunAutomaton.Run([]byte("fo")))
}

func TestCompiledAutomaton_SinkState(t *testing.T) {
	// foo.* over raw bytes: the trailing loop covers the whole byte alphabet, so the
	// accept state is a sink.
	prefix, err := defaultAutomata.MakeBinary([]byte("foo"))
	assert.Nil(t, err)
	any, err := defaultAutomata.MakeAnyBinary()
	assert.Nil(t, err)
	a, err := Concatenate(prefix, any)
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a, WithSimplify(false), WithBinary(true))
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)

	sink := c.GetSinkState()
	assert.NotEqual(t, -1, sink)
	assert.True(t, c.RunAutomaton.IsAccept(sink))
	assert.Equal(t, sink, c.RunAutomaton.Step(sink, 0x42))
}

func TestCompiledAutomaton_CommonSuffix(t *testing.T) {
	// Leading wildcard .*ing exposes the common suffix hint:
	any, err := defaultAutomata.MakeAnyString()
	assert.Nil(t, err)
	tail, err := defaultAutomata.MakeString("ing")
	assert.Nil(t, err)
	a, err := Concatenate(any, tail)
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)
	assert.False(t, c.Finite)
	assert.Equal(t, []byte("ing"), c.CommonSuffixRef)

	assert.True(t, c.RunAutomaton.Run([]byte("testing")))
	assert.True(t, c.RunAutomaton.Run([]byte("ing")))
	assert.False(t, c.RunAutomaton.Run([]byte("ink")))
}

func TestCompiledAutomaton_FiniteSkipsSuffix(t *testing.T) {
	a, err := defaultAutomata.MakeStringUnion([][]byte{
		[]byte("running"), []byte("swimming"),
	})
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a, WithSimplify(false))
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)
	assert.True(t, c.Finite)
	assert.Nil(t, c.CommonSuffixRef)
}

func TestCompiledAutomaton_TransitionAccessor(t *testing.T) {
	a, err := defaultAutomata.MakeBinary([]byte{'x'})
	assert.Nil(t, err)

	c, err := NewCompiledAutomaton(a, WithSimplify(false), WithBinary(true))
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)

	scratch := NewTransition()
	count := c.TransitionAccessor.InitTransition(0, scratch)
	assert.Equal(t, 1, count)
	c.TransitionAccessor.GetNextTransition(scratch)
	assert.Equal(t, int('x'), scratch.Min)
	assert.Equal(t, int('x'), scratch.Max)
}

func TestCompiledAutomaton_NFAFallback(t *testing.T) {
	// A non-deterministic binary automaton is run as an NFA:
	a1, err := defaultAutomata.MakeBinary([]byte("ab"))
	assert.Nil(t, err)
	a2, err := defaultAutomata.MakeBinary([]byte("ac"))
	assert.Nil(t, err)
	nfa, err := Union(a1, a2)
	assert.Nil(t, err)
	assert.False(t, nfa.IsDeterministic())

	c, err := NewCompiledAutomaton(nfa, WithSimplify(false), WithBinary(true))
	assert.Nil(t, err)
	assert.Equal(t, KindNormal, c.Kind)

	_, isNFA := c.RunAutomaton.(*NFARunAutomaton)
	assert.True(t, isNFA)

	assert.True(t, c.RunAutomaton.Run([]byte("ab")))
	assert.True(t, c.RunAutomaton.Run([]byte("ac")))
	assert.False(t, c.RunAutomaton.Run([]byte("ad")))
}
