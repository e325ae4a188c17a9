package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeEmpty(t *testing.T) {
	a := defaultAutomata.MakeEmpty()
	assert.Equal(t, 0, a.GetNumStates())
	assert.True(t, IsEmptyAutomaton(a))
}

func TestMakeEmptyString(t *testing.T) {
	a := defaultAutomata.MakeEmptyString()
	assert.True(t, Run(a, ""))
	assert.False(t, Run(a, "a"))
}

func TestMakeAnyString(t *testing.T) {
	a, err := defaultAutomata.MakeAnyString()
	assert.Nil(t, err)
	assert.True(t, Run(a, ""))
	assert.True(t, Run(a, "x"))
	assert.True(t, Run(a, "hello world"))
	assert.True(t, IsTotalAutomaton(a))
}

func TestMakeChar(t *testing.T) {
	a, err := defaultAutomata.MakeChar('q')
	assert.Nil(t, err)
	assert.True(t, Run(a, "q"))
	assert.False(t, Run(a, "r"))
	assert.False(t, Run(a, ""))
	assert.False(t, Run(a, "qq"))
}

func TestMakeCharRange(t *testing.T) {
	a, err := defaultAutomata.MakeCharRange('a', 'c')
	assert.Nil(t, err)
	assert.True(t, Run(a, "a"))
	assert.True(t, Run(a, "b"))
	assert.True(t, Run(a, "c"))
	assert.False(t, Run(a, "d"))
	assert.False(t, Run(a, "ab"))

	// Inverted range accepts nothing:
	a, err = defaultAutomata.MakeCharRange('c', 'a')
	assert.Nil(t, err)
	assert.True(t, IsEmptyAutomaton(a))
}

func TestMakeString(t *testing.T) {
	a, err := defaultAutomata.MakeString("dog")
	assert.Nil(t, err)
	assert.True(t, Run(a, "dog"))
	assert.False(t, Run(a, "do"))
	assert.False(t, Run(a, "dogs"))
	assert.True(t, a.IsDeterministic())

	singleton, err := GetSingletonAutomaton(a)
	assert.Nil(t, err)
	assert.Equal(t, []int{'d', 'o', 'g'}, singleton)
}

func TestMakeStringFromInts(t *testing.T) {
	a, err := defaultAutomata.MakeStringFromInts([]int{'a', 0x1F600, 'b'})
	assert.Nil(t, err)
	assert.True(t, Run(a, "a\U0001F600b"))
	assert.False(t, Run(a, "ab"))
}

func TestMakeBinary(t *testing.T) {
	a, err := defaultAutomata.MakeBinary([]byte{0x00, 0xFF, 0x42})
	assert.Nil(t, err)

	r, err := NewByteRunAutomatonV1(a, true, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.True(t, r.Run([]byte{0x00, 0xFF, 0x42}))
	assert.False(t, r.Run([]byte{0x00, 0xFF}))
	assert.False(t, r.Run([]byte{0x00, 0xFF, 0x42, 0x00}))
}

func TestMakeDecimalInterval(t *testing.T) {
	t.Run("variableDigits", func(t *testing.T) {
		a, err := defaultAutomata.MakeDecimalInterval(5, 25, 0)
		assert.Nil(t, err)

		d, err := DeterminizeAutomaton(a, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)

		assert.True(t, Run(d, "5"))
		assert.True(t, Run(d, "12"))
		assert.True(t, Run(d, "25"))
		assert.False(t, Run(d, "4"))
		assert.False(t, Run(d, "26"))
		assert.False(t, Run(d, ""))
		// Leading zeros beyond the padded width are not accepted:
		assert.False(t, Run(d, "005"))
	})

	t.Run("fixedDigits", func(t *testing.T) {
		a, err := defaultAutomata.MakeDecimalInterval(5, 25, 3)
		assert.Nil(t, err)

		d, err := DeterminizeAutomaton(a, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)

		assert.True(t, Run(d, "005"))
		assert.True(t, Run(d, "012"))
		assert.True(t, Run(d, "025"))
		assert.False(t, Run(d, "5"))
		assert.False(t, Run(d, "026"))
		assert.False(t, Run(d, "0005"))
	})

	t.Run("minEqualsMax", func(t *testing.T) {
		a, err := defaultAutomata.MakeDecimalInterval(7, 7, 0)
		assert.Nil(t, err)
		d, err := DeterminizeAutomaton(a, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		assert.True(t, Run(d, "7"))
		assert.False(t, Run(d, "8"))
	})

	t.Run("zeroMin", func(t *testing.T) {
		a, err := defaultAutomata.MakeDecimalInterval(0, 10, 0)
		assert.Nil(t, err)
		d, err := DeterminizeAutomaton(a, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		assert.True(t, Run(d, "0"))
		assert.True(t, Run(d, "10"))
		assert.False(t, Run(d, "11"))
	})

	t.Run("invalidInterval", func(t *testing.T) {
		_, err := defaultAutomata.MakeDecimalInterval(10, 5, 0)
		assert.NotNil(t, err)

		_, err = defaultAutomata.MakeDecimalInterval(5, 125, 2)
		assert.NotNil(t, err)
	})
}

func TestMakeBinaryInterval(t *testing.T) {
	runBinary := func(t *testing.T, a *Automaton, term []byte) bool {
		t.Helper()
		r, err := NewByteRunAutomatonV1(a, true, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		return r.Run(term)
	}

	t.Run("bothInclusive", func(t *testing.T) {
		a, err := defaultAutomata.MakeBinaryInterval([]byte("bar"), true, []byte("foo"), true)
		assert.Nil(t, err)

		assert.True(t, runBinary(t, a, []byte("bar")))
		assert.True(t, runBinary(t, a, []byte("bars")))
		assert.True(t, runBinary(t, a, []byte("cat")))
		assert.True(t, runBinary(t, a, []byte("foo")))
		assert.False(t, runBinary(t, a, []byte("bap")))
		assert.False(t, runBinary(t, a, []byte("foo\x00")))
		assert.False(t, runBinary(t, a, []byte("fop")))
	})

	t.Run("exclusiveEnds", func(t *testing.T) {
		a, err := defaultAutomata.MakeBinaryInterval([]byte("bar"), false, []byte("foo"), false)
		assert.Nil(t, err)

		assert.False(t, runBinary(t, a, []byte("bar")))
		assert.True(t, runBinary(t, a, []byte("bar\x00")))
		assert.True(t, runBinary(t, a, []byte("cat")))
		assert.False(t, runBinary(t, a, []byte("foo")))
	})

	t.Run("equalEndpoints", func(t *testing.T) {
		a, err := defaultAutomata.MakeBinaryInterval([]byte("same"), true, []byte("same"), true)
		assert.Nil(t, err)
		assert.True(t, runBinary(t, a, []byte("same")))
		assert.False(t, runBinary(t, a, []byte("samee")))

		a, err = defaultAutomata.MakeBinaryInterval([]byte("same"), true, []byte("same"), false)
		assert.Nil(t, err)
		assert.True(t, IsEmptyAutomaton(a))
	})

	t.Run("openMax", func(t *testing.T) {
		a, err := defaultAutomata.MakeBinaryInterval([]byte("bar"), true, nil, true)
		assert.Nil(t, err)
		assert.True(t, runBinary(t, a, []byte("bar")))
		assert.True(t, runBinary(t, a, []byte("zzz")))
		assert.False(t, runBinary(t, a, []byte("a")))
	})

	t.Run("openMinExclusiveIsAnError", func(t *testing.T) {
		_, err := defaultAutomata.MakeBinaryInterval(nil, false, []byte("foo"), true)
		assert.NotNil(t, err)
	})
}

func TestMakeStringUnion(t *testing.T) {
	terms := [][]byte{
		[]byte("dog"),
		[]byte("dogs"),
		[]byte("fish"),
	}

	a, err := defaultAutomata.MakeStringUnion(terms)
	assert.Nil(t, err)
	assert.True(t, a.IsDeterministic())

	assert.True(t, Run(a, "dog"))
	assert.True(t, Run(a, "dogs"))
	assert.True(t, Run(a, "fish"))
	assert.False(t, Run(a, "do"))
	assert.False(t, Run(a, "fishs"))

	finite, err := IsFiniteAutomaton(a)
	assert.Nil(t, err)
	assert.True(t, finite)
}

func TestMakeStringUnionUnsorted(t *testing.T) {
	terms := [][]byte{
		[]byte("fish"),
		[]byte("dog"),
	}
	_, err := defaultAutomata.MakeStringUnion(terms)
	assert.NotNil(t, err)
}

func TestMakeBinaryStringUnion(t *testing.T) {
	terms := [][]byte{
		{0x00, 0x01},
		{0xF0, 0x90},
		{0xFF},
	}

	a, err := defaultAutomata.MakeBinaryStringUnion(terms)
	assert.Nil(t, err)

	r, err := NewByteRunAutomatonV1(a, true, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)
	assert.True(t, r.Run([]byte{0x00, 0x01}))
	assert.True(t, r.Run([]byte{0xF0, 0x90}))
	assert.True(t, r.Run([]byte{0xFF}))
	assert.False(t, r.Run([]byte{0x00}))
}
