package automaton

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestUTF32ToUTF8_Singleton(t *testing.T) {
	for _, s := range []string{"a", "abc", "é", "日本", "a\U0001F600b"} {
		a, err := defaultAutomata.MakeString(s)
		assert.Nil(t, err)

		binary, err := NewUTF32ToUTF8().Convert(a)
		assert.Nil(t, err)

		r, err := NewByteRunAutomatonV1(binary, true, DefaultDeterminizeWorkLimit)
		assert.Nil(t, err)
		assert.True(t, r.Run([]byte(s)), s)
		assert.False(t, r.Run([]byte(s+"x")), s)
	}
}

func TestUTF32ToUTF8_Range(t *testing.T) {
	// A codepoint range spanning the 1/2/3/4-byte boundaries:
	a, err := defaultAutomata.MakeCharRange(0, 0x10FFFF)
	assert.Nil(t, err)

	binary, err := NewUTF32ToUTF8().Convert(a)
	assert.Nil(t, err)

	r, err := NewByteRunAutomatonV1(binary, true, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)

	for _, cp := range []rune{0, 'a', 0x7F, 0x80, 0x7FF, 0x800, 0xFFFF, 0x10000, 0x10FFFF} {
		buf := make([]byte, 4)
		n := utf8.EncodeRune(buf, cp)
		assert.True(t, r.Run(buf[:n]), "codepoint %#x", cp)
	}

	// Stray continuation byte and over-long lead bytes are not valid encodings:
	assert.False(t, r.Run([]byte{0x80}))
	assert.False(t, r.Run([]byte{0xC0, 0x80}))
	assert.False(t, r.Run([]byte{0xC1, 0xBF}))
}

func TestUTF32ToUTF8_TwoByteBoundary(t *testing.T) {
	// [0x7F, 0x80] splits into a 1-byte edge and a 2-byte edge:
	a, err := defaultAutomata.MakeCharRange(0x7F, 0x80)
	assert.Nil(t, err)

	binary, err := NewUTF32ToUTF8().Convert(a)
	assert.Nil(t, err)

	r, err := NewByteRunAutomatonV1(binary, true, DefaultDeterminizeWorkLimit)
	assert.Nil(t, err)

	assert.True(t, r.Run([]byte{0x7F}))
	assert.True(t, r.Run([]byte{0xC2, 0x80}))
	assert.False(t, r.Run([]byte{0x7E}))
	assert.False(t, r.Run([]byte{0xC2, 0x81}))
}

func TestUTF32ToUTF8_EmptyAutomaton(t *testing.T) {
	a := defaultAutomata.MakeEmpty()
	binary, err := NewUTF32ToUTF8().Convert(a)
	assert.Nil(t, err)
	assert.Equal(t, 0, binary.GetNumStates())
}
