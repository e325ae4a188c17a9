package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateSet_IncrDecr(t *testing.T) {
	s := NewStateSet(5)
	assert.Equal(t, 0, s.Size())

	s.Incr(3)
	s.Incr(3)
	s.Incr(7)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, []int{3, 7}, s.GetArray())

	// First decrement only drops the refcount:
	s.Decr(3)
	assert.Equal(t, 2, s.Size())

	// Second one removes the member:
	s.Decr(3)
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, []int{7}, s.GetArray())
}

func TestStateSet_DecrAbsentPanics(t *testing.T) {
	s := NewStateSet(5)
	assert.Panics(t, func() {
		s.Decr(42)
	})
}

func TestStateSet_ZeroState(t *testing.T) {
	// State id 0 is the backing map's reserved empty-slot marker; it must still
	// round-trip as a member.
	s := NewStateSet(5)
	s.Incr(0)
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, []int{0}, s.GetArray())
	s.Decr(0)
	assert.Equal(t, 0, s.Size())
}

func TestStateSet_FreezeHashAgreement(t *testing.T) {
	s := NewStateSet(5)
	s.Incr(1)
	s.Incr(4)
	s.Incr(9)

	frozen := s.Freeze(0)

	assert.Equal(t, s.Hash(), frozen.Hash())
	assert.Equal(t, s.GetArray(), frozen.GetArray())
	assert.True(t, s.Equals(frozen))
	assert.True(t, frozen.Equals(s))

	// Refcounts don't influence equality, only membership does:
	s.Incr(4)
	assert.True(t, s.Equals(frozen))

	// Membership changes do:
	s.Incr(5)
	assert.False(t, s.Equals(frozen))
}

func TestStateSet_Reset(t *testing.T) {
	s := NewStateSet(5)
	s.Incr(1)
	s.Incr(2)
	s.Reset()
	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.GetArray())
}

func TestStateSet_InitialSubsetHash(t *testing.T) {
	// The determinization seed set {0} must hash identically whether built through a
	// StateSet or minted directly.
	s := NewStateSet(5)
	s.Incr(0)
	direct := NewFrozenIntSet([]int{0}, uint64(mix32(0)+1), 0)
	assert.Equal(t, direct.Hash(), s.Hash())
	assert.True(t, s.Equals(direct))
}
