package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrozenIntSet(t *testing.T) {
	tests := []struct {
		name       string
		values     []int
		state      int
		hashCode   uint64
		wantValues []int
		wantState  int
	}{
		{
			name:       "Normal case",
			values:     []int{1, 2, 3},
			state:      0,
			hashCode:   123456789,
			wantValues: []int{1, 2, 3},
			wantState:  0,
		},
		{
			name:       "Nil slice",
			values:     nil,
			state:      -1,
			hashCode:   0,
			wantValues: nil,
			wantState:  -1,
		},
		{
			name:       "Empty slice",
			values:     []int{},
			state:      1,
			hashCode:   42,
			wantValues: []int{},
			wantState:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFrozenIntSet(tt.values, tt.hashCode, tt.state)
			assert.Equal(t, tt.wantValues, got.GetArray())
			assert.Equal(t, len(tt.wantValues), got.Size())
			assert.Equal(t, tt.wantState, got.State())
			assert.Equal(t, tt.hashCode, got.Hash())
		})
	}
}

func TestFrozenIntSet_Equals(t *testing.T) {
	tests := []struct {
		name     string
		f        *FrozenIntSet
		other    Hashable
		expected bool
	}{
		{
			name:     "values differ",
			f:        NewFrozenIntSet([]int{1, 2, 3}, 123, 1),
			other:    NewFrozenIntSet([]int{1, 2}, 123, 1),
			expected: false,
		},
		{
			name:     "hash differs",
			f:        NewFrozenIntSet([]int{1, 2, 3}, 123, 1),
			other:    NewFrozenIntSet([]int{1, 2, 3}, 456, 1),
			expected: false,
		},
		{
			name:     "same members",
			f:        NewFrozenIntSet([]int{1, 2, 3}, 123, 1),
			other:    NewFrozenIntSet([]int{1, 2, 3}, 123, 1),
			expected: true,
		},
		{
			// The mapped DFA state is an annotation, not part of the set identity.
			name:     "state ignored",
			f:        NewFrozenIntSet([]int{1, 2, 3}, 123, 1),
			other:    NewFrozenIntSet([]int{1, 2, 3}, 123, 2),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.f.Equals(tt.other))
		})
	}
}
