package automaton

import (
	"errors"
	"iter"
)

const (
	DEFAULT_EXPECTED_ELEMENTS = 4
	DEFAULT_LOAD_FACTOR       = 0.75
	MIN_HASH_ARRAY_LENGTH     = 4
)

// IntIntHashMap An int-to-int hash map using open addressing with linear probing. Key 0 is a
// reserved "empty slot" marker internally and gets a dedicated slot past the probed range, so
// callers may still store it. This is the backing store for StateSet, which needs cheap
// increment/decrement of per-state reference counts.
type IntIntHashMap struct {
	keys   []int32
	values []int32

	assigned    int
	mask        int     // Mask for slot scans in keys.
	resizeAt    int     // Expand (rehash) keys when assigned hits this value.
	hasEmptyKey bool    // Special treatment for the "empty slot" key marker.
	loadFactor  float64 // The load factor for keys.
}

func NewIntIntHashMap(expectedElements int) *IntIntHashMap {
	if expectedElements < DEFAULT_EXPECTED_ELEMENTS {
		expectedElements = DEFAULT_EXPECTED_ELEMENTS
	}
	m := &IntIntHashMap{loadFactor: DEFAULT_LOAD_FACTOR}
	m.allocateBuffers(minBufferSize(expectedElements, m.loadFactor))
	return m
}

// Put Sets the value for the key, returning the previous value (0 if absent).
func (m *IntIntHashMap) Put(key, value int32) int32 {
	idx, exists := m.IndexOf(key)
	if exists {
		prev, _ := m.IndexGet(idx)
		m.IndexReplace(idx, value)
		return prev
	}
	_ = m.IndexInsert(idx, key, value)
	return 0
}

// Get Returns the value for the key, or 0 if absent.
func (m *IntIntHashMap) Get(key int32) int32 {
	idx, exists := m.IndexOf(key)
	if !exists {
		return 0
	}
	v, _ := m.IndexGet(idx)
	return v
}

// AddTo Adds incrementValue to the key's value (inserting it first if absent) and returns the
// new value.
func (m *IntIntHashMap) AddTo(key, incrementValue int32) int32 {
	return m.PutOrAdd(key, incrementValue, incrementValue)
}

// PutOrAdd Inserts key with putValue if absent, otherwise adds incrementValue to its current
// value. Returns the value after the update.
func (m *IntIntHashMap) PutOrAdd(key, putValue, incrementValue int32) int32 {
	keyIndex, exists := m.IndexOf(key)
	if exists {
		current, _ := m.IndexGet(keyIndex)
		putValue = current + incrementValue
		m.IndexReplace(keyIndex, putValue)
	} else {
		_ = m.IndexInsert(keyIndex, key, putValue)
	}
	return putValue
}

// IndexOf Returns the slot for the key and whether the key is present. The returned slot is
// valid for IndexGet/IndexReplace/IndexRemove when present, or for IndexInsert when absent.
func (m *IntIntHashMap) IndexOf(key int32) (int, bool) {
	mask := m.mask
	if key == 0 {
		return mask + 1, m.hasEmptyKey
	}

	slot := int(uint32(m.hashKey(key))) & mask

	existing := m.keys[slot]
	for existing != 0 {
		if existing == key {
			return slot, true
		}
		slot = (slot + 1) & mask
		existing = m.keys[slot]
	}
	return slot, false
}

func (m *IntIntHashMap) IndexGet(idx int) (int32, bool) {
	if !m.validateIndex(idx) {
		return 0, false
	}
	return m.values[idx], true
}

func (m *IntIntHashMap) IndexReplace(idx int, value int32) bool {
	if !m.validateIndex(idx) {
		return false
	}
	m.values[idx] = value
	return true
}

func (m *IntIntHashMap) IndexInsert(idx int, key, value int32) error {
	if idx < 0 {
		return errors.New("invalid index")
	}
	if key == 0 {
		if idx != m.mask+1 {
			return errors.New("invalid index for the empty key")
		}
		m.values[idx] = value
		m.hasEmptyKey = true
		return nil
	}

	if m.keys[idx] != 0 {
		return errors.New("current index is already in use")
	}
	if m.assigned == m.resizeAt {
		m.allocateThenInsertThenRehash(idx, key, value)
	} else {
		m.keys[idx] = key
		m.values[idx] = value
	}
	m.assigned++
	return nil
}

func (m *IntIntHashMap) IndexRemove(idx int) (int32, bool) {
	if !m.validateIndex(idx) {
		return 0, false
	}

	previousValue := m.values[idx]
	if idx > m.mask {
		m.hasEmptyKey = false
		m.values[idx] = 0
	} else {
		m.shiftConflictingKeys(idx)
		m.assigned--
	}
	return previousValue, true
}

// Shifts conflicting (linearly probed) keys left to fill in the gap left by a removal.
func (m *IntIntHashMap) shiftConflictingKeys(gapSlot int) {
	keys := m.keys
	values := m.values
	mask := m.mask

	distance := 0
	for {
		distance++
		slot := (gapSlot + distance) & mask
		existing := keys[slot]
		if existing == 0 {
			break
		}

		idealSlot := int(uint32(m.hashKey(existing))) & mask
		shift := (slot - idealSlot) & mask
		if shift >= distance {
			// Entry at this position was originally at or before the gap slot.
			// Move the conflict-shifted entry to the gap's position and repeat the procedure
			// for any entries to the right of the current position, treating it
			// as the new gap.
			keys[gapSlot] = existing
			values[gapSlot] = values[slot]
			gapSlot = slot
			distance = 0
		}
	}

	// Mark the last found gap slot without a conflict as empty.
	keys[gapSlot] = 0
	values[gapSlot] = 0
}

func (m *IntIntHashMap) validateIndex(idx int) bool {
	if idx < 0 {
		return false
	}
	if idx <= m.mask {
		return true
	}
	return idx == m.mask+1 && m.hasEmptyKey
}

func (m *IntIntHashMap) allocateThenInsertThenRehash(slot int, pendingKey, pendingValue int32) {
	prevKeys := m.keys
	prevValues := m.values
	m.allocateBuffers((m.mask + 1) << 1)

	// Insert the pending entry into the free slot in the old arrays before rehashing.
	prevKeys[slot] = pendingKey
	prevValues[slot] = pendingValue
	m.rehash(prevKeys, prevValues)
}

func (m *IntIntHashMap) allocateBuffers(arraySize int) {
	// One extra slot holds the value mapped to the reserved empty key.
	m.keys = make([]int32, arraySize+1)
	m.values = make([]int32, arraySize+1)
	m.mask = arraySize - 1
	m.resizeAt = expandAtCount(arraySize, m.loadFactor)
}

func (m *IntIntHashMap) rehash(fromKeys, fromValues []int32) {
	// Carry over the empty key's slot, then rehash everything else.
	from := len(fromKeys) - 1
	m.keys[len(m.keys)-1] = fromKeys[from]
	m.values[len(m.values)-1] = fromValues[from]
	for from--; from >= 0; from-- {
		existing := fromKeys[from]
		if existing == 0 {
			continue
		}
		slot := int(uint32(m.hashKey(existing))) & m.mask
		for m.keys[slot] != 0 {
			slot = (slot + 1) & m.mask
		}
		m.keys[slot] = existing
		m.values[slot] = fromValues[from]
	}
}

// Clear Removes all entries, keeping the allocated storage.
func (m *IntIntHashMap) Clear() {
	m.assigned = 0
	m.hasEmptyKey = false
	for i := range m.keys {
		m.keys[i] = 0
		m.values[i] = 0
	}
}

func (m *IntIntHashMap) Size() int {
	empty := 0
	if m.hasEmptyKey {
		empty = 1
	}
	return m.assigned + empty
}

// Keys Iterates over the stored keys in no particular order.
func (m *IntIntHashMap) Keys() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for i := 0; i <= m.mask; i++ {
			if m.keys[i] != 0 {
				if !yield(m.keys[i]) {
					return
				}
			}
		}
		if m.hasEmptyKey {
			yield(0)
		}
	}
}

func (m *IntIntHashMap) hashKey(key int32) int32 {
	return mixPhi(key)
}

func minBufferSize(elements int, loadFactor float64) int {
	length := int(float64(elements)/loadFactor) + 1
	size := MIN_HASH_ARRAY_LENGTH
	for size < length {
		size <<= 1
	}
	return size
}

func expandAtCount(arraySize int, loadFactor float64) int {
	expandAt := int(float64(arraySize) * loadFactor)
	if expandAt > arraySize-1 {
		expandAt = arraySize - 1
	}
	return expandAt
}
