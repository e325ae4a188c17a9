package automaton

const (
	// Golden ratio bit mixers.
	PHI_C32 = uint32(0x9e3779b9)
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) int {
	return mix32(key)
}

// Final mixing step of the 32-bit MurmurHash3 algorithm.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

func mixPhi(k int32) int32 {
	h := uint32(k) * PHI_C32
	return int32(h ^ (h >> 16))
}
