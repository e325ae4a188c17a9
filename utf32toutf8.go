package automaton

// Converts UTF-32 automata to the equivalent UTF-8 representation.

// masks[i] has the low i bits set.
var masks = func() []int {
	m := make([]int, 8)
	for i := range m {
		m[i] = (1 << i) - 1
	}
	return m
}()

// Smallest and largest codepoint for each UTF-8 sequence length.
var (
	startCodes = []int{0, 128, 2048, 65536}
	endCodes   = []int{127, 2047, 65535, 1114111}
)

type utf8Byte struct {
	value int
	bits  int
}

// Holds a single codepoint as a sequence of 1-4 UTF-8 bytes.
type utf8Sequence struct {
	bytes [4]utf8Byte
	len   int
}

func (u *utf8Sequence) byteAt(idx int) int {
	return u.bytes[idx].value
}

func (u *utf8Sequence) numBits(idx int) int {
	return u.bytes[idx].bits
}

func (u *utf8Sequence) set(code int) {
	if code < 128 {
		// 0xxxxxxx
		u.bytes[0].value = code
		u.bytes[0].bits = 7
		u.len = 1
	} else if code < 2048 {
		// 110yyyxx 10xxxxxx
		u.bytes[0].value = (6 << 5) | (code >> 6)
		u.bytes[0].bits = 5
		u.setRest(code, 1)
		u.len = 2
	} else if code < 65536 {
		// 1110yyyy 10yyyyxx 10xxxxxx
		u.bytes[0].value = (14 << 4) | (code >> 12)
		u.bytes[0].bits = 4
		u.setRest(code, 2)
		u.len = 3
	} else {
		// 11110zzz 10zzyyyy 10yyyyxx 10xxxxxx
		u.bytes[0].value = (30 << 3) | (code >> 18)
		u.bytes[0].bits = 3
		u.setRest(code, 3)
		u.len = 4
	}
}

func (u *utf8Sequence) setRest(code, numBytes int) {
	for i := 0; i < numBytes; i++ {
		u.bytes[numBytes-i].value = 128 | (code & masks[6])
		u.bytes[numBytes-i].bits = 6
		code = code >> 6
	}
}

// UTF32ToUTF8 Converts an Automaton whose transition labels are UTF-32 codepoints into an
// equivalent Automaton whose transition labels are UTF-8 bytes.
type UTF32ToUTF8 struct {
	startUTF8 *utf8Sequence
	endUTF8   *utf8Sequence
	tmpUTF8a  *utf8Sequence
	tmpUTF8b  *utf8Sequence
	utf8      *Builder
}

func NewUTF32ToUTF8() *UTF32ToUTF8 {
	return &UTF32ToUTF8{
		startUTF8: new(utf8Sequence),
		endUTF8:   new(utf8Sequence),
		tmpUTF8a:  new(utf8Sequence),
		tmpUTF8b:  new(utf8Sequence),
	}
}

// Converts one edge of the codepoint automaton, expanding the [startCodePoint,endCodePoint]
// label interval into the corresponding byte paths.
func (u *UTF32ToUTF8) convertOneEdge(start, end, startCodePoint, endCodePoint int) {
	u.startUTF8.set(startCodePoint)
	u.endUTF8.set(endCodePoint)
	u.build(start, end, u.startUTF8, u.endUTF8, 0)
}

func (u *UTF32ToUTF8) build(start, end int, startUTF8, endUTF8 *utf8Sequence, upto int) {
	// Break into start, middle, end:
	if startUTF8.byteAt(upto) == endUTF8.byteAt(upto) {
		// Degen case: lead with the same byte:
		if upto == startUTF8.len-1 && upto == endUTF8.len-1 {
			// Done recursing
			u.utf8.AddTransition(start, end, startUTF8.byteAt(upto), endUTF8.byteAt(upto))
			return
		}
		n := u.utf8.CreateState()
		u.utf8.AddTransitionLabel(start, n, startUTF8.byteAt(upto))
		u.build(n, end, startUTF8, endUTF8, 1+upto)
	} else if startUTF8.len == endUTF8.len {
		if upto == startUTF8.len-1 {
			u.utf8.AddTransition(start, end, startUTF8.byteAt(upto), endUTF8.byteAt(upto))
			return
		}
		u.start(start, end, startUTF8, upto, false)
		if endUTF8.byteAt(upto)-startUTF8.byteAt(upto) > 1 {
			// There is a middle
			u.all(start, end, startUTF8.byteAt(upto)+1, endUTF8.byteAt(upto)-1, startUTF8.len-upto-1)
		}
		u.end(start, end, endUTF8, upto, false)
	} else {
		// start
		u.start(start, end, startUTF8, upto, true)

		// possibly middle, spanning multiple num bytes
		byteCount := 1 + startUTF8.len - upto
		limit := endUTF8.len - upto
		for byteCount < limit {
			u.tmpUTF8a.set(startCodes[byteCount-1])
			u.tmpUTF8b.set(endCodes[byteCount-1])
			u.all(start, end, u.tmpUTF8a.byteAt(0), u.tmpUTF8b.byteAt(0), u.tmpUTF8a.len-1)
			byteCount++
		}

		// end
		u.end(start, end, endUTF8, upto, true)
	}
}

func (u *UTF32ToUTF8) start(start, end int, startUTF8 *utf8Sequence, upto int, doAll bool) {
	if upto == startUTF8.len-1 {
		// Done recursing
		u.utf8.AddTransition(start, end, startUTF8.byteAt(upto), startUTF8.byteAt(upto)|masks[startUTF8.numBits(upto)])
		return
	}

	n := u.utf8.CreateState()
	u.utf8.AddTransitionLabel(start, n, startUTF8.byteAt(upto))
	u.start(n, end, startUTF8, 1+upto, true)
	endCode := startUTF8.byteAt(upto) | masks[startUTF8.numBits(upto)]
	if doAll && startUTF8.byteAt(upto) != endCode {
		u.all(start, end, startUTF8.byteAt(upto)+1, endCode, startUTF8.len-upto-1)
	}
}

func (u *UTF32ToUTF8) end(start, end int, endUTF8 *utf8Sequence, upto int, doAll bool) {
	if upto == endUTF8.len-1 {
		// Done recursing
		u.utf8.AddTransition(start, end, endUTF8.byteAt(upto)&^masks[endUTF8.numBits(upto)], endUTF8.byteAt(upto))
		return
	}

	var startCode int
	if endUTF8.numBits(upto) == 5 {
		// The first length=2 UTF8 byte is 194 since 192 and 193 can only be used by
		// over-long (invalid) encodings:
		startCode = 194
	} else {
		startCode = endUTF8.byteAt(upto) &^ masks[endUTF8.numBits(upto)]
	}
	if doAll && endUTF8.byteAt(upto) != startCode {
		u.all(start, end, startCode, endUTF8.byteAt(upto)-1, endUTF8.len-upto-1)
	}
	n := u.utf8.CreateState()
	u.utf8.AddTransitionLabel(start, n, endUTF8.byteAt(upto))
	u.end(n, end, endUTF8, 1+upto, true)
}

func (u *UTF32ToUTF8) all(start, end, startCode, endCode, left int) {
	if left == 0 {
		u.utf8.AddTransition(start, end, startCode, endCode)
		return
	}

	lastN := u.utf8.CreateState()
	u.utf8.AddTransition(start, lastN, startCode, endCode)
	for left > 1 {
		n := u.utf8.CreateState()
		// 10xxxxxx
		u.utf8.AddTransition(lastN, n, 128, 191)
		left--
		lastN = n
	}
	u.utf8.AddTransition(lastN, end, 128, 191)
}

// Convert Converts an incoming utf32 automaton to an equivalent utf8 one. The incoming
// automaton need not be deterministic. Note that the returned automaton will not in general be
// deterministic, so you must determinize it if that's needed.
func (u *UTF32ToUTF8) Convert(utf32 *Automaton) (*Automaton, error) {
	if utf32.GetNumStates() == 0 {
		return utf32, nil
	}

	mp := make([]int, utf32.GetNumStates())
	for i := range mp {
		mp[i] = -1
	}

	pending := make([]int, 0)
	utf32State := 0
	pending = append(pending, utf32State)

	u.utf8 = NewBuilder()

	utf8State := u.utf8.CreateState()
	u.utf8.SetAccept(utf8State, utf32.IsAccept(utf32State))
	mp[utf32State] = utf8State

	scratch := NewTransition()

	for len(pending) > 0 {
		utf32State = pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		utf8State = mp[utf32State]

		numTransitions := utf32.GetNumTransitionsWithState(utf32State)
		utf32.InitTransition(utf32State, scratch)
		for i := 0; i < numTransitions; i++ {
			utf32.GetNextTransition(scratch)
			destUTF32 := scratch.Dest
			destUTF8 := mp[destUTF32]
			if destUTF8 == -1 {
				destUTF8 = u.utf8.CreateState()
				u.utf8.SetAccept(destUTF8, utf32.IsAccept(destUTF32))
				mp[destUTF32] = destUTF8
				pending = append(pending, destUTF32)
			}
			u.convertOneEdge(utf8State, destUTF8, scratch.Min, scratch.Max)
		}
	}

	return u.utf8.Finish(), nil
}
