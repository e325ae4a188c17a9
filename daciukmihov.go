package automaton

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Builds a minimal, deterministic automaton that accepts a set of strings using the algorithm
// described in Daciuk, Mihov, Watson and Watson: "Incremental Construction of Minimal Acyclic
// Finite-State Automata". Input must be sorted.

// DFSA state with an ordered set of labeled outgoing transitions.
type dfsaState struct {
	labels  []int
	states  []*dfsaState
	isFinal bool
}

func (s *dfsaState) hasChildren() bool {
	return len(s.labels) > 0
}

// Returns the most recently added child for the label, or nil if the last transition carries a
// different label.
func (s *dfsaState) lastChild(label int) *dfsaState {
	index := len(s.labels) - 1
	if index >= 0 && s.labels[index] == label {
		return s.states[index]
	}
	return nil
}

func (s *dfsaState) lastState() *dfsaState {
	return s.states[len(s.states)-1]
}

func (s *dfsaState) replaceLastChild(state *dfsaState) {
	s.states[len(s.states)-1] = state
}

func (s *dfsaState) newState(label int) *dfsaState {
	next := &dfsaState{}
	s.labels = append(s.labels, label)
	s.states = append(s.states, next)
	return next
}

// Right-language signature for the state registry: children must already be canonical
// (registered), so identity of the child pointers plus the labels determines equivalence.
func (s *dfsaState) signature() string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%t", s.isFinal)
	for i, label := range s.labels {
		fmt.Fprintf(buf, "|%d>%p", label, s.states[i])
	}
	return buf.String()
}

type stringUnionBuilder struct {
	registry map[string]*dfsaState
	root     *dfsaState
	previous []byte
}

func newStringUnionBuilder() *stringUnionBuilder {
	return &stringUnionBuilder{
		registry: make(map[string]*dfsaState),
		root:     &dfsaState{},
	}
}

// Adds another string to the automaton. The string must be binary-larger or equal compared to
// any previous strings added.
func (b *stringUnionBuilder) add(current []byte, asBinary bool) error {
	if b.registry == nil {
		return fmt.Errorf("automaton already built")
	}
	if b.previous != nil && bytes.Compare(b.previous, current) > 0 {
		return fmt.Errorf("input must be in sorted order: %q came after %q", current, b.previous)
	}
	b.previous = append(b.previous[:0], current...)

	// Descend in the automaton (find matching prefix):
	state := b.root
	pos := 0
	for pos < len(current) {
		label, width := decodeLabel(current[pos:], asBinary)
		next := state.lastChild(label)
		if next == nil {
			break
		}
		state = next
		pos += width
	}

	if state.hasChildren() {
		b.replaceOrRegister(state)
	}

	// Add the suffix with fresh states:
	for pos < len(current) {
		label, width := decodeLabel(current[pos:], asBinary)
		state = state.newState(label)
		pos += width
	}
	state.isFinal = true
	return nil
}

// Finalizes the automaton and returns the root state. No more strings can be added after this.
func (b *stringUnionBuilder) complete() *dfsaState {
	if b.root.hasChildren() {
		b.replaceOrRegister(b.root)
	}
	b.registry = nil
	return b.root
}

// Replaces the last child of the state with an already registered equivalent state, or registers
// it as the canonical representative of its right language.
func (b *stringUnionBuilder) replaceOrRegister(state *dfsaState) {
	child := state.lastState()

	if child.hasChildren() {
		b.replaceOrRegister(child)
	}

	sig := child.signature()
	if registered, ok := b.registry[sig]; ok {
		state.replaceLastChild(registered)
	} else {
		b.registry[sig] = child
	}
}

func decodeLabel(tail []byte, asBinary bool) (label, width int) {
	if asBinary {
		return int(tail[0]), 1
	}
	r, size := utf8.DecodeRune(tail)
	return int(r), size
}

// Recursive traversal converting the pointer-based DFSA into the flat representation.
func convertState(b *Builder, s *dfsaState, visited map[*dfsaState]int) int {
	if converted, ok := visited[s]; ok {
		return converted
	}

	converted := b.CreateState()
	b.SetAccept(converted, s.isFinal)
	visited[s] = converted

	for i, target := range s.states {
		b.AddTransitionLabel(converted, convertState(b, target, visited), s.labels[i])
	}
	return converted
}

// Builds a minimal, deterministic automaton from a sorted list of byte strings, labeled either
// by raw bytes or by the decoded UTF-8 codepoints.
func buildStringUnion(input [][]byte, asBinary bool) (*Automaton, error) {
	builder := newStringUnionBuilder()
	for _, term := range input {
		if err := builder.add(term, asBinary); err != nil {
			return nil, err
		}
	}

	b := NewBuilder()
	convertState(b, builder.complete(), make(map[*dfsaState]int))
	a := b.Finish()
	if !a.IsDeterministic() {
		return nil, fmt.Errorf("string union construction produced a non-deterministic automaton")
	}
	return a, nil
}
