package generator

import (
	"slices"

	"github.com/go-drift/neutral/pkg/errors"
)

// Stack is a scoped override of the active generator.
//
// Pushed generators shadow the base generator until popped. A Stack is not
// safe for concurrent use: each goroutine that constructs widgets keeps its
// own, which gives the per-thread scoping native toolkits expect.
type Stack struct {
	base   *Generator
	frames []*Generator
}

// NewStack returns a stack whose bottom is base. A nil base falls back to
// the catalog default.
func NewStack(base *Generator) *Stack {
	return &Stack{base: base}
}

// Current returns the innermost pushed generator, else the base, else Default().
func (s *Stack) Current() *Generator {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}
	if s.base != nil {
		return s.base
	}
	return Default()
}

// Depth returns the number of pushed generators.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Push makes g current until the matching Pop.
func (s *Stack) Push(g *Generator) {
	if g == nil {
		panic("generator: Push of nil generator")
	}
	s.frames = append(s.frames, g)
}

// Pop removes the innermost pushed generator and returns it.
func (s *Stack) Pop() (*Generator, error) {
	n := len(s.frames)
	if n == 0 {
		return nil, errors.Raise("generator.Pop", errors.KindResolve, ErrStackEmpty)
	}
	g := s.frames[n-1]
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
	return g, nil
}

// Using runs fn with g as the current generator. The frames below g are
// restored exactly as they were when fn returns, fails, or panics, even if
// fn pushed without popping or popped past g; the panic is propagated.
func (s *Stack) Using(g *Generator, fn func() error) error {
	saved := slices.Clone(s.frames)
	s.Push(g)
	defer s.restore(saved)
	return fn()
}

// Resolve resolves c against the current generator.
func (s *Stack) Resolve(c Capability) (any, error) {
	return s.Current().Resolve(c)
}

func (s *Stack) restore(frames []*Generator) {
	clear(s.frames)
	s.frames = append(s.frames[:0], frames...)
}
