package koch

import "sync"

// Params are the values a session is built from.
type Params struct {
	Width          int
	Height         int
	Padding        int
	MaxGenerations int
}

// Session owns one boundary and its controller. Every subdivision pass and
// every traversal pass runs under the session mutex, so a renderer on one
// goroutine never sees a boundary that another goroutine is rewriting.
type Session struct {
	mu         sync.Mutex
	params     Params
	boundary   *Boundary
	controller *Controller
}

// NewSession validates p and builds the seed boundary.
func NewSession(p Params) (*Session, error) {
	b, err := NewBoundary(p.Width, p.Height, p.Padding)
	if err != nil {
		return nil, err
	}
	c, err := NewController(b, p.MaxGenerations)
	if err != nil {
		return nil, err
	}
	return &Session{params: p, boundary: b, controller: c}, nil
}

// Params returns the values the session was built from.
func (s *Session) Params() Params {
	return s.params
}

// Step advances one generation unless the session is complete.
func (s *Session) Step() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Step()
}

// Status returns the current generation and completion flag.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Status()
}

// IsComplete reports whether no further generations will be produced.
func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.IsComplete()
}

// Len returns the number of segments currently in the boundary.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundary.Len()
}

// Walk calls fn for every (segment, successor) pair of one full pass over the
// boundary while holding the session lock. fn must not call back into s.
func (s *Session) Walk(fn func(line, next Vector)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := s.boundary.Traverse()
	if err != nil {
		return err
	}
	for line, next := range seq {
		fn(line, next)
	}
	return nil
}

// Segments returns a snapshot of the boundary in traversal order. The slice
// is owned by the caller and stays valid across later steps.
func (s *Session) Segments() ([]Vector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundary.Segments()
}
