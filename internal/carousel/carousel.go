package carousel

import "time"

// DefaultInterval is the auto-advance period
const DefaultInterval = 5 * time.Second

// State is the current slide of a carousel over Len slides
type State struct {
	Index int `json:"index"`
	Len   int `json:"len"`
}

// New returns a carousel over n slides showing the first one
func New(n int) State {
	if n < 0 {
		n = 0
	}
	return State{Len: n}
}

// Next moves forward one slide, wrapping to the first
func (s State) Next() State {
	if s.Len == 0 {
		return s
	}
	s.Index = (s.Index + 1) % s.Len
	return s
}

// Prev moves back one slide, wrapping to the last
func (s State) Prev() State {
	if s.Len == 0 {
		return s
	}
	if s.Index == 0 {
		s.Index = s.Len - 1
	} else {
		s.Index--
	}
	return s
}

// Jump shows slide i. Indices outside [0, Len) are ignored.
func (s State) Jump(i int) State {
	if i < 0 || i >= s.Len {
		return s
	}
	s.Index = i
	return s
}

// Advance is the timer step
func (s State) Advance() State {
	return s.Next()
}

// Active reports whether there are slides to rotate
func (s State) Active() bool {
	return s.Len > 0
}
