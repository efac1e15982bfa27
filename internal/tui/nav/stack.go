// Package nav holds the session's page history as a browser-style
// stack with a cursor.
package nav

import "github.com/glabrego/burrow/internal/tui/view"

// Stack is the visited-page stack. The cursor points at the page
// currently shown; pushing while the cursor is not at the top
// truncates the forward branch, like a web browser.
type Stack struct {
	pages []view.View
	pos   int
}

func New() *Stack {
	return &Stack{pos: -1}
}

// Current returns the page under the cursor.
func (s *Stack) Current() (view.View, bool) {
	if s.pos < 0 || s.pos >= len(s.pages) {
		return nil, false
	}
	return s.pages[s.pos], true
}

// Push makes v the new current page, discarding anything forward of
// the cursor.
func (s *Stack) Push(v view.View) {
	s.pages = append(s.pages[:s.pos+1], v)
	s.pos = len(s.pages) - 1
}

// Back moves the cursor one page toward the start.
func (s *Stack) Back() (view.View, bool) {
	if s.pos <= 0 {
		return nil, false
	}
	s.pos--
	return s.pages[s.pos], true
}

// Forward moves the cursor one page toward the top.
func (s *Stack) Forward() (view.View, bool) {
	if s.pos >= len(s.pages)-1 {
		return nil, false
	}
	s.pos++
	return s.pages[s.pos], true
}

// Replace swaps the current page in place, keeping both directions of
// history. Used by reload.
func (s *Stack) Replace(v view.View) {
	if s.pos < 0 {
		s.Push(v)
		return
	}
	s.pages[s.pos] = v
}

// Len reports how many pages the stack holds.
func (s *Stack) Len() int { return len(s.pages) }
