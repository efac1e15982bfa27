package nav

import (
	"testing"

	"github.com/glabrego/burrow/internal/gopher"
	"github.com/glabrego/burrow/internal/tui/view"
)

func page(url string) view.View {
	return view.NewText("", url, "", gopher.TransportPlain)
}

func current(t *testing.T, s *Stack) string {
	t.Helper()
	v, ok := s.Current()
	if !ok {
		t.Fatal("expected a current page")
	}
	return v.URL()
}

func TestStack_PushAndBack(t *testing.T) {
	s := New()
	if _, ok := s.Current(); ok {
		t.Fatal("empty stack should have no current page")
	}
	if _, ok := s.Back(); ok {
		t.Fatal("back on empty stack should fail")
	}

	s.Push(page("gopher://a/"))
	s.Push(page("gopher://b/"))
	if got := current(t, s); got != "gopher://b/" {
		t.Fatalf("current = %q", got)
	}

	v, ok := s.Back()
	if !ok || v.URL() != "gopher://a/" {
		t.Fatalf("back = %v, %v", v, ok)
	}
	if _, ok := s.Back(); ok {
		t.Fatal("back past the start should fail")
	}
}

func TestStack_ForwardAfterBack(t *testing.T) {
	s := New()
	s.Push(page("gopher://a/"))
	s.Push(page("gopher://b/"))
	s.Back()

	v, ok := s.Forward()
	if !ok || v.URL() != "gopher://b/" {
		t.Fatalf("forward = %v, %v", v, ok)
	}
	if _, ok := s.Forward(); ok {
		t.Fatal("forward past the top should fail")
	}
}

func TestStack_PushTruncatesForwardBranch(t *testing.T) {
	s := New()
	s.Push(page("gopher://a/"))
	s.Push(page("gopher://b/"))
	s.Push(page("gopher://c/"))
	s.Back()
	s.Back() // cursor at a

	s.Push(page("gopher://d/"))
	if got := current(t, s); got != "gopher://d/" {
		t.Fatalf("current = %q", got)
	}
	if s.Len() != 2 {
		t.Fatalf("stack length = %d, want 2", s.Len())
	}
	if _, ok := s.Forward(); ok {
		t.Fatal("truncated branch should be gone")
	}
	v, _ := s.Back()
	if v.URL() != "gopher://a/" {
		t.Fatalf("back after truncation = %q", v.URL())
	}
}

func TestStack_Replace(t *testing.T) {
	s := New()
	s.Push(page("gopher://a/"))
	s.Push(page("gopher://b/"))
	s.Back()

	s.Replace(page("gopher://a2/"))
	if got := current(t, s); got != "gopher://a2/" {
		t.Fatalf("current = %q", got)
	}
	// Both directions survive a replace.
	if v, ok := s.Forward(); !ok || v.URL() != "gopher://b/" {
		t.Fatal("forward history lost by replace")
	}

	empty := New()
	empty.Replace(page("gopher://x/"))
	if got := current(t, empty); got != "gopher://x/" {
		t.Fatalf("replace on empty stack = %q", got)
	}
}
