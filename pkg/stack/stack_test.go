package stack_test

import (
	"minilang/pkg/stack"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPushPop(t *testing.T) {
	s := stack.New(1, 2)
	s.Push(3)

	if s.Size() != 3 {
		t.Fatalf("expected size 3, got %d", s.Size())
	}
	if top := s.Peek(); top != 3 {
		t.Errorf("expected peek 3, got %d", top)
	}

	var got []int
	for s.Size() > 0 {
		got = append(got, s.Pop())
	}
	if diff := cmp.Diff([]int{3, 2, 1}, got); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyStackReturnsZero(t *testing.T) {
	s := stack.New[string]()
	if v := s.Pop(); v != "" {
		t.Errorf("expected zero value, got %q", v)
	}
	if v := s.Peek(); v != "" {
		t.Errorf("expected zero value, got %q", v)
	}
}

func TestTruncate(t *testing.T) {
	s := stack.New("a", "b", "c", "d")
	s.Truncate(2)

	if diff := cmp.Diff([]string{"a", "b"}, s.Array()); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}

	s.Truncate(5)
	if s.Size() != 2 {
		t.Errorf("truncate past size changed the stack: %d", s.Size())
	}
}
