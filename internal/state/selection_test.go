package state

import (
	"fmt"
	"testing"
)

func TestSelectAllThenClear(t *testing.T) {
	t.Parallel()

	var s Selection
	s.SelectAll([]string{"a", "b", "c"})
	if got := s.Count(); got != 3 {
		t.Errorf("after SelectAll got count %d, want 3", got)
	}
	s.Clear()
	if got := s.Count(); got != 0 {
		t.Errorf("after Clear got count %d, want 0", got)
	}
}

func TestDoubleToggleRestoresState(t *testing.T) {
	t.Parallel()

	var s Selection
	s.Toggle("a")
	if !s.Has("a") {
		t.Fatal("first toggle did not select")
	}
	s.Toggle("a")
	if s.Has("a") {
		t.Error("second toggle did not deselect")
	}
	if s.Count() != 0 {
		t.Errorf("got count %d, want 0", s.Count())
	}
}

func TestEnablementThresholds(t *testing.T) {
	t.Parallel()

	var s Selection
	if s.CanMerge() || s.CanDelete() {
		t.Error("empty selection enables bulk actions")
	}
	s.Set("a", true)
	if s.CanMerge() {
		t.Error("single selection enables merge")
	}
	if !s.CanDelete() {
		t.Error("single selection disables delete")
	}
	s.Set("b", true)
	if !s.CanMerge() {
		t.Error("two selected disables merge")
	}
}

func TestOrderedFollowsCacheOrder(t *testing.T) {
	t.Parallel()

	var s Selection
	s.Set("c", true)
	s.Set("a", true)
	s.Set("gone", true)

	got := s.Ordered([]string{"a", "b", "c"})
	if want := "[a c]"; fmt.Sprint(got) != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
