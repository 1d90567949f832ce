package state

// Selection is the per-surface set of checked clip ids. It is never sent to
// the backend as a whole; bulk operations receive explicit id lists derived
// from it. The zero value is an empty selection.
type Selection struct {
	ids map[string]struct{}
}

// Set marks id as selected or unselected.
func (s *Selection) Set(id string, selected bool) {
	if selected {
		if s.ids == nil {
			s.ids = make(map[string]struct{})
		}
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// Toggle flips the selected state of id.
func (s *Selection) Toggle(id string) {
	s.Set(id, !s.Has(id))
}

// SelectAll replaces the selection with exactly the given ids.
func (s *Selection) SelectAll(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *Selection) Count() int { return len(s.ids) }

// Ordered returns the selected ids in the order they appear in order,
// dropping any selected id no longer present. Operations that care about
// sequence (merge) pass the cache order here.
func (s *Selection) Ordered(order []string) []string {
	var out []string
	for _, id := range order {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// CanMerge reports whether enough clips are selected to merge.
func (s *Selection) CanMerge() bool { return s.Count() >= 2 }

// CanDelete reports whether any clip is selected.
func (s *Selection) CanDelete() bool { return s.Count() >= 1 }
