// Package selection tracks which leads are selected in the current view.
package selection

// Tracker holds the set of selected lead ids, scoped against the
// currently filtered view. Insertion order is preserved so exports of a
// selection keep the order the user selected in.
type Tracker struct {
	members map[string]struct{}
	order   []string
}

// NewTracker returns an empty selection.
func NewTracker() *Tracker {
	return &Tracker{members: make(map[string]struct{})}
}

// Toggle inserts id if absent and removes it if present.
func (t *Tracker) Toggle(id string) {
	if _, ok := t.members[id]; ok {
		delete(t.members, id)
		for i, existing := range t.order {
			if existing == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		return
	}
	t.members[id] = struct{}{}
	t.order = append(t.order, id)
}

// SelectAll replaces the selection with exactly the visible ids.
func (t *Tracker) SelectAll(visibleIDs []string) {
	t.members = make(map[string]struct{}, len(visibleIDs))
	t.order = make([]string, 0, len(visibleIDs))
	for _, id := range visibleIDs {
		if _, ok := t.members[id]; ok {
			continue
		}
		t.members[id] = struct{}{}
		t.order = append(t.order, id)
	}
}

// Clear empties the selection.
func (t *Tracker) Clear() {
	t.members = make(map[string]struct{})
	t.order = nil
}

// Has reports whether id is selected.
func (t *Tracker) Has(id string) bool {
	_, ok := t.members[id]
	return ok
}

// Count returns the number of selected ids.
func (t *Tracker) Count() int {
	return len(t.members)
}

// IDs returns the selected ids in insertion order.
func (t *Tracker) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// IsAllSelected reports whether every visible lead is selected. The check
// compares sizes only, not membership: a stale selection of equal size
// still counts as all-selected. Empty views are never all-selected.
func (t *Tracker) IsAllSelected(visibleIDs []string) bool {
	return len(visibleIDs) > 0 && len(t.members) == len(visibleIDs)
}

// IsIndeterminate reports whether the selection is non-empty but smaller
// than the visible set. Mutually exclusive with IsAllSelected.
func (t *Tracker) IsIndeterminate(visibleIDs []string) bool {
	return len(t.members) > 0 && len(t.members) < len(visibleIDs)
}
