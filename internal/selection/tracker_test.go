package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Toggle(t *testing.T) {
	tr := NewTracker()

	tr.Toggle("a")
	assert.True(t, tr.Has("a"))
	assert.Equal(t, 1, tr.Count())

	tr.Toggle("a")
	assert.False(t, tr.Has("a"))
	assert.Equal(t, 0, tr.Count())
}

func TestTracker_InsertionOrder(t *testing.T) {
	tr := NewTracker()
	tr.Toggle("c")
	tr.Toggle("a")
	tr.Toggle("b")
	assert.Equal(t, []string{"c", "a", "b"}, tr.IDs())

	// Removing from the middle keeps the rest in order.
	tr.Toggle("a")
	assert.Equal(t, []string{"c", "b"}, tr.IDs())
}

func TestTracker_SelectAllAndClear(t *testing.T) {
	tr := NewTracker()
	tr.Toggle("x")

	visible := []string{"a", "b", "c"}
	tr.SelectAll(visible)
	assert.Equal(t, 3, tr.Count())
	assert.False(t, tr.Has("x"), "SelectAll replaces, not merges")
	assert.Equal(t, visible, tr.IDs())

	tr.Clear()
	assert.Equal(t, 0, tr.Count())
	assert.Empty(t, tr.IDs())
}

func TestTracker_TriState(t *testing.T) {
	visible := []string{"a", "b", "c"}

	tests := []struct {
		name              string
		selected          []string
		wantAll           bool
		wantIndeterminate bool
	}{
		{"empty selection", nil, false, false},
		{"partial selection", []string{"a"}, false, true},
		{"two of three", []string{"a", "b"}, false, true},
		{"all selected", []string{"a", "b", "c"}, true, false},
		{"stale ids of equal size still count by size", []string{"x", "y", "z"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for _, id := range tt.selected {
				tr.Toggle(id)
			}

			gotAll := tr.IsAllSelected(visible)
			gotInd := tr.IsIndeterminate(visible)
			assert.Equal(t, tt.wantAll, gotAll, "IsAllSelected")
			assert.Equal(t, tt.wantIndeterminate, gotInd, "IsIndeterminate")

			// The two states are mutually exclusive.
			assert.False(t, gotAll && gotInd)
		})
	}
}

func TestTracker_IsAllSelectedEmptyView(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.IsAllSelected(nil))
	tr.Toggle("a")
	assert.False(t, tr.IsAllSelected(nil))
	assert.False(t, tr.IsIndeterminate(nil))
}
