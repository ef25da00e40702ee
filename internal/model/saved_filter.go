package model

// FilterAll is the pass-through value for any criteria field.
const FilterAll = "All"

// FilterCriteria is a snapshot of the lead list filter state. Each field is
// either a concrete value or FilterAll, which matches everything. Search is
// free text; an empty search also matches everything.
type FilterCriteria struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Tag    string `json:"tag"`
	Date   string `json:"date"`
	Search string `json:"search"`
}

// DefaultCriteria returns criteria with every field passing through.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Status: FilterAll,
		Source: FilterAll,
		Tag:    FilterAll,
		Date:   FilterAll,
	}
}

// IsDefault reports whether no filtering is active.
func (c FilterCriteria) IsDefault() bool {
	return c == DefaultCriteria()
}

// SavedFilter is a named, persisted filter preset. It stores criteria
// values, not lead ids, so applying it re-filters the current store.
type SavedFilter struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Criteria FilterCriteria `json:"criteria"`
}
