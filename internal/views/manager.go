// Package views persists named filter presets in a key-value store.
package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
)

// savedFiltersKey is the single key under which the whole preset list is
// stored. Every write replaces the full list.
const savedFiltersKey = "crm_saved_filters"

// Manager lists, saves, applies and deletes filter presets.
type Manager struct {
	kv service.KV
}

// NewManager returns a Manager backed by kv.
func NewManager(kv service.KV) *Manager {
	return &Manager{kv: kv}
}

// List returns all saved presets in insertion order. A missing key means
// no presets have ever been saved.
func (m *Manager) List() ([]model.SavedFilter, error) {
	raw, err := m.kv.Get(savedFiltersKey)
	if errors.Is(err, common.ErrNotFound) {
		return []model.SavedFilter{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load saved filters: %w", err)
	}

	var filters []model.SavedFilter
	if err := json.Unmarshal(raw, &filters); err != nil {
		return nil, fmt.Errorf("failed to decode saved filters: %w", err)
	}
	if filters == nil {
		filters = []model.SavedFilter{}
	}
	return filters, nil
}

// Save appends a new preset holding a snapshot of criteria and returns it.
// A blank name is rejected.
func (m *Manager) Save(name string, criteria model.FilterCriteria) (*model.SavedFilter, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: filter name is empty", common.ErrValidation)
	}

	filters, err := m.List()
	if err != nil {
		return nil, err
	}

	saved := model.SavedFilter{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Criteria: criteria,
	}
	filters = append(filters, saved)

	if err := m.persist(filters); err != nil {
		return nil, err
	}

	slog.Debug("saved filter view", "name", saved.Name, "id", saved.ID)
	return &saved, nil
}

// Apply returns the criteria snapshot of the preset with the given id.
func (m *Manager) Apply(id string) (model.FilterCriteria, error) {
	filters, err := m.List()
	if err != nil {
		return model.DefaultCriteria(), err
	}
	for _, f := range filters {
		if f.ID == id {
			return f.Criteria, nil
		}
	}
	return model.DefaultCriteria(), fmt.Errorf("saved filter %s: %w", id, common.ErrNotFound)
}

// Delete removes the preset with the given id. Absent ids are a no-op.
func (m *Manager) Delete(id string) error {
	filters, err := m.List()
	if err != nil {
		return err
	}

	kept := filters[:0]
	for _, f := range filters {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return m.persist(kept)
}

func (m *Manager) persist(filters []model.SavedFilter) error {
	raw, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to encode saved filters: %w", err)
	}
	if err := m.kv.Set(savedFiltersKey, raw); err != nil {
		return fmt.Errorf("failed to store saved filters: %w", err)
	}
	return nil
}
