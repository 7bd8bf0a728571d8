package service

import (
	"log/slog"

	"weatherdesk.app/models"
	"weatherdesk.app/storage"
)

const unitsKey = "units"

// UnitPreference persists the active measurement system across sessions
type UnitPreference struct {
	store storage.KeyValueStore
}

// NewUnitPreference creates a preference backed by the key/value store
func NewUnitPreference(store storage.KeyValueStore) *UnitPreference {
	return &UnitPreference{store: store}
}

// Load returns the persisted units, defaulting to metric when the record is
// missing, unreadable or holds an unknown token.
func (p *UnitPreference) Load() models.Units {
	raw, found, err := p.store.Get(unitsKey)
	if err != nil || !found {
		return models.UnitsMetric
	}

	units := models.Units(raw)
	if !units.IsValid() {
		slog.Warn("Discarding unknown units token", "token", raw)
		return models.UnitsMetric
	}
	return units
}

// Save persists the units token
func (p *UnitPreference) Save(units models.Units) error {
	return p.store.Set(unitsKey, string(units))
}
