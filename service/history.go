package service

import (
	"encoding/json"
	"log/slog"
	"strings"

	"weatherdesk.app/errors"
	"weatherdesk.app/pkg/validation"
	"weatherdesk.app/storage"
)

const historyKey = "history"

// HistoryLedger maintains the ordered, deduplicated list of recently
// searched place names, persisted under a single key.
type HistoryLedger struct {
	store storage.KeyValueStore
	limit int
}

// NewHistoryLedger creates a ledger capped at limit entries
func NewHistoryLedger(store storage.KeyValueStore, limit int) *HistoryLedger {
	if limit < 1 {
		limit = 6
	}
	return &HistoryLedger{
		store: store,
		limit: limit,
	}
}

// List returns the persisted history, most recent first. A missing or
// unreadable record yields an empty list rather than an error.
func (h *HistoryLedger) List() []string {
	raw, found, err := h.store.Get(historyKey)
	if err != nil || !found {
		return []string{}
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		slog.Warn("Discarding malformed history record", "error", err)
		return []string{}
	}
	return names
}

// Record moves name to the front of the history, dropping any entry equal
// under case-insensitive comparison, and truncates to the cap. Empty names
// are ignored.
func (h *HistoryLedger) Record(name string) ([]string, error) {
	trimmed, ok := validation.TrimAndValidate(name)
	if !ok {
		return h.List(), nil
	}

	names := []string{trimmed}
	for _, existing := range h.List() {
		if strings.EqualFold(existing, trimmed) {
			continue
		}
		names = append(names, existing)
	}
	if len(names) > h.limit {
		names = names[:h.limit]
	}

	data, err := json.Marshal(names)
	if err != nil {
		return nil, errors.NewStorageError("encode history", err)
	}
	if err := h.store.Set(historyKey, string(data)); err != nil {
		return nil, err
	}
	return names, nil
}

// Clear empties the history and removes the persisted record entirely
func (h *HistoryLedger) Clear() error {
	return h.store.Delete(historyKey)
}
