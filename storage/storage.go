// Package storage implements the key/value persistence substrate backing
// the unit preference and search history.
package storage

import (
	"fmt"

	"weatherdesk.app/config"
	"weatherdesk.app/errors"
)

// KeyValueStore defines the persistence operations the client relies on.
// Values are plain strings; each key is independently persisted with
// last-write-wins semantics.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// NewStore creates the key/value store selected by storage configuration
func NewStore(cfg *config.StorageConfig) (KeyValueStore, error) {
	switch cfg.Type {
	case config.StorageTypeFile:
		return NewFileStore(cfg.FilePath)
	case config.StorageTypeRedis:
		return NewRedisStore(&cfg.Redis)
	case config.StorageTypePostgres:
		return NewPostgresStore(&cfg.Postgres)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported storage type: %s", cfg.Type), nil)
	}
}
