package storage

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weatherdesk.app/config"
	apperrors "weatherdesk.app/errors"
)

// Entry is one persisted key/value pair
type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// TableName overrides the default table name
func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore is a KeyValueStore backed by a gorm-managed database.
// The sqlite variant is the default local persistence; the postgres variant
// exists for shared deployments.
type GormStore struct {
	db *gorm.DB
}

// NewFileStore opens a sqlite-backed store at the given file path
func NewFileStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, apperrors.NewStorageError("open sqlite store", err)
	}
	return newGormStore(db)
}

// NewPostgresStore opens a postgres-backed store
func NewPostgresStore(cfg *config.PostgresConfig) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, apperrors.NewStorageError("connect to postgres store", err)
	}
	return newGormStore(db)
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, apperrors.NewStorageError("migrate key/value schema", err)
	}
	return &GormStore{db: db}, nil
}

// Get retrieves the value stored under key
func (s *GormStore) Get(key string) (string, bool, error) {
	var entry Entry
	result := s.db.First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		log.Printf("[ERROR] Database error when reading key %s: %v\n", key, result.Error)
		return "", false, apperrors.NewStorageError("read key", result.Error)
	}
	return entry.Value, true, nil
}

// Set stores value under key, replacing any prior value
func (s *GormStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when writing key %s: %v\n", key, result.Error)
		return apperrors.NewStorageError("write key", result.Error)
	}
	return nil
}

// Delete removes the value stored under key; missing keys are not an error
func (s *GormStore) Delete(key string) error {
	result := s.db.Delete(&Entry{}, "key = ?", key)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting key %s: %v\n", key, result.Error)
		return apperrors.NewStorageError("delete key", result.Error)
	}
	return nil
}

// Close closes the underlying database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
