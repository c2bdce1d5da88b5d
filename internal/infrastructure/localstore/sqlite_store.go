package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
)

var _ catalog.LocalStore = (*SQLiteStore)(nil)

// cacheEntry es una fila clave-valor del caché local.
type cacheEntry struct {
	Key       string `gorm:"column:cache_key;primaryKey;size:255"`
	Value     []byte
	UpdatedAt time.Time
}

func (cacheEntry) TableName() string { return "cache_entries" }

// SQLiteStore guarda los snapshots en un archivo SQLite local (sobrevive reinicios sin Redis).
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite abre (o crea) la base y migra la tabla.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrar cache_entries: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get lee la clave.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e cacheEntry
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

// Set inserta o reemplaza la clave.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	e := cacheEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Close cierra la conexión subyacente.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
