package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type variableRecord struct {
	bun.BaseModel `bun:"table:variables"`

	Lookup    string    `bun:",pk"`
	Name      string    `bun:",notnull"`
	Value     string    `bun:",notnull"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// SQLiteStore keeps variables in a SQLite database.
type SQLiteStore struct {
	db *bun.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	sqldb, err := sql.Open(sqliteshim.DriverName(), "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open variable database: %w", err)
	}
	s, err := NewSQLiteStore(ctx, bun.NewDB(sqldb, sqlitedialect.New()))
	if err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore uses an existing bun database, creating the table if needed.
func NewSQLiteStore(ctx context.Context, db *bun.DB) (*SQLiteStore, error) {
	_, err := db.NewCreateTable().
		Model((*variableRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create variables table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (string, bool, error) {
	var rec variableRecord
	err := s.db.NewSelect().
		Model(&rec).
		Where("lookup = ?", lookupKey(name)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return rec.Value, true, nil
}

// Set upserts value. An existing row keeps its original spelling.
func (s *SQLiteStore) Set(ctx context.Context, name, value string) error {
	rec := &variableRecord{
		Lookup: lookupKey(name),
		Name:   name,
		Value:  value,
	}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (lookup) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.NewDelete().
		Model((*variableRecord)(nil)).
		Where("lookup = ?", lookupKey(name)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.NewSelect().
		Model((*variableRecord)(nil)).
		Column("name").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}
	sortNames(names)
	return names, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
