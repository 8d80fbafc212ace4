// Package store persists the ingestion ledger and the per-family
// result tables.
package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/config"
	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/result"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 100

// StorageError wraps a failed store operation so callers can
// distinguish write failures from document-shape failures.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store provides the ingestion ledger and the per-family result
// tables. One document is the atomic unit of ingestion: LoadDocument
// commits a document's rows and its ledger entry together or not at
// all.
type Store interface {
	Start(ctx context.Context) error
	Stop() error

	HasProcessed(ctx context.Context, name string) (bool, error)
	Record(ctx context.Context, name string) error

	EnsureTable(ctx context.Context, table string) error
	InsertRows(ctx context.Context, table string, rows []result.Row) error
	LoadDocument(ctx context.Context, table string, rows []result.Row, file string) error
}

// Compile-time interface check.
var _ Store = (*store)(nil)

type store struct {
	log logrus.FieldLogger
	cfg *config.DatabaseConfig
	db  *gorm.DB
}

// NewStore creates a new Store backed by the configured database
// driver.
func NewStore(log logrus.FieldLogger, cfg *config.DatabaseConfig) Store {
	return &store{
		log: log.WithField("component", "store"),
		cfg: cfg,
	}
}

// Start opens the database connection and migrates the ledger table.
func (s *store) Start(ctx context.Context) error {
	var dialector gorm.Dialector

	gormCfg := &gorm.Config{
		Logger: logger.Discard,
	}

	switch s.cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(s.cfg.SQLite.Path)
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			s.cfg.Postgres.Host,
			s.cfg.Postgres.Port,
			s.cfg.Postgres.User,
			s.cfg.Postgres.Password,
			s.cfg.Postgres.Database,
			s.cfg.Postgres.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", s.cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	s.db = db

	if err := s.db.WithContext(ctx).AutoMigrate(&ParsedFile{}); err != nil {
		return fmt.Errorf("migrating ledger table: %w", err)
	}

	s.log.WithField("driver", s.cfg.Driver).
		Info("Database connected")

	return nil
}

// Stop closes the underlying database connection.
func (s *store) Stop() error {
	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying db: %w", err)
	}

	return sqlDB.Close()
}

// HasProcessed reports whether a file name is recorded in the ledger.
func (s *store) HasProcessed(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&ParsedFile{}).
		Where("file_name = ?", name).
		Count(&count).Error; err != nil {
		return false, &StorageError{Op: "checking ledger", Err: err}
	}

	return count > 0, nil
}

// Record appends a file name to the ledger. Recording an
// already-present name is a no-op thanks to the unique index.
func (s *store) Record(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ParsedFile{FileName: name}).Error; err != nil {
		return &StorageError{Op: "recording ledger entry", Err: err}
	}

	return nil
}

// tableNamePattern is the only shape accepted for family table names.
// Table names derive from file content, so anything outside this
// whitelist is rejected before it reaches the DDL layer.
var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// validTableName rejects table identifiers that do not match the
// whitelist pattern.
func validTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return &StorageError{
			Op:  "validating table name",
			Err: fmt.Errorf("invalid table name %q", table),
		}
	}

	return nil
}

// EnsureTable creates the family table with the fixed row schema if it
// does not exist yet.
func (s *store) EnsureTable(ctx context.Context, table string) error {
	if err := validTableName(table); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).
		Table(table).
		AutoMigrate(&result.Row{}); err != nil {
		return &StorageError{Op: "creating table " + table, Err: err}
	}

	return nil
}

// InsertRows appends rows to a family table in a single transaction.
func (s *store) InsertRows(ctx context.Context, table string, rows []result.Row) error {
	if err := validTableName(table); err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(table).CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return &StorageError{Op: "inserting rows into " + table, Err: err}
	}

	return nil
}

// LoadDocument commits one document's rows and its ledger entry in a
// single transaction, so a crash can neither record a file whose rows
// did not land nor land rows without recording the file.
func (s *store) LoadDocument(ctx context.Context, table string, rows []result.Row, file string) error {
	if err := validTableName(table); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Table(table).CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("inserting %d rows into %s: %w", len(rows), table, err)
			}
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ParsedFile{FileName: file}).Error; err != nil {
			return fmt.Errorf("recording %s in ledger: %w", file, err)
		}

		return nil
	})
	if err != nil {
		return &StorageError{Op: "loading document", Err: err}
	}

	return nil
}
