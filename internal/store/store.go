// Package store provides the single-file SQLite store holding the
// denormalized fact table and its master tables.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tmori/kessan-cli/internal/config"
	"tmori/kessan-cli/internal/dataerr"
	"tmori/kessan-cli/internal/models"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoadMode controls how InsertFacts treats existing rows.
type LoadMode string

const (
	// ModeAppend adds rows to the existing fact table.
	ModeAppend LoadMode = "append"
	// ModeReplace deletes all existing facts before loading.
	ModeReplace LoadMode = "replace"
)

// ParseLoadMode validates a mode string from a CLI flag.
func ParseLoadMode(raw string) (LoadMode, error) {
	switch LoadMode(raw) {
	case ModeAppend, ModeReplace:
		return LoadMode(raw), nil
	default:
		return "", fmt.Errorf("invalid load mode %q (must be 'append' or 'replace')", raw)
	}
}

// Store wraps the SQLite database holding the accounting facts.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite store at path. The
// parent directory is created when missing.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &dataerr.StoreError{Operation: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &dataerr.StoreError{Operation: "open", Err: err}
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY on concurrent statement use within one process.
	db.SetMaxOpenConns(1)

	log.WithField("path", path).Debug("Opened store")
	return &Store{db: db, path: path}, nil
}

// DB exposes the underlying database handle for the query layer.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the fact table, master tables and indexes when
// they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &dataerr.StoreError{Operation: "ensure schema", Err: err}
		}
	}
	log.Debug("Schema ensured")
	return nil
}

// InsertFacts loads fact rows in a single transaction. In replace mode
// the existing fact table content is deleted first. Master tables are
// rebuilt from the fact table afterwards, inside the same transaction.
func (s *Store) InsertFacts(ctx context.Context, rows []models.FactRow, mode LoadMode) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &dataerr.StoreError{Operation: "insert facts", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ModeReplace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions_denormalized`); err != nil {
			return 0, &dataerr.StoreError{Operation: "replace facts", Err: err}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions_denormalized
		(year, month, segment, division, dept_code, dept_name,
		 customer_code, customer_name, industry, account, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &dataerr.StoreError{Operation: "insert facts", Err: err}
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.Year, row.Month, row.Segment, row.Division,
			row.DeptCode, row.DeptName, row.CustomerCode, row.CustomerName,
			row.Industry, string(row.Account), row.Amount,
		); err != nil {
			return 0, &dataerr.StoreError{Operation: "insert facts", Err: err}
		}
		inserted++
	}

	if err := rebuildMasters(ctx, tx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, &dataerr.StoreError{Operation: "insert facts", Err: err}
	}

	log.WithFields(logrus.Fields{
		"count": inserted,
		"mode":  string(mode),
	}).Info("Loaded facts into store")
	return inserted, nil
}

// rebuildMasters regenerates the master tables from the fact table, the
// way the offline transform step does after each load.
func rebuildMasters(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		`DELETE FROM m_customers`,
		`INSERT INTO m_customers (customer_code, customer_name, industry)
		 SELECT DISTINCT customer_code, customer_name, industry
		 FROM transactions_denormalized ORDER BY customer_code`,
		`DELETE FROM m_departments`,
		`INSERT INTO m_departments (dept_code, dept_name, division, segment)
		 SELECT DISTINCT dept_code, dept_name, division, segment
		 FROM transactions_denormalized ORDER BY dept_code`,
		`DELETE FROM m_accounts`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &dataerr.StoreError{Operation: "rebuild masters", Err: err}
		}
	}

	// Account codes follow the fixed statement order, not the data.
	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO m_accounts (account_code, account) VALUES (?, ?)`)
	if err != nil {
		return &dataerr.StoreError{Operation: "rebuild masters", Err: err}
	}
	defer func() { _ = insert.Close() }()

	for i, acct := range models.AllAccounts {
		if _, err := insert.ExecContext(ctx, i+1, string(acct)); err != nil {
			return &dataerr.StoreError{Operation: "rebuild masters", Err: err}
		}
	}
	return nil
}
