// Package storage persists customers, projects, workdays, tags and
// invoices in a local SQLite database. It also executes the predicate
// sets produced by the filter package.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlite "github.com/mattn/go-sqlite3"

	"github.com/arivarton/stamp/internal/filter"
)

var (
	// ErrNoMatch is returned when a name or id resolves to nothing.
	ErrNoMatch = errors.New("no matching database entry")

	// ErrTooManyMatches is returned when a lookup that must be unique
	// matches several rows.
	ErrTooManyMatches = errors.New("too many matching database entries")

	// ErrNoCurrentStamp is returned when no workday is open.
	ErrNoCurrentStamp = errors.New("not stamped in")

	// ErrAlreadyStampedIn is returned when a second open workday would
	// be created.
	ErrAlreadyStampedIn = errors.New("already stamped in")
)

// Store wraps the SQLite database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates
// the schema. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_loc=auto", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases alive and matches
	// the single-writer execution model.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// filterColumns lists the workday columns a predicate may reference.
var filterColumns = map[string]bool{
	"start":       true,
	"end":         true,
	"customer_id": true,
	"project_id":  true,
	"invoice_id":  true,
}

// whereWorkdays translates a predicate set into a WHERE clause over
// the aliased workdays table. Open workdays are always excluded; the
// current stamp is queried explicitly via CurrentStamp.
func whereWorkdays(f filter.Set) (string, []any, error) {
	clauses := []string{`w."end" IS NOT NULL`}
	var args []any
	for _, p := range f {
		if !filterColumns[p.Column] {
			return "", nil, fmt.Errorf("filter references unknown column %q", p.Column)
		}
		switch p.Op {
		case filter.OpGte, filter.OpLt, filter.OpEq:
		default:
			return "", nil, fmt.Errorf("filter uses unknown operator %q", p.Op)
		}
		clauses = append(clauses, fmt.Sprintf(`w.%q %s ?`, p.Column, p.Op))
		args = append(args, p.Value)
	}
	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var serr sqlite.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite.ErrConstraintUnique
	}
	return false
}
