package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// Store is a connection to one artifact bundle file.
type Store struct {
	db   *sql.DB
	path string
	// tmp is the staging file of a Create store until Commit.
	tmp string
}

// Open opens an existing bundle read-only.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bundle not found: %w", fs.ErrNotExist)
		}
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Create starts a new bundle for path. Writes go to a staging file in
// the same directory; Commit moves it over path. Any existing bundle
// is left untouched until then.
func Create(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating bundle directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating staging file: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("creating staging file: %w", err)
	}

	db, err := sql.Open("sqlite", tmp+"?_pragma=busy_timeout(5000)")
	if err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path, tmp: tmp}
	if err := s.migrate(migrations.FS); err != nil {
		s.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Commit closes a store opened by Create and moves its staging file
// over the bundle path.
func (s *Store) Commit() error {
	if s.tmp == "" {
		return errors.New("store has nothing to commit")
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	if err := os.Rename(s.tmp, s.path); err != nil {
		os.Remove(s.tmp)
		s.tmp = ""
		return fmt.Errorf("replacing bundle: %w", err)
	}
	s.tmp = ""
	return nil
}

// Close closes the database connection. An uncommitted staging file
// is discarded.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.tmp != "" {
		if rmErr := os.Remove(s.tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = rmErr
		}
		s.tmp = ""
	}
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_bundle.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// WriteArtifacts stores a full artifact set in one transaction.
func (s *Store) WriteArtifacts(
	ctx context.Context,
	schema domain.FeatureSchema,
	encoders domain.EncoderTable,
	modelFormat string,
	modelBody []byte,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"features", "encoder_classes", "model"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, name := range schema.Names() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO features (position, name) VALUES (?, ?)", i, name); err != nil {
			return fmt.Errorf("writing feature %s: %w", name, err)
		}
	}

	for _, col := range encoders.Columns() {
		for code, label := range encoders[col].Classes() {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO encoder_classes (column_name, code, label) VALUES (?, ?, ?)",
				col, code, label); err != nil {
				return fmt.Errorf("writing encoder %s: %w", col, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO model (id, format, body) VALUES (1, ?, ?)", modelFormat, string(modelBody)); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}

	return tx.Commit()
}

// Features reads the feature names in position order.
func (s *Store) Features(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM features ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// EncoderClasses reads each column's labels in code order.
func (s *Store) EncoderClasses(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT column_name, code, label FROM encoder_classes ORDER BY column_name, code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make(map[string][]string)
	for rows.Next() {
		var col, label string
		var code int
		if err := rows.Scan(&col, &code, &label); err != nil {
			return nil, err
		}
		if code != len(classes[col]) {
			return nil, fmt.Errorf("encoder %s skips code %d", col, len(classes[col]))
		}
		classes[col] = append(classes[col], label)
	}
	return classes, rows.Err()
}

// Model reads the stored model format and body.
func (s *Store) Model(ctx context.Context) (format string, body string, err error) {
	row := s.db.QueryRowContext(ctx, "SELECT format, body FROM model WHERE id = 1")
	if err := row.Scan(&format, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("bundle has no model: %w", domain.ErrNotFound)
		}
		return "", "", err
	}
	return format, body, nil
}
