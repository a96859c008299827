package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// Store implements directory.Store using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite directory backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", directory.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "bizdirctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", directory.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", directory.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL CHECK(length(trim(name)) > 0),
			county      TEXT NOT NULL DEFAULT '',
			city        TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL DEFAULT '',
			website     TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			address     TEXT NOT NULL DEFAULT '',
			contact     TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_county ON records(county);
		CREATE INDEX IF NOT EXISTS idx_records_name ON records(lower(name));

		CREATE TABLE IF NOT EXISTS record_categories (
			record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
			category  TEXT NOT NULL,
			position  INTEGER NOT NULL,
			PRIMARY KEY (record_id, category)
		);
		CREATE INDEX IF NOT EXISTS idx_record_categories_category ON record_categories(category);

		CREATE TABLE IF NOT EXISTS object_infos (
			api_name               TEXT PRIMARY KEY,
			default_record_type_id TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS record_types (
			object_api_name TEXT NOT NULL REFERENCES object_infos(api_name) ON DELETE CASCADE,
			record_type_id  TEXT NOT NULL,
			name            TEXT NOT NULL,
			available       INTEGER NOT NULL DEFAULT 1,
			master          INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (object_api_name, record_type_id)
		);

		CREATE TABLE IF NOT EXISTS picklist_values (
			record_type_id TEXT NOT NULL,
			field          TEXT NOT NULL,
			position       INTEGER NOT NULL,
			label          TEXT NOT NULL,
			value          TEXT NOT NULL,
			PRIMARY KEY (record_type_id, field, position)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", directory.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRecord persists a new business record and its category tags.
func (s *Store) CreateRecord(r record.Record) error {
	if err := record.ValidateID(r.ID); err != nil {
		return fmt.Errorf("%w: %v", directory.ErrValidation, err)
	}
	if err := record.ValidateName(r.Name); err != nil {
		return fmt.Errorf("%w: %v", directory.ErrValidation, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", directory.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(
		`INSERT INTO records (id, name, county, city, phone, email, website, description, address, contact, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.County, r.City, r.Phone, r.Email, r.Website,
		r.Description, r.Address, r.Contact,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting record: %v", directory.ErrStorage, err)
	}

	for i, c := range r.Categories {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO record_categories (record_id, category, position) VALUES (?, ?, ?)",
			r.ID, c, i,
		); err != nil {
			return fmt.Errorf("%w: inserting category: %v", directory.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing record: %v", directory.ErrStorage, err)
	}
	return nil
}

const recordColumns = "id, name, county, city, phone, email, website, description, address, contact, created_at, updated_at"

func scanRecord(sc interface{ Scan(...any) error }) (record.Record, error) {
	var r record.Record
	var createdStr, updatedStr string
	if err := sc.Scan(
		&r.ID, &r.Name, &r.County, &r.City, &r.Phone, &r.Email, &r.Website,
		&r.Description, &r.Address, &r.Contact, &createdStr, &updatedStr,
	); err != nil {
		return record.Record{}, err
	}

	var err error
	r.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing created_at: %v", directory.ErrStorage, err)
	}
	r.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing updated_at: %v", directory.ErrStorage, err)
	}
	return r, nil
}

func (s *Store) categories(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category FROM record_categories WHERE record_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", directory.ErrStorage, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", directory.ErrStorage, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", directory.ErrStorage, err)
	}
	return out, nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (record.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	r, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return record.Record{}, directory.ErrNotFound
		}
		return record.Record{}, fmt.Errorf("%w: querying record: %v", directory.ErrStorage, err)
	}

	r.Categories, err = s.categories(ctx, id)
	if err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// FilterRecords returns the summaries matching q, ordered by name.
func (s *Store) FilterRecords(ctx context.Context, q directory.Query) ([]record.Summary, error) {
	q = q.Normalize()

	query := "SELECT " + recordColumns + " FROM records"
	var where []string
	var args []interface{}

	if q.SearchText != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.SearchText)) + "%"
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if len(q.Counties) > 0 {
		where = append(where, "county IN ("+placeholders(len(q.Counties))+")")
		for _, c := range q.Counties {
			args = append(args, c)
		}
	}
	if len(q.Categories) > 0 {
		where = append(where, "EXISTS (SELECT 1 FROM record_categories rc WHERE rc.record_id = records.id AND rc.category IN ("+placeholders(len(q.Categories))+"))")
		for _, c := range q.Categories {
			args = append(args, c)
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lower(name), id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: filtering records: %v", directory.ErrStorage, err)
	}

	var recs []record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: scanning record: %v", directory.ErrStorage, err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: iterating records: %v", directory.ErrStorage, err)
	}
	rows.Close()

	results := make([]record.Summary, 0, len(recs))
	for _, r := range recs {
		r.Categories, err = s.categories(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, r.Summary)
	}

	directory.SortSummaries(results)
	return results, nil
}
