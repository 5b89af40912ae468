// Package storage is the sqlite-backed catalog store for filegripd.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"filegrip/internal/domain"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// MaxPerPage caps the page size a client may request.
const MaxPerPage = 200

const schema = `
CREATE TABLE IF NOT EXISTS files (
	id         TEXT PRIMARY KEY,
	file_name  TEXT NOT NULL,
	file_size  INTEGER NOT NULL DEFAULT 0,
	caption    TEXT NOT NULL DEFAULT '',
	year       INTEGER NOT NULL DEFAULT 0,
	file_type  TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_name ON files(file_name);
CREATE INDEX IF NOT EXISTS idx_files_year ON files(year);
CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at);
`

// Store wraps the sqlite database holding the file catalog.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the catalog database at dbPath.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Search returns one page of records matching the query. Text matches are
// case-insensitive substring matches on the file name; year and type filters
// are exact. Results are ordered by creation time.
func (s *Store) Search(ctx context.Context, q domain.Query, page, perPage int) ([]domain.FileRecord, error) {
	page, perPage = clampPage(page, perPage)

	var conds []string
	var args []any

	if q.Text != "" {
		conds = append(conds, "file_name LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(q.Text)+"%")
	}
	if q.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, q.Year)
	}
	if q.Type != "" {
		conds = append(conds, "file_type = ?")
		args = append(args, strings.ToLower(q.Type))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	order := "DESC"
	if q.Sort == domain.SortAsc {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, file_name, file_size, caption, year, file_type
		FROM files %s
		ORDER BY created_at %s, id %s
		LIMIT ? OFFSET ?`, where, order, order)
	args = append(args, perPage, (page-1)*perPage)

	return s.queryRecords(ctx, query, args...)
}

// Latest returns one page of the newest records.
func (s *Store) Latest(ctx context.Context, page, perPage int) ([]domain.FileRecord, error) {
	return s.Search(ctx, domain.Query{Sort: domain.SortDesc}, page, perPage)
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (domain.FileRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, file_size, caption, year, file_type
		FROM files WHERE id = ?`, id)

	var rec domain.FileRecord
	err := row.Scan(&rec.ID, &rec.FileName, &rec.FileSize, &rec.Caption, &rec.Year, &rec.FileType)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FileRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.FileRecord{}, fmt.Errorf("scanning record %s: %w", id, err)
	}
	return rec, nil
}

// Insert stores a record, generating an id and inferring the file type when
// they are missing. Returns the stored record.
func (s *Store) Insert(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FileType == "" {
		rec.FileType = domain.InferType(rec.FileName)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO files (id, file_name, file_size, caption, year, file_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FileName, rec.FileSize, rec.Caption, rec.Year, rec.FileType,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return domain.FileRecord{}, fmt.Errorf("inserting record: %w", err)
	}
	return rec, nil
}

// InsertBatch stores records in a single transaction.
func (s *Store) InsertBatch(ctx context.Context, records []domain.FileRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO files (id, file_name, file_size, caption, year, file_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.FileType == "" {
			rec.FileType = domain.InferType(rec.FileName)
		}
		// Spread creation times so insertion order survives sorting.
		createdAt := now.Add(time.Duration(i) * time.Millisecond).Format(time.RFC3339Nano)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.FileName, rec.FileSize,
			rec.Caption, rec.Year, rec.FileType, createdAt); err != nil {
			return fmt.Errorf("inserting record %s: %w", rec.FileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

// Count returns the total number of records in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]domain.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.FileRecord
	for rows.Next() {
		var rec domain.FileRecord
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.FileSize,
			&rec.Caption, &rec.Year, &rec.FileType); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
