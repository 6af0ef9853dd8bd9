// Package store persists notes in a single SQLite table.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverModernc is the pure-Go driver and the default.
	DriverModernc = "sqlite"
	// DriverCgo is the mattn/go-sqlite3 driver (requires cgo).
	DriverCgo = "sqlite3"

	// timeLayout is fixed-width so lexical order matches chronological order.
	timeLayout = "2006-01-02 15:04:05.000000"
)

// fallback layouts accepted when reading rows written by other tools.
var readLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
}

// Note is the single persisted entity.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Favorite  bool      `json:"is_favorite"`
}

// Stats summarizes the notes table.
type Stats struct {
	Total     int `json:"total"`
	Favorites int `json:"favorites"`
	// UniqueTags counts distinct raw tags strings, not individual tags.
	UniqueTags int `json:"unique_tags"`
}

// Store handles SQLite operations for notes.
// Every operation holds mu for its duration; the pool is limited to one
// connection so the file has a single writer.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	driver string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDriver selects the database/sql driver name.
func WithDriver(driver string) Option {
	return func(s *Store) {
		if driver != "" {
			s.driver = driver
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		driver: DriverModernc,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn, err := dataSourceName(s.driver, path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(s.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s.db = db
	s.logger.Debug("store: opened", "path", path, "driver", s.driver)
	return s, nil
}

// dataSourceName builds a driver-specific DSN with a busy timeout.
func dataSourceName(driver, path string) (string, error) {
	switch driver {
	case DriverModernc:
		return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	case DriverCgo:
		return path + "?_busy_timeout=5000&_journal_mode=WAL", nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", driver)
	}
}

// DefaultDBPath returns ~/.local/share/quill/notes.db, or notes.db in the
// working directory when the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes.db"
	}
	return filepath.Join(home, ".local", "share", "quill", "notes.db")
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(timeLayout)
}

// Create inserts a note and returns its id. created_at and updated_at get
// the same value.
func (s *Store) Create(title, content, tags string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	res, err := s.db.Exec(`
		INSERT INTO notes (title, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, content, tags, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	s.logger.Debug("store: created", "id", id)
	return id, nil
}

// Update overwrites title, content and tags and refreshes updated_at.
// An unknown id is a no-op.
func (s *Store) Update(id int64, title, content, tags string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, title, content, tags, s.stamp(), id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.logger.Debug("store: update matched no row", "id", id)
	}
	return nil
}

// Delete removes a note. An unknown id is a no-op.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag in place. An unknown id is a no-op.
func (s *Store) ToggleFavorite(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`UPDATE notes SET is_favorite = NOT is_favorite WHERE id = ?`, id); err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, title, content, created_at, updated_at, tags, is_favorite FROM notes`

// Get retrieves a note by id. Returns nil, nil when absent.
func (s *Store) Get(id int64) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := scanNote(s.db.QueryRow(selectColumns+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query note: %w", err)
	}
	return note, nil
}

// List returns notes whose title or content contains search and whose tags
// contain tag, most recently updated first. Empty filters match everything.
func (s *Store) List(search, tag string) ([]Note, error) {
	query := selectColumns + ` WHERE 1=1`
	var args []any

	if search != "" {
		pattern := likePattern(search)
		query += ` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	if tag != "" {
		query += ` AND tags LIKE ? ESCAPE '\'`
		args = append(args, likePattern(tag))
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

// Stats returns the total, favorite and distinct-tags counts.
func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&st.Total); err != nil {
		return Stats{}, fmt.Errorf("count notes: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE is_favorite = 1`).Scan(&st.Favorites); err != nil {
		return Stats{}, fmt.Errorf("count favorites: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT tags) FROM notes`).Scan(&st.UniqueTags); err != nil {
		return Stats{}, fmt.Errorf("count tags: %w", err)
	}
	return st, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring LIKE match, escaping wildcards.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*Note, error) {
	var (
		note               Note
		content, tags      sql.NullString
		createdAt, updated any
		favorite           any
	)
	if err := row.Scan(&note.ID, &note.Title, &content, &createdAt, &updated, &tags, &favorite); err != nil {
		return nil, err
	}
	note.Content = content.String
	note.Tags = tags.String
	note.CreatedAt = parseTime(createdAt)
	note.UpdatedAt = parseTime(updated)
	note.Favorite = truthy(favorite)
	return &note, nil
}

// truthy reads a BOOLEAN column; drivers return either bool or int64.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case []byte:
		return string(b) == "1" || strings.EqualFold(string(b), "true")
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	}
	return false
}

// parseTime accepts the forms SQLite drivers hand back for TIMESTAMP columns.
func parseTime(v any) time.Time {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}
	}
	for _, layout := range readLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
