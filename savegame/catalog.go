package savegame

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS slots (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	path    TEXT NOT NULL,
	created INTEGER NOT NULL,
	nodes   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS slots_name_created ON slots(name, created);
`

// ErrNoSlot is returned when a slot lookup finds nothing.
var ErrNoSlot = errors.New("savegame: no such slot")

// Slot describes one save file.
type Slot struct {
	ID      string
	Name    string
	Path    string
	Created time.Time
	Nodes   int
}

// Catalog indexes save slots in a SQLite database.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// OpenCatalog creates or opens the catalog at path. Use ":memory:" for a
// throwaway catalog.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("savegame: open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("savegame: open catalog: %w", err)
	}
	// one connection, so an in-memory catalog is a single database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("savegame: catalog schema: %w", err)
	}
	return &Catalog{db: db, now: time.Now}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add records a new slot.
func (c *Catalog) Add(ctx context.Context, name, path string, nodes int) (Slot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Slot{}, fmt.Errorf("savegame: slot id: %w", err)
	}
	slot := Slot{ID: id.String(), Name: name, Path: path, Created: c.now().UTC(), Nodes: nodes}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO slots (id, name, path, created, nodes) VALUES (?, ?, ?, ?, ?)`,
		slot.ID, slot.Name, slot.Path, slot.Created.UnixNano(), slot.Nodes)
	if err != nil {
		return Slot{}, fmt.Errorf("savegame: add slot: %w", err)
	}
	return slot, nil
}

// List returns every slot, newest first.
func (c *Catalog) List(ctx context.Context) ([]Slot, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, path, created, nodes FROM slots ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("savegame: list slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("savegame: list slots: %w", err)
	}
	return slots, nil
}

// Get returns the slot with the given id.
func (c *Catalog) Get(ctx context.Context, id string) (Slot, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, path, created, nodes FROM slots WHERE id = ?`, id)
	return scanSlot(row)
}

// Latest returns the newest slot with the given name.
func (c *Catalog) Latest(ctx context.Context, name string) (Slot, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, path, created, nodes FROM slots WHERE name = ?
		 ORDER BY created DESC, id DESC LIMIT 1`, name)
	return scanSlot(row)
}

// Delete removes a slot from the catalog. The save file is left alone.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("savegame: delete slot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSlot, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(sc scanner) (Slot, error) {
	var s Slot
	var created int64
	if err := sc.Scan(&s.ID, &s.Name, &s.Path, &created, &s.Nodes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Slot{}, ErrNoSlot
		}
		return Slot{}, fmt.Errorf("savegame: read slot: %w", err)
	}
	s.Created = time.Unix(0, created).UTC()
	return s, nil
}
