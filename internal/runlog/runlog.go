// Package runlog records completed render runs in a local SQLite database.
package runlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Run is one completed render invocation.
type Run struct {
	ID         string
	Site       string
	RasterPath string
	OutputPath string
	Panels     int
	CreatedAt  time.Time
}

// Store persists runs using modernc.org/sqlite.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path and configures WAL mode.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "runlog: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS render_runs (
	id          TEXT PRIMARY KEY,
	site        TEXT NOT NULL,
	raster_path TEXT NOT NULL,
	output_path TEXT,
	panels      INTEGER NOT NULL DEFAULT 1,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_render_runs_site ON render_runs(site);
`

// Migrate creates the run log schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "runlog: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run and returns its id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO render_runs (id, site, raster_path, output_path, panels, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, run.Site, run.RasterPath, run.OutputPath, run.Panels, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "runlog: insert run")
	}
	return id, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, site, raster_path, output_path, panels, created_at
		 FROM render_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		var out sql.NullString
		if err := rows.Scan(&r.ID, &r.Site, &r.RasterPath, &out, &r.Panels, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "runlog: scan run")
		}
		r.OutputPath = out.String
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "runlog: iterate runs")
	}
	return runs, nil
}
