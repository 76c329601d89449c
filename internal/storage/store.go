// Package storage persists generated and edited chunks in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
	"github.com/OCharnyshevich/hexterrain/pkg/world/rle"
)

// Store keeps RLE-encoded chunk buffers keyed by world and chunk position.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the chunk database at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("opened chunk store", "path", path)
	return &Store{db: db, log: log}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			key TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			cq INTEGER NOT NULL,
			cr INTEGER NOT NULL,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_world ON chunks(world_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key returns the row key of chunk (cq, cr) in worldID.
func Key(worldID string, cq, cr int) string {
	return fmt.Sprintf("%s:%d:%d", worldID, cq, cr)
}

// Save writes c under worldID, replacing any earlier copy.
func (s *Store) Save(ctx context.Context, worldID string, c *chunk.Chunk) error {
	data := rle.Encode(c.Raw())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks (key, world_id, cq, cr, data, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		Key(worldID, c.CQ, c.CR), worldID, c.CQ, c.CR, data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save chunk (%d,%d): %w", c.CQ, c.CR, err)
	}
	return nil
}

// Load returns the stored chunk, or nil if it has never been saved.
func (s *Store) Load(ctx context.Context, worldID string, cq, cr int) (*chunk.Chunk, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM chunks WHERE key = ?`, Key(worldID, cq, cr),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chunk (%d,%d): %w", cq, cr, err)
	}

	ids, err := rle.Decode(data, chunk.Volume)
	if err != nil {
		return nil, fmt.Errorf("decode chunk (%d,%d): %w", cq, cr, err)
	}
	return chunk.FromRaw(cq, cr, ids)
}

// DeleteWorld removes every chunk of worldID and returns how many were removed.
func (s *Store) DeleteWorld(ctx context.Context, worldID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE world_id = ?`, worldID)
	if err != nil {
		return 0, fmt.Errorf("delete world %s: %w", worldID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete world %s: %w", worldID, err)
	}
	s.log.Info("deleted world", "world", worldID, "chunks", n)
	return n, nil
}

// WorldSize returns the number of encoded bytes stored for worldID.
func (s *Store) WorldSize(ctx context.Context, worldID string) (int64, error) {
	var size int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(data)), 0) FROM chunks WHERE world_id = ?`, worldID,
	).Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("world size %s: %w", worldID, err)
	}
	return size, nil
}

// Count returns the number of chunks stored for worldID.
func (s *Store) Count(ctx context.Context, worldID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE world_id = ?`, worldID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chunks %s: %w", worldID, err)
	}
	return n, nil
}

// Positions lists the stored chunk positions of worldID ordered by (cq, cr).
func (s *Store) Positions(ctx context.Context, worldID string) ([]chunk.Pos, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cq, cr FROM chunks WHERE world_id = ? ORDER BY cq, cr`, worldID)
	if err != nil {
		return nil, fmt.Errorf("list chunks %s: %w", worldID, err)
	}
	defer rows.Close()

	var out []chunk.Pos
	for rows.Next() {
		var p chunk.Pos
		if err := rows.Scan(&p.Q, &p.R); err != nil {
			return nil, fmt.Errorf("list chunks %s: %w", worldID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
