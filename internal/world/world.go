// Package world caches chunks in front of a generator and a chunk store.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
	"github.com/OCharnyshevich/hexterrain/pkg/hex"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
	"github.com/OCharnyshevich/hexterrain/pkg/world/gen"
)

// ChunkStore persists chunks outside the process.
type ChunkStore interface {
	Save(ctx context.Context, worldID string, c *chunk.Chunk) error
	Load(ctx context.Context, worldID string, cq, cr int) (*chunk.Chunk, error)
}

// World tracks chunk data with a generator for base terrain and an optional
// store for edited chunks.
type World struct {
	mu        sync.RWMutex
	generator gen.Generator
	chunks    map[chunk.Pos]*chunk.Chunk
	dirty     map[chunk.Pos]bool

	id    string
	store ChunkStore
	log   *slog.Logger
}

// NewWorld creates a World backed only by generator.
func NewWorld(generator gen.Generator, log *slog.Logger) *World {
	return &World{
		generator: generator,
		chunks:    make(map[chunk.Pos]*chunk.Chunk),
		dirty:     make(map[chunk.Pos]bool),
		id:        "default",
		log:       log,
	}
}

// WithStore makes w load chunks from store before generating them and
// save edited chunks to it under worldID.
func (w *World) WithStore(store ChunkStore, worldID string) *World {
	w.store = store
	w.id = worldID
	return w
}

// ID returns the world id used for storage keys.
func (w *World) ID() string { return w.id }

// GetOrGenerateChunk returns the chunk at (cq, cr), loading or generating
// and caching it if needed.
func (w *World) GetOrGenerateChunk(ctx context.Context, cq, cr int) (*chunk.Chunk, error) {
	pos := chunk.Pos{Q: cq, R: cr}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c, nil
	}
	w.mu.RUnlock()

	c, err := w.loadOrGenerate(ctx, cq, cr)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Another caller may have cached it while we were working.
	if existing, ok := w.chunks[pos]; ok {
		return existing, nil
	}
	w.chunks[pos] = c
	return c, nil
}

func (w *World) loadOrGenerate(ctx context.Context, cq, cr int) (*chunk.Chunk, error) {
	if w.store != nil {
		c, err := w.store.Load(ctx, w.id, cq, cr)
		if err != nil {
			return nil, err
		}
		if c != nil {
			w.log.Debug("loaded chunk", "cq", cq, "cr", cr)
			return c, nil
		}
	}
	return w.generator.Generate(cq, cr), nil
}

// GetBlock returns the block at global column (q, r), layer y. Layers
// outside the chunk height are air.
func (w *World) GetBlock(ctx context.Context, q, r, y int) (blocks.ID, error) {
	if y < 0 || y >= chunk.Height {
		return blocks.Air, nil
	}
	cq, cr, lq, lr := gen.ChunkOf(q, r)
	c, err := w.GetOrGenerateChunk(ctx, cq, cr)
	if err != nil {
		return blocks.Air, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return c.Block(lq, lr, y), nil
}

// SetBlock writes id at global column (q, r), layer y and marks the chunk
// for saving.
func (w *World) SetBlock(ctx context.Context, q, r, y int, id blocks.ID) error {
	if y < 0 || y >= chunk.Height {
		return fmt.Errorf("layer %d out of range [0,%d)", y, chunk.Height)
	}
	cq, cr, lq, lr := gen.ChunkOf(q, r)
	c, err := w.GetOrGenerateChunk(ctx, cq, cr)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if c.Block(lq, lr, y) == id {
		return nil
	}
	c.SetBlock(lq, lr, y, id)
	w.dirty[chunk.Pos{Q: cq, R: cr}] = true
	return nil
}

// Modified returns the positions of chunks edited since the last save.
func (w *World) Modified() []chunk.Pos {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]chunk.Pos, 0, len(w.dirty))
	for pos := range w.dirty {
		out = append(out, pos)
	}
	sortPositions(out)
	return out
}

// Save writes every edited chunk to the store and returns how many were
// written. Without a store it is a no-op. Edits made while a chunk is being
// written keep it marked for the next save.
func (w *World) Save(ctx context.Context) (int, error) {
	if w.store == nil {
		return 0, nil
	}

	saved := 0
	for _, pos := range w.Modified() {
		if err := w.saveChunk(ctx, pos); err != nil {
			return saved, err
		}
		saved++
	}
	if saved > 0 {
		w.log.Info("saved modified chunks", "world", w.id, "count", saved)
	}
	return saved, nil
}

// SaveAll writes every cached chunk to the store, edited or not.
func (w *World) SaveAll(ctx context.Context) (int, error) {
	if w.store == nil {
		return 0, nil
	}
	chunks := w.Chunks()
	for i, c := range chunks {
		if err := w.saveChunk(ctx, c.Pos()); err != nil {
			return i, err
		}
	}
	w.log.Info("saved chunks", "world", w.id, "count", len(chunks))
	return len(chunks), nil
}

// saveChunk copies the chunk at pos and clears its dirty flag in one
// critical section, then writes the copy. A failed write re-marks it.
func (w *World) saveChunk(ctx context.Context, pos chunk.Pos) error {
	w.mu.Lock()
	c := w.chunks[pos]
	cp, err := chunk.FromRaw(c.CQ, c.CR, append([]blocks.ID(nil), c.Raw()...))
	if err != nil {
		w.mu.Unlock()
		return err
	}
	wasDirty := w.dirty[pos]
	delete(w.dirty, pos)
	w.mu.Unlock()

	if err := w.store.Save(ctx, w.id, cp); err != nil {
		if wasDirty {
			w.mu.Lock()
			w.dirty[pos] = true
			w.mu.Unlock()
		}
		return err
	}
	return nil
}

// PreGenerateRadius loads every chunk within hex distance radius of the
// origin chunk and returns how many chunks are in the region.
func (w *World) PreGenerateRadius(ctx context.Context, radius int) (int, error) {
	var positions []chunk.Pos
	hex.Spiral(0, 0, radius, func(cq, cr int) {
		positions = append(positions, chunk.Pos{Q: cq, R: cr})
	})

	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := w.GetOrGenerateChunk(ctx, pos.Q, pos.R); err != nil {
			return 0, err
		}
	}
	w.log.Info("pre-generated region", "radius", radius, "chunks", len(positions))
	return len(positions), nil
}

// Chunks returns every cached chunk ordered by (cq, cr).
func (w *World) Chunks() []*chunk.Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()

	positions := make([]chunk.Pos, 0, len(w.chunks))
	for pos := range w.chunks {
		positions = append(positions, pos)
	}
	sortPositions(positions)

	out := make([]*chunk.Chunk, len(positions))
	for i, pos := range positions {
		out[i] = w.chunks[pos]
	}
	return out
}

// Loaded returns the number of cached chunks.
func (w *World) Loaded() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// SpawnHeight returns the first free layer above the terrain at the origin.
func (w *World) SpawnHeight() int {
	return w.generator.SurfaceAt(0, 0) + 1
}

func sortPositions(p []chunk.Pos) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Q != p[j].Q {
			return p[i].Q < p[j].Q
		}
		return p[i].R < p[j].R
	})
}
