package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/OCharnyshevich/hexterrain/internal/config"
	"github.com/OCharnyshevich/hexterrain/internal/snapshot"
	"github.com/OCharnyshevich/hexterrain/internal/storage"
	"github.com/OCharnyshevich/hexterrain/internal/world"
	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
	hexgrid "github.com/OCharnyshevich/hexterrain/pkg/hex"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
	"github.com/OCharnyshevich/hexterrain/pkg/world/gen"
)

type options struct {
	settings   *config.Settings
	settingsIn string
	blocksIn   string
	radius     int
	dbPath     string
	worldID    string
	exportPath string
	column     string
	at         string
	deleteDB   bool
	list       bool
}

func main() {
	opts := options{settings: config.DefaultSettings()}
	cfg := opts.settings

	flag.StringVar(&opts.settingsIn, "settings", "", "settings file or go-getter URL")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.SeaLevel, "sea-level", cfg.SeaLevel, "sea level layer")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise field: simplex or perlin")
	flag.StringVar(&cfg.TreeHash, "tree-hash", cfg.TreeHash, "tree placement hash: sine or xxhash")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "generator: terrain or flat")
	flag.StringVar(&opts.blocksIn, "blocks", "", "block definition file (YAML or JSON)")
	flag.IntVar(&opts.radius, "radius", 2, "hex radius of the region in chunks")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite chunk store path")
	flag.StringVar(&opts.worldID, "world-id", "default", "world id used for storage keys")
	flag.StringVar(&opts.exportPath, "export", "", "write a zstd snapshot of the region to this path")
	flag.StringVar(&opts.column, "column", "", "print the profile of global column q,r and exit")
	flag.StringVar(&opts.at, "at", "", "print the profile of the column containing world position x,z and exit")
	flag.BoolVar(&opts.deleteDB, "delete-world", false, "remove the world's stored chunks before generating")
	flag.BoolVar(&opts.list, "list", false, "print the world's stored chunk positions and exit")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, explicit, os.Stdout, log); err != nil {
		log.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, explicit map[string]bool, out io.Writer, log *slog.Logger) error {
	cfg := opts.settings
	if opts.settingsIn != "" {
		fromFile, err := config.Fetch(ctx, opts.settingsIn)
		if err != nil {
			return err
		}
		config.Merge(cfg, fromFile, explicit)
		log.Info("loaded settings", "source", opts.settingsIn)
	}

	reg := blocks.Default()
	if opts.blocksIn != "" {
		r, err := blocks.Load(opts.blocksIn)
		if err != nil {
			return err
		}
		reg = r
	}

	g, err := newGenerator(cfg, reg)
	if err != nil {
		return err
	}
	log.Info("generator ready",
		"seed", cfg.Seed, "seaLevel", cfg.SeaLevel, "generator", cfg.Generator,
		"noise", cfg.Noise, "treeHash", cfg.TreeHash)

	switch {
	case opts.column != "":
		q, r, err := parseColumn(opts.column)
		if err != nil {
			return err
		}
		return printColumn(out, g, reg, q, r)
	case opts.at != "":
		x, z, err := parseWorldPos(opts.at)
		if err != nil {
			return err
		}
		q, r := hexgrid.WorldToAxial(x, z)
		return printColumn(out, g, reg, q, r)
	}

	w := world.NewWorld(g, log)
	var store *storage.Store
	if opts.dbPath != "" {
		var err error
		if store, err = storage.Open(opts.dbPath, log); err != nil {
			return err
		}
		defer store.Close()
		w.WithStore(store, opts.worldID)
	} else if opts.deleteDB || opts.list {
		return errors.New("-delete-world and -list need -db")
	}

	if opts.list {
		return listStored(ctx, out, store, w.ID())
	}
	if opts.deleteDB {
		if _, err := store.DeleteWorld(ctx, w.ID()); err != nil {
			return err
		}
	}

	if _, err := w.PreGenerateRadius(ctx, opts.radius); err != nil {
		return err
	}
	chunks := w.Chunks()
	for _, c := range chunks {
		d := c.Digest()
		solid, peak := chunkStats(c)
		log.Debug("chunk",
			"cq", c.CQ, "cr", c.CR,
			"digest", hex.EncodeToString(d[:8]),
			"solid", solid, "peak", peak)
	}

	if store != nil {
		if _, err := w.SaveAll(ctx); err != nil {
			return err
		}
		n, err := store.Count(ctx, w.ID())
		if err != nil {
			return err
		}
		size, err := store.WorldSize(ctx, w.ID())
		if err != nil {
			return err
		}
		log.Info("store", "world", w.ID(), "chunks", n, "bytes", size)
	}
	if opts.exportPath != "" {
		hdr := snapshot.Header{Seed: cfg.Seed, SeaLevel: cfg.SeaLevel}
		if err := snapshot.WriteFile(opts.exportPath, hdr, chunks); err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		log.Info("exported snapshot", "path", opts.exportPath, "chunks", len(chunks))
	}
	log.Info("done", "chunks", w.Loaded(), "spawnHeight", w.SpawnHeight())
	return nil
}

func newGenerator(s *config.Settings, reg *blocks.Registry) (gen.Generator, error) {
	switch s.Generator {
	case "", config.GeneratorTerrain:
		return gen.NewTerrainGenerator(s.GenConfig(), reg)
	case config.GeneratorFlat:
		p, err := gen.ResolvePalette(reg)
		if err != nil {
			return nil, err
		}
		return gen.NewFlatGenerator(p), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", s.Generator)
	}
}

// parseColumn parses "q,r".
func parseColumn(s string) (q, r int, err error) {
	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("column must be q,r")
	}
	if q, err = strconv.Atoi(strings.TrimSpace(qs)); err != nil {
		return 0, 0, fmt.Errorf("column q: %w", err)
	}
	if r, err = strconv.Atoi(strings.TrimSpace(rs)); err != nil {
		return 0, 0, fmt.Errorf("column r: %w", err)
	}
	return q, r, nil
}

func printColumn(out io.Writer, g gen.Generator, reg *blocks.Registry, q, r int) error {
	cq, cr, lq, lr := gen.ChunkOf(q, r)
	c := g.Generate(cq, cr)
	fmt.Fprintf(out, "column (%d,%d) chunk (%d,%d) local (%d,%d) surface %d\n",
		q, r, cq, cr, lq, lr, g.SurfaceAt(q, r))

	col := c.Column(lq, lr)
	for y := c.TopY(lq, lr); y >= 0; y-- {
		if col[y] == blocks.Air {
			continue
		}
		name := "unknown"
		if def, ok := reg.ByID(col[y]); ok {
			name = def.Name
		}
		if _, err := fmt.Fprintf(out, "%3d %s\n", y, name); err != nil {
			return err
		}
	}
	return nil
}

// parseWorldPos parses "x,z".
func parseWorldPos(s string) (x, z float64, err error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("position must be x,z")
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("position x: %w", err)
	}
	if z, err = strconv.ParseFloat(strings.TrimSpace(zs), 64); err != nil {
		return 0, 0, fmt.Errorf("position z: %w", err)
	}
	return x, z, nil
}

func listStored(ctx context.Context, out io.Writer, store *storage.Store, worldID string) error {
	positions, err := store.Positions(ctx, worldID)
	if err != nil {
		return err
	}
	for _, p := range positions {
		if _, err := fmt.Fprintf(out, "%d,%d\n", p.Q, p.R); err != nil {
			return err
		}
	}
	return nil
}

// chunkStats returns the number of solid voxels and the highest solid layer.
func chunkStats(c *chunk.Chunk) (solid, peak int) {
	peak = -1
	c.ForEach(func(_, _, y int, _ blocks.ID) {
		solid++
		peak = max(peak, y)
	})
	return solid, peak
}
