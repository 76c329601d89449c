// Package blocks maps block names to the small integer ids stored in chunks.
package blocks

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ID is an opaque block handle. Only Air carries meaning to the generator.
type ID uint8

// Air is the default voxel value.
const Air ID = 0

// ErrUnknownBlock is returned when a name has no registered id.
var ErrUnknownBlock = errors.New("unknown block")

// Definition is one entry of a block definition file.
type Definition struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Registry is an immutable name/id table.
type Registry struct {
	byName map[string]ID
	byID   map[ID]Definition
}

// DefaultDefinitions returns the built-in palette.
func DefaultDefinitions() []Definition {
	return []Definition{
		{ID: 0, Name: "air"},
		{ID: 1, Name: "grass"},
		{ID: 2, Name: "dirt"},
		{ID: 3, Name: "stone"},
		{ID: 4, Name: "sand"},
		{ID: 5, Name: "water"},
		{ID: 6, Name: "bedrock"},
		{ID: 7, Name: "wood"},
		{ID: 8, Name: "leaves"},
	}
}

// Default returns a registry over DefaultDefinitions.
func Default() *Registry {
	r, err := New(DefaultDefinitions())
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry. Ids must fit a byte, names and ids must be unique,
// and id 0 may only be "air".
func New(defs []Definition) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]ID, len(defs)+1),
		byID:   make(map[ID]Definition, len(defs)+1),
	}
	r.byName["air"] = Air
	r.byID[Air] = Definition{ID: 0, Name: "air"}

	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("block id %d: empty name", d.ID)
		}
		if d.ID < 0 || d.ID > 255 {
			return nil, fmt.Errorf("block %q: id %d out of range [0,255]", d.Name, d.ID)
		}
		if d.ID == 0 {
			if d.Name != "air" {
				return nil, fmt.Errorf("block %q: id 0 is reserved for air", d.Name)
			}
			continue
		}
		id := ID(d.ID)
		if prev, ok := r.byID[id]; ok {
			return nil, fmt.Errorf("block %q: id %d already used by %q", d.Name, d.ID, prev.Name)
		}
		if _, ok := r.byName[d.Name]; ok {
			return nil, fmt.Errorf("block %q: duplicate name", d.Name)
		}
		r.byName[d.Name] = id
		r.byID[id] = d
	}
	return r, nil
}

// Load reads a JSON or YAML list of definitions from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block definitions: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON or YAML list of definitions.
func Parse(data []byte) (*Registry, error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse block definitions: %w", err)
	}
	return New(defs)
}

// ID returns the id registered for name.
func (r *Registry) ID(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// ByID returns the definition registered for id.
func (r *Registry) ByID(id ID) (Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Resolve looks up every name, failing on the first unknown one.
func (r *Registry) Resolve(names ...string) ([]ID, error) {
	ids := make([]ID, len(names))
	for i, name := range names {
		id, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, name)
		}
		ids[i] = id
	}
	return ids, nil
}

// All returns every definition ordered by id.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
