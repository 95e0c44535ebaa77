package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation viewport.
type Size struct {
	W int
	H int
}

// Stats holds display metrics keyed by name. Values are ints or strings.
type Stats map[string]any

// Keys returns the stat names in sorted order.
func (s Stats) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sim defines the contract every registered automaton implements.
// Implementations are not safe for concurrent use.
type Sim interface {
	Name() string
	Size() Size
	States() *StateSet

	Reset()
	ClearGrid()
	Step()
	Generation() int
	SetGeneration(n int)

	Get(x, y int) Cell
	Set(x, y int, c Cell)
	Fill(c Cell)
	FillWith(fn func(x, y int) Cell)
	BoundingBox() Box
	Raster(dst *ByteGrid, x0, y0 int)

	RLE() string
	LoadRLE(rle string)
	PlaceRLE(rle string, dx, dy int)

	RefreshStats()
	Stats() Stats
	Parameters() ParameterSnapshot
}

// Factory constructs a Sim from string options. Configuration errors such as
// malformed rule strings are reported instead of panicking.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for n := range sims {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds the named simulation.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", name)
	}
	return f(cfg)
}
