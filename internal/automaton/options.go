package automaton

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"automata/internal/core"
)

// Configuration errors returned by plugin constructors.
var (
	ErrInvalidRule   = errors.New("invalid rule")
	ErrInvalidOption = errors.New("invalid option")
)

// Boundary selects how coordinates outside the viewport are mapped.
type Boundary string

const (
	// Wall clamps coordinates into the viewport.
	Wall Boundary = "wall"
	// Torus wraps coordinates around the viewport edges.
	Torus Boundary = "torus"
	// Infinite passes coordinates through, bounded only by MaxSize.
	Infinite Boundary = "infinite"
)

// ParseBoundary accepts the boundary names used in option maps.
func ParseBoundary(s string) (Boundary, error) {
	switch b := Boundary(strings.ToLower(strings.TrimSpace(s))); b {
	case Wall, Torus, Infinite:
		return b, nil
	}
	return "", fmt.Errorf("boundary %q: %w", s, ErrInvalidOption)
}

// Iteration selects which cells are re-evaluated every generation.
type Iteration string

const (
	// LastChanged re-evaluates the cells changed in the previous generation
	// and their neighborhoods.
	LastChanged Iteration = "changed"
	// Active re-evaluates every non-empty cell and its neighborhood.
	Active Iteration = "active"
	// BoundingBox re-evaluates every cell of the bounding box.
	BoundingBox Iteration = "boundingBox"
	// Rows treats the vertical axis as time: cells changed in row Generation()
	// drive the evaluation of the next row.
	Rows Iteration = "rows"
)

// ParseIteration accepts the iteration names used in option maps.
func ParseIteration(s string) (Iteration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "changed", "lastchanged", "last_changed":
		return LastChanged, nil
	case "active":
		return Active, nil
	case "boundingbox", "bounding_box", "bbox":
		return BoundingBox, nil
	case "rows", "oned", "1d":
		return Rows, nil
	}
	return "", fmt.Errorf("iteration %q: %w", s, ErrInvalidOption)
}

// MaxSize bounds coordinates on Infinite boards.
const MaxSize = 200_000

// Options configures the engine side of an automaton.
type Options struct {
	Width     int
	Height    int
	Boundary  Boundary
	Iteration Iteration
	Range     int
	Seed      int64
	// StartingPattern is placed by Reset when non-empty.
	StartingPattern string
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Width:     40,
		Height:    40,
		Boundary:  Infinite,
		Iteration: LastChanged,
		Range:     1,
		Seed:      1,
	}
}

// OptionsFromMap overlays the shared option keys of cfg on base:
//
//	w, h       viewport size (and hard extent for wall/torus)
//	boundary   wall | torus | infinite
//	iteration  changed | active | boundingBox | rows
//	range      neighborhood radius
//	seed       random seed
//	start      starting pattern (RLE)
//
// Non-numeric or non-positive sizes keep the base value, matching the
// lenient flag-style parsing used by the sim configs. Unknown boundary or
// iteration names are errors.
func OptionsFromMap(cfg map[string]string, base Options) (Options, error) {
	o := base
	if cfg == nil {
		return o, nil
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Height = parsed
		}
	}
	if v, ok := cfg["range"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			o.Range = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			o.Seed = parsed
		}
	}
	if v, ok := cfg["boundary"]; ok {
		b, err := ParseBoundary(v)
		if err != nil {
			return o, err
		}
		o.Boundary = b
	}
	if v, ok := cfg["iteration"]; ok {
		it, err := ParseIteration(v)
		if err != nil {
			return o, err
		}
		o.Iteration = it
	}
	if v, ok := cfg["start"]; ok {
		o.StartingPattern = v
	}
	return o, nil
}

// Parameters describes the options for HUDs and CLIs.
func (o Options) Parameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Board",
		Params: []core.Parameter{
			core.IntParam("w", "Width", o.Width),
			core.IntParam("h", "Height", o.Height),
			core.StringParam("boundary", "Boundary", string(o.Boundary)),
			core.StringParam("iteration", "Iteration", string(o.Iteration)),
			core.IntParam("range", "Neighborhood range", o.Range),
			core.Int64Param("seed", "Seed", o.Seed),
		},
	}
}
