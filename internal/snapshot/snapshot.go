// Package snapshot saves and restores automaton sessions as zstd-compressed
// JSON. A file is a one-line JSON header followed by the JSON body.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"automata/internal/core"
)

// Version is the current snapshot layout.
const Version = 1

// ErrVersion is returned for snapshots written by an unknown layout.
var ErrVersion = errors.New("unsupported snapshot version")

// Header precedes the body so a snapshot can be identified without decoding
// the board.
type Header struct {
	Version    int    `json:"version"`
	Sim        string `json:"sim"`
	Generation int    `json:"generation"`
}

// Snapshot is a restorable session: the factory options, the generation and
// the board as RLE anchored at Origin.
type Snapshot struct {
	Version    int               `json:"version"`
	Sim        string            `json:"sim"`
	Options    map[string]string `json:"options"`
	Generation int               `json:"generation"`
	Origin     [2]int            `json:"origin"`
	RLE        string            `json:"rle"`
}

type origin interface {
	Origin() core.Point
}

// Capture records the state of sim. Per-cell side state that the RLE cannot
// express (such as creature energy) is not captured.
func Capture(sim core.Sim) Snapshot {
	var o core.Point
	if src, ok := sim.(origin); ok {
		o = src.Origin()
	} else if box := sim.BoundingBox(); !box.Empty() {
		o = core.Point{X: box.ColMin, Y: box.RowMin}
	}
	return Snapshot{
		Version:    Version,
		Sim:        sim.Name(),
		Options:    sim.Parameters().Values(),
		Generation: sim.Generation(),
		Origin:     [2]int{o.X, o.Y},
		RLE:        sim.RLE(),
	}
}

// Restore builds the sim through the registry and replaces its board with
// the captured one.
func Restore(snap Snapshot) (core.Sim, error) {
	if snap.Version != Version {
		return nil, fmt.Errorf("snapshot version %d: %w", snap.Version, ErrVersion)
	}
	sim, err := core.New(snap.Sim, snap.Options)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", snap.Sim, err)
	}
	sim.ClearGrid()
	sim.SetGeneration(snap.Generation)
	sim.PlaceRLE(snap.RLE, snap.Origin[0], snap.Origin[1])
	return sim, nil
}

// Encode writes snap to w.
func Encode(w io.Writer, snap Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	hb, _ := json.Marshal(Header{Version: snap.Version, Sim: snap.Sim, Generation: snap.Generation})
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, fmt.Errorf("header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("snapshot version %d: %w", h.Version, ErrVersion)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("json decode: %w", err)
	}
	return snap, nil
}

// WriteFile writes snap to path, creating parent directories.
func WriteFile(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return Decode(f)
}
