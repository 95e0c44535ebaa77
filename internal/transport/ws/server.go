// Package ws streams a running automaton to websocket clients and accepts
// editing and playback commands from them.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"automata/internal/core"
)

// Command types accepted from clients.
const (
	CmdSet   = "set"
	CmdLoad  = "load"
	CmdReset = "reset"
	CmdClear = "clear"
	CmdPause = "pause"
	CmdPlay  = "play"
	CmdStep  = "step"
	CmdTPS   = "tps"
)

// ErrBadCommand is returned for malformed or unknown commands.
var ErrBadCommand = errors.New("bad command")

// Command is a client request. Only the fields relevant to Type are read.
type Command struct {
	Type  string `json:"type"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	State string `json:"state,omitempty"`
	RLE   string `json:"rle,omitempty"`
	Steps int    `json:"steps,omitempty"`
	TPS   int    `json:"tps,omitempty"`
}

// Box is the JSON form of a bounding box.
type Box struct {
	RowMin int `json:"row_min"`
	ColMax int `json:"col_max"`
	RowMax int `json:"row_max"`
	ColMin int `json:"col_min"`
}

// Frame is broadcast after every tick that advanced the board and after
// every accepted command.
type Frame struct {
	Type       string     `json:"type"`
	Sim        string     `json:"sim"`
	Generation int        `json:"generation"`
	Paused     bool       `json:"paused"`
	Origin     [2]int     `json:"origin"`
	RLE        string     `json:"rle"`
	Stats      core.Stats `json:"stats"`
	Box        *Box       `json:"box,omitempty"`
}

type errorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Config tunes the server loop.
type Config struct {
	TPS    int
	Paused bool
	// Poll is how often the loop asks the pacer for due steps.
	Poll time.Duration
	// MaxQueue bounds the per-client frame backlog; frames beyond it are
	// dropped for that client.
	MaxQueue int
}

// DefaultConfig returns 10 steps per second polled every 10ms.
func DefaultConfig() Config {
	return Config{TPS: 10, Poll: 10 * time.Millisecond, MaxQueue: 8}
}

// Server owns the sim; every access goes through mu.
type Server struct {
	cfg Config
	log *logrus.Entry

	mu     sync.Mutex
	sim    core.Sim
	paused bool
	pacer  *core.Pacer

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	clientsMu sync.Mutex
	clients   map[uint64]chan []byte
}

// NewServer wraps sim. The caller must not touch sim afterwards.
func NewServer(sim core.Sim, cfg Config) *Server {
	def := DefaultConfig()
	if cfg.TPS <= 0 {
		cfg.TPS = def.TPS
	}
	if cfg.Poll <= 0 {
		cfg.Poll = def.Poll
	}
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = def.MaxQueue
	}
	return &Server{
		cfg:    cfg,
		log:    logrus.WithField("sim", sim.Name()),
		sim:    sim,
		paused: cfg.Paused,
		pacer:  core.NewPacer(cfg.TPS),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: map[uint64]chan []byte{},
	}
}

// Run steps the sim at the configured rate until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Poll)
	defer ticker.Stop()
	s.log.WithField("tps", s.cfg.TPS).Info("stream loop started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("stream loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if f, ok := s.tick(); ok {
				s.broadcast(f)
			}
		}
	}
}

func (s *Server) tick() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.pacer.Due()
	if s.paused || n == 0 {
		return Frame{}, false
	}
	for i := 0; i < n; i++ {
		s.sim.Step()
	}
	return s.frameLocked(), true
}

// Frame returns the current board.
func (s *Server) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Server) frameLocked() Frame {
	s.sim.RefreshStats()
	f := Frame{
		Type:       "frame",
		Sim:        s.sim.Name(),
		Generation: s.sim.Generation(),
		Paused:     s.paused,
		RLE:        s.sim.RLE(),
		Stats:      s.sim.Stats(),
	}
	if o, ok := s.sim.(interface{ Origin() core.Point }); ok {
		p := o.Origin()
		f.Origin = [2]int{p.X, p.Y}
	}
	if b := s.sim.BoundingBox(); !b.Empty() {
		f.Box = &Box{RowMin: b.RowMin, ColMax: b.ColMax, RowMax: b.RowMax, ColMin: b.ColMin}
	}
	return f
}

// Apply executes cmd against the sim.
func (s *Server) Apply(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch cmd.Type {
	case CmdSet:
		c, err := s.resolveState(cmd.State)
		if err != nil {
			return err
		}
		s.sim.Set(cmd.X, cmd.Y, c)
	case CmdLoad:
		s.sim.LoadRLE(cmd.RLE)
	case CmdReset:
		s.sim.Reset()
	case CmdClear:
		s.sim.ClearGrid()
	case CmdPause:
		s.paused = true
	case CmdPlay:
		s.paused = false
	case CmdStep:
		n := cmd.Steps
		if n <= 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			s.sim.Step()
		}
	case CmdTPS:
		if cmd.TPS <= 0 {
			return fmt.Errorf("tps %d: %w", cmd.TPS, ErrBadCommand)
		}
		s.pacer.SetTPS(cmd.TPS)
	default:
		return fmt.Errorf("type %q: %w", cmd.Type, ErrBadCommand)
	}
	return nil
}

// resolveState accepts a state name or a single-rune token. An empty name
// selects the default state.
func (s *Server) resolveState(name string) (core.Cell, error) {
	states := s.sim.States()
	if name == "" {
		return states.Default(), nil
	}
	if c, ok := states.Lookup(name); ok {
		return c, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return states.FromToken(r), nil
	}
	return 0, fmt.Errorf("state %q: %w", name, ErrBadCommand)
}

// Handler upgrades the request and serves one client.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		id, out := s.join()
		defer s.leave(id)
		log := s.log.WithField("client", id)
		log.Info("client connected")

		first, _ := json.Marshal(s.Frame())
		if err := writeMessage(conn, first); err != nil {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		writeDone := make(chan struct{})
		go func() {
			defer close(writeDone)
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-out:
					if err := writeMessage(conn, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				s.send(out, errorMsg{Type: "error", Error: fmt.Sprintf("decode: %v", err)})
				continue
			}
			if err := s.Apply(cmd); err != nil {
				log.WithError(err).Debug("command rejected")
				s.send(out, errorMsg{Type: "error", Error: err.Error()})
				continue
			}
			s.broadcast(s.Frame())
		}

		cancel()
		<-writeDone
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		log.Info("client disconnected")
	}
}

func (s *Server) join() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	out := make(chan []byte, s.cfg.MaxQueue)
	s.clientsMu.Lock()
	s.clients[id] = out
	s.clientsMu.Unlock()
	return id, out
}

func (s *Server) leave(id uint64) {
	s.clientsMu.Lock()
	delete(s.clients, id)
	s.clientsMu.Unlock()
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

func (s *Server) broadcast(f Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		s.log.WithError(err).Error("encode frame")
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for _, out := range s.clients {
		select {
		case out <- b:
		default:
			// Slow client; it will catch up with the next frame.
		}
	}
}

func (s *Server) send(out chan []byte, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func writeMessage(conn *websocket.Conn, b []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
