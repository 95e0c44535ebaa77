package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"automata/internal/transport/ws"
)

var (
	addr        string // Listen address
	serveTPS    int    // Steps per second
	startPaused bool   // Start with playback paused
)

// serveCmd streams an automaton over websocket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream an automaton to websocket clients on /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := buildSim()
		if err != nil {
			return err
		}
		cfg := ws.DefaultConfig()
		cfg.TPS = serveTPS
		cfg.Paused = startPaused
		server := ws.NewServer(sim, cfg)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", server.Handler())
		mux.HandleFunc("/frame", func(rw http.ResponseWriter, r *http.Request) {
			rw.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(rw).Encode(server.Frame())
		})
		httpServer := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		go func() {
			_ = server.Run(ctx)
		}()
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdown)
		}()

		logrus.Infof("serving %s on %s", sim.Name(), addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().IntVar(&serveTPS, "tps", 10, "Steps per second")
	serveCmd.Flags().BoolVar(&startPaused, "paused", false, "Start paused")

	rootCmd.AddCommand(serveCmd)
}
