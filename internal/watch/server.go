// Package watch streams maze frames to WebSocket viewers while the
// generator runs, and keeps serving the finished maze afterwards.
package watch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/wiremaze/internal/config"
	"github.com/lawnchairsociety/wiremaze/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Server upgrades /ws requests and registers the connections with a Hub.
type Server struct {
	cfg config.WatchConfig
	hub *Hub
}

func NewServer(cfg config.WatchConfig, hub *Hub) *Server {
	return &Server{cfg: cfg, hub: hub}
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts viewers on ln until ctx is done, then disconnects them.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("Watch server listening", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked connections are not tracked by http.Server
	s.hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Watch server stopped")
	return nil
}

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn)
	logger.Info("Viewer connected", "remote_addr", client.RemoteAddr())
	s.hub.Add(client)

	go func() {
		err := client.drain(s.cfg.MaxMessageSize)
		s.hub.Remove(client)
		logger.Info("Viewer disconnected", "remote_addr", client.RemoteAddr(), "reason", err)
	}()
}
