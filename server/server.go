// Package server streams LTES simulations to websocket clients.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"ltes/deque"
	"ltes/model"
	"ltes/solver"
)

// Options are shared by every client hub.
type Options struct {
	// Env is the run environment a client starts from.
	Env model.Env
	// Solver carries the step and tolerance settings; its observer is
	// replaced by each hub.
	Solver solver.Config
	// ParameterFile is applied over the named set before client overrides.
	ParameterFile string
	Workers       int
	History       int
	HistoryKind   string
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	opts     Options
}

func NewServer(addr string, upgrader websocket.Upgrader, opts Options) (*Server, error) {
	if _, err := deque.New[model.Summary](opts.HistoryKind, opts.History); err != nil {
		return nil, err
	}
	if _, err := buildParams(opts, opts.Env); err != nil {
		return nil, err
	}
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		opts:     opts,
	}, nil
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade: ", err)
		return
	}
	defer conn.Close()

	hub, err := NewHub(s.opts)
	if err != nil {
		log.Warn("hub: ", err)
		return
	}
	hub.conn = conn
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go hub.handleRequest(ctx)
	go hub.handleResponse(ctx)

	log.WithField("remote", conn.RemoteAddr().String()).Info("client connected")
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithField("remote", conn.RemoteAddr().String()).Info("client gone: ", err)
			return
		}
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Handler routes /ws to the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.WithField("addr", s.addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
