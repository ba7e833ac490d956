package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"ltes/calculator"
	"ltes/deque"
	"ltes/mesh"
	"ltes/model"
	"ltes/parameter"
	"ltes/solution"
	"ltes/solver"
)

// Hub serves one websocket client: it reads requests, runs at most one
// simulation at a time and streams its snapshots back.
type Hub struct {
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response, drained by a single writer
	out chan model.Msg

	env     model.Env
	opts    Options
	history deque.Deque[model.Summary]

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

func NewHub(opts Options) (*Hub, error) {
	history, err := deque.New[model.Summary](opts.HistoryKind, opts.History)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"kind":     opts.HistoryKind,
		"capacity": history.Capacity(),
	}).Debug("history allocated")
	return &Hub{
		msg:     make(chan model.Msg, 10),
		out:     make(chan model.Msg, 64),
		env:     opts.Env,
		opts:    opts,
		history: history,
	}, nil
}

func (h *Hub) send(ctx context.Context, msg model.Msg) bool {
	select {
	case h.out <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) sendJSON(ctx context.Context, typ string, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return h.send(ctx, model.Msg{Type: model.MsgError, Content: err.Error()})
	}
	return h.send(ctx, model.Msg{Type: typ, Content: string(data)})
}

func (h *Hub) handleResponse(ctx context.Context) {
	for {
		select {
		case reply := <-h.out:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithField("type", reply.Type).Warn("write failed: ", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	for {
		select {
		case msg := <-h.msg:
			h.handle(ctx, msg)
		case <-ctx.Done():
			h.stop()
			h.wg.Wait()
			return
		}
	}
}

func (h *Hub) handle(ctx context.Context, msg model.Msg) {
	switch msg.Type {
	case model.MsgEnv:
		env := h.env
		env.Overrides = nil
		if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
			h.send(ctx, model.Msg{Type: model.MsgError, Content: fmt.Sprintf("bad env: %v", err)})
			return
		}
		if _, err := buildParams(h.opts, env); err != nil {
			h.send(ctx, model.Msg{Type: model.MsgError, Content: err.Error()})
			return
		}
		h.env = env
		h.sendJSON(ctx, model.MsgEnvSet, env)
	case model.MsgStart:
		if err := h.start(ctx); err != nil {
			h.send(ctx, model.Msg{Type: model.MsgError, Content: err.Error()})
		}
	case model.MsgStop:
		h.stop()
		h.send(ctx, model.Msg{Type: model.MsgStopped, Content: "stopped"})
	case model.MsgHistory:
		// an optional count asks for the most recent snapshots only
		h.mu.Lock()
		n := h.history.Size()
		if msg.Content != "" {
			c, err := strconv.Atoi(msg.Content)
			if err != nil || c < 0 {
				h.mu.Unlock()
				h.send(ctx, model.Msg{Type: model.MsgError, Content: fmt.Sprintf("bad history count %q", msg.Content)})
				return
			}
			if c < n {
				n = c
			}
		}
		summaries := make([]model.Summary, 0, n)
		h.history.TraverseRange(h.history.Size()-n, h.history.Size(), func(i int, s model.Summary) {
			summaries = append(summaries, s)
		})
		h.mu.Unlock()
		h.sendJSON(ctx, model.MsgHistory, summaries)
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		h.send(ctx, model.Msg{Type: model.MsgError, Content: fmt.Sprintf("no such type %q", msg.Type)})
	}
}

// buildParams layers the parameter file and then the client overrides on the
// named set.
func buildParams(opts Options, env model.Env) (*parameter.Values, error) {
	if env.EndTime <= 0 {
		return nil, fmt.Errorf("end time must be positive, got %g", env.EndTime)
	}
	p, err := parameter.Get(env.ParameterSet)
	if err != nil {
		return nil, err
	}
	if opts.ParameterFile != "" {
		if p, err = parameter.LoadFile(opts.ParameterFile, p); err != nil {
			return nil, err
		}
	}
	if err := parameter.Apply(p, env.Overrides); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (h *Hub) start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return fmt.Errorf("a simulation is already running")
	}

	env := h.env
	p, err := buildParams(h.opts, env)
	if err != nil {
		return err
	}
	msh, err := mesh.New(p.CapsuleRadius, p.PipeLength, env.CapsulePoints, env.PipePoints)
	if err != nil {
		return err
	}
	m, err := calculator.New(env.Model, p, msh, h.opts.Workers)
	if err != nil {
		return err
	}
	c := h.opts.Solver
	runCtx, cancel := context.WithCancel(ctx)
	c.Observer = func(t float64, y []float64) {
		summary := solution.Evaluate(m, t, y).Summarize()
		h.mu.Lock()
		h.history.AddLast(summary)
		h.mu.Unlock()
		h.sendJSON(runCtx, model.MsgSnapshot, summary)
	}
	s, err := solver.New(env.Solver, c)
	if err != nil {
		cancel()
		m.Close()
		return err
	}

	for !h.history.IsEmpty() {
		h.history.RemoveFirst()
	}
	h.running, h.cancel = true, cancel
	h.send(ctx, model.Msg{Type: model.MsgStarted, Content: env.Model})
	h.wg.Add(1)
	go h.run(ctx, runCtx, s, m, solver.Times(env.EndTime, env.Outputs))
	return nil
}

// run solves under runCtx and reports completion while the client context
// is alive.
func (h *Hub) run(ctx, runCtx context.Context, s solver.Solver, m calculator.Model, times []float64) {
	defer h.wg.Done()
	defer m.Close()
	start := time.Now()
	sol, err := s.Solve(runCtx, m, times)

	h.mu.Lock()
	h.running = false
	h.cancel()
	h.mu.Unlock()

	fields := log.Fields{"model": m.Name(), "solver": s.Name(), "elapsed": time.Since(start)}
	if errors.Is(err, context.Canceled) {
		log.WithFields(fields).Info("simulation ended: ", err)
		return
	}
	if err != nil {
		log.WithFields(fields).Warn("simulation failed: ", err)
		h.send(ctx, model.Msg{Type: model.MsgError, Content: err.Error()})
		return
	}
	log.WithFields(fields).Info("simulation finished")
	h.send(ctx, model.Msg{Type: model.MsgFinished, Content: sol.SolveTime.String()})
}

func (h *Hub) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
}
