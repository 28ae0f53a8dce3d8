package grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gobwas/glob"
	"github.com/gorilla/websocket"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/semaphore"

	"github.com/rr13k/playwright/pkg/logging"
)

// Config controls the grid server behavior.
type Config struct {
	BindAddress    string
	AuthToken      string
	AllowedOrigins []string
	MaxSessions    int
	IdleTTL        time.Duration
	PublicMetrics  bool
	Version        string
}

// Server hosts the session grid: an HTTP API for launching browser targets
// plus a WebSocket proxy that bridges clients to them.
type Server struct {
	cfg            Config
	factory        *Handle
	log            *logging.Logger
	httpServer     *http.Server
	slots          *semaphore.Weighted
	originPatterns []glob.Glob
	upgrader       websocket.Upgrader

	mu      sync.Mutex
	targets map[string]*gridTarget
}

// gridTarget tracks a running browser and its client connections.
type gridTarget struct {
	target      *Target
	connections int
	idleSince   time.Time
}

// NewServer wires a grid server around the given factory.
func NewServer(cfg Config, factory *Handle) (*Server, error) {
	if factory == nil {
		return nil, errors.New("grid: factory required")
	}
	if cfg.BindAddress == "" {
		cfg.BindAddress = "127.0.0.1:22222"
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 10
	}
	if cfg.IdleTTL == 0 {
		cfg.IdleTTL = 5 * time.Minute
	}

	patterns := make([]glob.Glob, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		g, err := glob.Compile(origin)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed origin pattern '%s': %w", origin, err)
		}
		patterns = append(patterns, g)
	}

	log, _ := logging.NewLogger("grid")
	s := &Server{
		cfg:            cfg,
		factory:        factory,
		log:            log,
		slots:          semaphore.NewWeighted(int64(cfg.MaxSessions)),
		originPatterns: patterns,
		targets:        make(map[string]*gridTarget),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.isOriginAllowed,
	}
	return s, nil
}

// Start runs the grid until the context is cancelled. Remaining targets are
// closed on the way out.
func (s *Server) Start(ctx context.Context) error {
	if err := s.validateStartupConfig(); err != nil {
		return err
	}

	// H2C keeps WebSocket upgrades working behind reverse proxies that
	// strip HTTP/1.1 upgrade headers.
	h2s := &http2.Server{}
	s.httpServer = &http.Server{
		Addr:              s.cfg.BindAddress,
		Handler:           h2c.NewHandler(s.router(), h2s),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	if s.cfg.IdleTTL > 0 {
		go s.reapIdleTargets(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		s.log.Infof("serving grid on %s via factory %q", s.cfg.BindAddress, s.factory.Name())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.httpServer.Shutdown(shutdownCtx)
		s.closeAllTargets()
		return err
	case err := <-serverErr:
		return err
	}
}

func (s *Server) validateStartupConfig() error {
	if !isLoopbackBindAddress(s.cfg.BindAddress) && s.cfg.AuthToken == "" {
		return fmt.Errorf("refusing to bind grid to %q without an access token (set -auth-token)", s.cfg.BindAddress)
	}
	return nil
}

// URL returns the address clients connect to, including the access token
// when one is configured.
func (s *Server) URL() string {
	url := "ws://" + s.cfg.BindAddress
	if s.cfg.AuthToken != "" {
		url += "?access_token=" + s.cfg.AuthToken
	}
	return url
}

func (s *Server) router() http.Handler {
	router := chi.NewRouter()
	router.Get("/healthz", s.handleHealthz)
	router.Get("/metrics", s.handleMetrics)
	router.Route("/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions", s.handleListSessions)
		r.Delete("/sessions/{targetID}", s.handleCloseSession)
		r.Get("/sessions/{targetID}/connect", s.handleConnect)
	})
	return router
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	payload := map[string]string{
		"status":  "ok",
		"factory": s.factory.Name(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if s.cfg.Version != "" {
		payload["version"] = s.cfg.Version
	}
	respondJSON(w, payload)
}

// targetView is the client-facing shape of a target. The upstream DevTools
// endpoint stays private; clients connect through the grid's proxy path.
type targetView struct {
	ID          string    `json:"id"`
	Browser     string    `json:"browser"`
	ConnectPath string    `json:"connectPath"`
	CreatedAt   time.Time `json:"createdAt"`
	Connections int       `json:"connections"`
}

func viewOf(gt *gridTarget) targetView {
	return targetView{
		ID:          gt.target.ID,
		Browser:     gt.target.Browser,
		ConnectPath: "/v1/sessions/" + gt.target.ID + "/connect",
		CreatedAt:   gt.target.CreatedAt,
		Connections: gt.connections,
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req LaunchRequest
	// An empty body means default launch parameters.
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, fmt.Errorf("invalid launch request: %w", err))
		return
	}

	if !s.slots.TryAcquire(1) {
		metricLaunches.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusServiceUnavailable, fmt.Errorf("session limit of %d reached", s.cfg.MaxSessions))
		return
	}

	target, err := s.factory.Launch(r.Context(), req)
	if err != nil {
		s.slots.Release(1)
		metricLaunches.WithLabelValues("error").Inc()
		s.log.Errorf("launch failed: %v", err)
		respondError(w, http.StatusBadGateway, err)
		return
	}

	gt := &gridTarget{target: target, idleSince: time.Now()}
	s.mu.Lock()
	s.targets[target.ID] = gt
	s.mu.Unlock()

	metricLaunches.WithLabelValues("ok").Inc()
	metricActiveTargets.Inc()
	s.log.Infof("launched %s target %s", target.Browser, target.ID)
	respondStatusJSON(w, http.StatusCreated, viewOf(gt))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	views := make([]targetView, 0, len(s.targets))
	for _, gt := range s.targets {
		views = append(views, viewOf(gt))
	}
	s.mu.Unlock()

	// ULIDs sort lexically by creation time.
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	respondJSON(w, map[string]any{
		"sessions": views,
		"count":    len(views),
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "targetID")
	s.mu.Lock()
	gt, ok := s.targets[id]
	if ok {
		delete(s.targets, id)
	}
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	s.releaseTarget(gt)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) releaseTarget(gt *gridTarget) {
	if gt.target.Close != nil {
		if err := gt.target.Close(); err != nil {
			s.log.Warnf("failed to close target %s: %v", gt.target.ID, err)
		}
	}
	s.slots.Release(1)
	metricActiveTargets.Dec()
	s.log.Infof("closed target %s", gt.target.ID)
}

func (s *Server) closeAllTargets() {
	s.mu.Lock()
	remaining := make([]*gridTarget, 0, len(s.targets))
	for id, gt := range s.targets {
		remaining = append(remaining, gt)
		delete(s.targets, id)
	}
	s.mu.Unlock()
	for _, gt := range remaining {
		s.releaseTarget(gt)
	}
}

// reapIdleTargets closes targets that have had no client connections for
// longer than the idle TTL.
func (s *Server) reapIdleTargets(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cutoff := time.Now().Add(-s.cfg.IdleTTL)
		s.mu.Lock()
		expired := make([]*gridTarget, 0)
		for id, gt := range s.targets {
			if gt.connections == 0 && gt.idleSince.Before(cutoff) {
				expired = append(expired, gt)
				delete(s.targets, id)
			}
		}
		s.mu.Unlock()

		for _, gt := range expired {
			s.log.Infof("reaping idle target %s", gt.target.ID)
			s.releaseTarget(gt)
		}
	}
}
