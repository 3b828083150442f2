package live

import (
	"context"
	stderrors "errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/render"
)

// Server serves the bundled browser client and one render tree per
// websocket connection.
type Server struct {
	config   Config
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *serverMetrics
	render   *render.Metrics
	logger   *slog.Logger

	nextID     atomic.Uint64
	mu         sync.Mutex
	sessions   map[uint64]*Session
	httpServer *http.Server
}

// New creates a Server.
func New(config Config) (*Server, error) {
	config.applyDefaults()
	if config.Root == nil {
		return nil, errors.Newf(errors.CategoryConfig, "live: Config.Root is required")
	}
	if _, err := CodecByName(config.Codec); err != nil {
		return nil, err
	}

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   config.Logger.With("component", "live"),
		sessions: make(map[uint64]*Session),
	}
	if config.Metrics {
		s.metrics = newServerMetrics(config.Registry)
		s.render = render.NewMetrics(render.WithRegistry(config.Registry))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if config.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	}
	s.router = r

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleIndex serves the bundled client page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Title string }{s.config.Title}); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

// HandleWebSocket upgrades the connection, mounts a fresh tree and runs
// the session until the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	codecName := r.URL.Query().Get("codec")
	if codecName == "" {
		codecName = s.config.Codec
	}
	codec, err := CodecByName(codecName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.Session.MaxMessageSize)

	opts := append([]render.Option(nil), s.config.RenderOptions...)
	if s.render != nil {
		opts = append(opts, render.WithMetrics(s.render))
	}
	sess := newSession(s.nextID.Add(1), conn, codec, s.config.Session, s.logger, opts)
	if s.metrics != nil {
		sess.onFrame = s.metrics.frameReceived
	}

	s.track(sess)
	defer s.untrack(sess)
	defer sess.release()
	defer sess.Close()

	if err := sess.Mount(r.Context(), s.config.Root()); err != nil {
		s.logger.Error("mount failed", "session", sess.ID(), "error", err)
		return
	}
	s.logger.Info("session started", "session", sess.ID(), "codec", codec.Name())

	go sess.WriteLoop()
	sess.ReadLoop()
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	s.metrics.sessionOpened()
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
	s.metrics.sessionClosed()
	s.logger.Info("session ended", "session", sess.ID())
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on the configured address and blocks until ctx is done or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))
