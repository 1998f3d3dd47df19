package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/starterkit/server/internal/shared/config"
	apperrors "github.com/starterkit/server/internal/shared/errors"
	"github.com/starterkit/server/internal/shared/logger"
)

// State is a lifecycle stage of the Server.
type State int32

const (
	StateStarting State = iota
	StateListening
	StateShuttingDown
	StateExited
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateListening:
		return "listening"
	case StateShuttingDown:
		return "shutting_down"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// ListenFunc binds a network listener.
type ListenFunc func(network, address string) (net.Listener, error)

// Server owns the HTTP listener and the process-fatal failure paths.
type Server struct {
	cfg    *config.Config
	log    *logger.Logger
	http   *http.Server
	listen ListenFunc

	mu       sync.Mutex
	state    State
	listener net.Listener

	failures chan error
	panics   chan *apperrors.Recovered

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a Server serving the application's router.
func NewServer(cfg *config.Config, log *logger.Logger, application *App) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Handler:      application.Router(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		listen:   net.Listen,
		failures: make(chan error, 1),
		panics:   make(chan *apperrors.Recovered, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// WithListen replaces the function used to bind the listener.
func (s *Server) WithListen(fn ListenFunc) *Server {
	s.listen = fn
	return s
}

// State returns the current lifecycle stage.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Addr returns the bound address, or nil before the listener is up.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Go runs fn in the background. It is the hook for background work of the
// serve loop and of route modules; ctx is cancelled on shutdown. A returned
// error is an unhandled failure and a panic is an uncaught exception; both end
// Run with exit code 1. Only the first report is kept.
func (s *Server) Go(fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if v := recover(); v != nil {
				s.reportPanic(&apperrors.Recovered{Value: v, Stack: string(debug.Stack())})
			}
		}()
		if err := fn(s.ctx); err != nil {
			s.reportFailure(err)
		}
	}()
}

func (s *Server) reportFailure(err error) {
	select {
	case s.failures <- err:
	default:
	}
}

func (s *Server) reportPanic(rec *apperrors.Recovered) {
	select {
	case s.panics <- rec:
	default:
	}
}

// Run binds the listener and blocks until a signal, a background failure or
// a panic ends the process. It returns the exit code.
func (s *Server) Run(signals <-chan os.Signal) (code int) {
	defer func() {
		if v := recover(); v != nil {
			s.uncaught(&apperrors.Recovered{Value: v, Stack: string(debug.Stack())})
			code = 1
		}
		s.cancel()
		s.setState(StateExited)
	}()

	// A failure reported before the listener exists exits without a log line.
	select {
	case <-s.failures:
		return 1
	default:
	}

	ln, err := s.listen("tcp", s.cfg.Address())
	if err != nil {
		s.log.Error("Failed to start server",
			zap.String("address", s.cfg.Address()),
			zap.Error(err),
		)
		return 1
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.log.Info(fmt.Sprintf("Application listening on port %d", listenerPort(ln)))
	s.setState(StateListening)

	s.Go(func(ctx context.Context) error {
		if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case sig := <-signals:
		s.log.Info(fmt.Sprintf("%s received", sig))
		s.shutdown()
		return 0

	case err := <-s.failures:
		if s.Addr() == nil {
			return 1
		}
		s.shutdown()
		s.log.Error("Unhandled rejection, shutting down", zap.Error(err))
		return 1

	case rec := <-s.panics:
		s.uncaught(rec)
		return 1
	}
}

// uncaught logs a panic to the error channel. The listener is left as is.
func (s *Server) uncaught(rec *apperrors.Recovered) {
	s.log.Error("Uncaught exception, shutting down",
		zap.Error(rec),
		zap.String("stack", rec.Stack),
	)
}

// shutdown stops accepting connections and drains the open ones.
func (s *Server) shutdown() {
	s.setState(StateShuttingDown)
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		s.log.Warn("Server forced to shutdown", zap.Error(err))
	}
}

func (s *Server) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func listenerPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
