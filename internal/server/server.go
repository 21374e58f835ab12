package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"ripconsole/internal/api"
	"ripconsole/internal/batchrename"
	"ripconsole/internal/config"
	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
	"ripconsole/internal/services"
)

// Server owns the API listener and enforces single-instance execution.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *jobs.Store
	api    *apiServer

	lockPath string
	lock     *flock.Flock

	lifecycle sync.Mutex
	running   atomic.Bool
	done      chan struct{}
}

// New constructs a server with initialized dependencies.
func New(cfg *config.Config, store *jobs.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("server requires config and store")
	}
	engine := batchrename.New(store,
		batchrename.WithLogger(logger),
		batchrename.WithAllowedRoots(cfg.Rename.AllowedRoots),
	)
	logger = logging.NewComponentLogger(logger, "server")
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	s.api = newAPIServer(apiDeps{
		bind:      cfg.Paths.APIBind,
		token:     cfg.Paths.APIToken,
		logger:    logger,
		jobSvc:    api.NewJobService(store, cfg.Rename.UseDiscLabelForTVSeries),
		renameSvc: api.NewRenameService(engine),
		status:    s.Status,
	})
	return s, nil
}

// Start acquires the lock and begins serving the API. Cancelling ctx stops
// the server and releases the lock.
func (s *Server) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if !s.running.CompareAndSwap(false, true) {
		return errors.New("server already running")
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		s.running.Store(false)
		return services.Wrap(services.ErrConflict, "server", "start", fmt.Sprintf("another ripconsole server is already running (lock %s)", s.lockPath), nil)
	}

	if err := s.api.start(); err != nil {
		_ = s.lock.Unlock()
		s.running.Store(false)
		return err
	}

	done := make(chan struct{})
	s.done = done
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}()

	s.logger.Info("ripconsole server started",
		slog.String("lock", s.lockPath),
		slog.String("database", s.store.Path()),
	)
	return nil
}

// Stop shuts down the API and releases the lock. It is safe to call more
// than once.
func (s *Server) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.done)
	s.done = nil
	s.api.stop()
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
	s.logger.Info("ripconsole server stopped")
}

// Close stops the server and closes the store.
func (s *Server) Close() error {
	s.Stop()
	return s.store.Close()
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	return s.api.addr()
}

// Status reports runtime information and job counts.
func (s *Server) Status(ctx context.Context) (api.StatusResponse, error) {
	counts, err := api.NewJobService(s.store, false).Stats(ctx)
	if err != nil {
		return api.StatusResponse{}, err
	}
	return api.StatusResponse{
		Running:      s.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: s.store.Path(),
		LockFilePath: s.lockPath,
		TVDir:        s.cfg.Library.TVDir,
		Counts:       counts,
	}, nil
}
