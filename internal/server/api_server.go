package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ripconsole/internal/api"
	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
	"ripconsole/internal/services"
)

const maxRequestBody = 1 << 20

type apiDeps struct {
	bind      string
	token     string
	logger    *slog.Logger
	jobSvc    *api.JobService
	renameSvc *api.RenameService
	status    func(context.Context) (api.StatusResponse, error)
}

type apiServer struct {
	bind      string
	logger    *slog.Logger
	jobSvc    *api.JobService
	renameSvc *api.RenameService
	status    func(context.Context) (api.StatusResponse, error)
	handler   http.Handler

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(deps apiDeps) *apiServer {
	srv := &apiServer{
		bind:      strings.TrimSpace(deps.bind),
		logger:    deps.logger,
		jobSvc:    deps.jobSvc,
		renameSvc: deps.renameSvc,
		status:    deps.status,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/jobs", srv.handleJobs)
	mux.HandleFunc("/api/jobs/", srv.handleJob)
	mux.HandleFunc("/api/batch-rename/analyze", srv.handleAnalyze)
	mux.HandleFunc("/api/batch-rename/preview", srv.handlePreview)
	mux.HandleFunc("/api/batch-rename/execute", srv.handleExecute)

	srv.handler = requestIDMiddleware(srv.log(), authMiddleware(deps.token, mux))
	return srv
}

func (s *apiServer) start() error {
	if s.bind == "" {
		return errors.New("api bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.server = server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	s.log().Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status, err := s.status(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *apiServer) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()

	var (
		list []api.Job
		err  error
	)
	switch eligible := strings.TrimSpace(query.Get("eligible")); eligible {
	case "":
		statuses, parseErr := parseStatuses(query["status"])
		if parseErr != nil {
			s.writeError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		list, err = s.jobSvc.List(r.Context(), statuses...)
	case "batch_rename":
		list, err = s.jobSvc.ListEligible(r.Context())
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown eligibility filter %q", eligible))
		return
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []api.Job{}
	}
	s.writeJSON(w, http.StatusOK, api.JobListResponse{Jobs: list})
}

func (s *apiServer) handleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if idStr == "" || strings.Contains(idStr, "/") {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job, err := s.jobSvc.Describe(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.JobResponse{Job: *job})
}

func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	resp, err := s.renameSvc.Analyze(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req api.RenameRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	resp, err := s.renameSvc.Preview(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req api.RenameRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	resp, err := s.renameSvc.Execute(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func parseStatuses(values []string) ([]jobs.Status, error) {
	var statuses []jobs.Status
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			status, ok := jobs.ParseStatus(trimmed)
			if !ok {
				return nil, fmt.Errorf("unknown status %q", trimmed)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.log()).Error("api request failed",
			slog.String("path", r.URL.Path),
			logging.Error(err),
		)
	}
	s.writeError(w, status, err.Error())
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger
}
