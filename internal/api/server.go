// Package api exposes the schedule retrieval and document export HTTP
// endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"jadwalku/internal/config"
	"jadwalku/internal/models"
	"jadwalku/internal/schedule"
)

// ScheduleLoader builds a fresh schedule document for a request.
type ScheduleLoader interface {
	Load(ctx context.Context, now time.Time) (*models.ScheduleData, error)
}

// Server is the HTTP surface of the service.
type Server struct {
	cfg    *config.Config
	loader ScheduleLoader
	log    *zerolog.Logger
	server *http.Server

	// now supplies the reference clock in the configured timezone; tests
	// pin it to fixed dates.
	now func() time.Time
}

// New creates the server and wires its routes.
func New(cfg *config.Config, loader ScheduleLoader, log *zerolog.Logger) *Server {
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		// WIB has no DST; a fixed offset is an adequate fallback.
		loc = time.FixedZone("WIB", 7*3600)
		log.Warn().Err(err).Str("timezone", cfg.Server.Timezone).Msg("timezone load failed, using fixed WIB offset")
	}

	s := &Server{
		cfg:    cfg,
		loader: loader,
		log:    log,
		now:    func() time.Time { return time.Now().In(loc) },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/schedule/view", s.handleScheduleView)
	mux.HandleFunc("/api/generate-pdf", s.handleGeneratePDF)
	mux.HandleFunc("/api/export-excel", s.handleExportExcel)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.log.Info().Str("addr", s.server.Addr).Msg("api server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// authorized checks the bearer token against the configured secret.
func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.Server.SecretKey == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+s.cfg.Server.SecretKey
}

// buildSchedule runs the loader against the request clock; shared by the
// retrieval and view endpoints.
func (s *Server) buildSchedule(r *http.Request) (*models.ScheduleData, schedule.WeekSet, time.Time, error) {
	now := s.now()
	data, err := s.loader.Load(r.Context(), now)
	return data, schedule.NewWeekSet(now), now, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
