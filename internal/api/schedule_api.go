package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"jadwalku/internal/metrics"
	"jadwalku/internal/schedule"
)

// handleSchedule returns the full schedule document.
// GET /api/schedule
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("schedule")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorized(r) {
		writeError(w, http.StatusForbidden, "Failed to Authorize.")
		return
	}

	logger := s.log.With().Str("request_id", uuid.NewString()).Logger()

	start := time.Now()
	data, _, _, err := s.buildSchedule(r)
	if err != nil {
		metrics.IncScheduleBuild("error")
		logger.Error().Err(err).Msg("schedule build failed")
		writeError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}
	metrics.IncScheduleBuild("ok")
	metrics.ObserveBuildDuration(time.Since(start))
	logger.Info().
		Int("classes", len(data.Classes)).
		Int("teachers", len(data.Teachers)).
		Dur("took", time.Since(start)).
		Msg("schedule built")

	writeJSON(w, http.StatusOK, data)
}

// handleScheduleView returns the projected weekly view for one entity.
// GET /api/schedule/view?id=C001&week=this|next
func (s *Server) handleScheduleView(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("schedule_view")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorized(r) {
		writeError(w, http.StatusForbidden, "Failed to Authorize.")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	data, ws, now, err := s.buildSchedule(r)
	if err != nil {
		metrics.IncScheduleBuild("error")
		s.log.Error().Err(err).Msg("schedule build failed")
		writeError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}
	metrics.IncScheduleBuild("ok")

	week := ws.Default
	switch r.URL.Query().Get("week") {
	case "this":
		week = schedule.ThisWeek
	case "next":
		week = schedule.NextWeek
	case "":
	default:
		writeError(w, http.StatusBadRequest, "week must be this or next")
		return
	}

	view := schedule.Project(data, ws.Range(week), id, schedule.DayCodeOf(now))
	writeJSON(w, http.StatusOK, view)
}
