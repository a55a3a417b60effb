package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/payload"
	"github.com/emmaworks/family-advisor-api/internal/usecase"
)

// DashboardHandler serves the static dashboard and college-matches endpoints.
type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	logger           *zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, logger *zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		logger:           logger,
	}
}

// CollegeMatches handles GET /api/colleges/matches.
func (h *DashboardHandler) CollegeMatches(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.dashboardUsecase.CollegeMatches(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch college matches")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	matches := make([]payload.CollegeMatch, 0, len(colleges))
	for _, college := range colleges {
		matches = append(matches, payload.NewCollegeMatch(college))
	}

	respondJSON(w, http.StatusOK, matches)
}

// FamilyDashboard handles GET /api/dashboard/family and the public preview.
func (h *DashboardHandler) FamilyDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardUsecase.FamilyDashboard(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch dashboard data")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, data)
}
