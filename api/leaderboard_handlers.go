package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
)

const defaultChartWindowDays = 90

// LeaderboardHandler serves the leaderboard routes.
type LeaderboardHandler struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewLeaderboardHandler creates a LeaderboardHandler.
func NewLeaderboardHandler(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, logger: logger}
}

// GetLeaderboard handles GET /leaderboard.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	tf, err := leaderboarddomain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, limit := parsePagination(r)

	entries, err := h.service.GetTopEntries(r.Context(), tf, limit, (page-1)*limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to load leaderboard", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	respond(w, http.StatusOK, PagedData{
		Items:      entries,
		Pagination: Pagination{Page: page, Limit: limit, Count: len(entries)},
	})
}

// GetStats handles GET /leaderboard/stats.
func (h *LeaderboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to load board stats", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respond(w, http.StatusOK, stats)
}

// Export handles GET /leaderboard/export. Admin only.
func (h *LeaderboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	tf, err := leaderboarddomain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	data, err := h.service.ExportXLSX(r.Context(), tf, limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to export leaderboard", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to export leaderboard")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leaderboard-%s.xlsx", tf))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetUserRank handles GET /leaderboard/user/{userID}.
func (h *LeaderboardHandler) GetUserRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	info, err := h.service.GetUserRank(r.Context(), userID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "user has no leaderboard entry")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to load user rank", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load rank")
		return
	}
	respond(w, http.StatusOK, info)
}

// GetBadges handles GET /leaderboard/user/{userID}/badges.
func (h *LeaderboardHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	badges, achievements, err := h.service.GetBadges(r.Context(), userID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "user has no leaderboard entry")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to load badges", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load badges")
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"badges":       badges,
		"achievements": achievements,
	})
}

// GetChart handles GET /leaderboard/user/{userID}/chart, returning a PNG.
func (h *LeaderboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	tf, err := leaderboarddomain.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := defaultChartWindowDays
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 {
		days = v
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	png, err := h.service.RenderRankChart(r.Context(), userID, tf, since)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render rank chart", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// UpdateScore handles PATCH /leaderboard/user/{userID}/update-score. The
// caller must be the user themselves or an admin.
func (h *LeaderboardHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	if !selfOrAdmin(r, userID) {
		respondError(w, http.StatusForbidden, "cannot update another user's score")
		return
	}

	result, err := h.service.RecalculateScore(r.Context(), userID, "manual")
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Manual recalculation failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to recalculate score")
		return
	}
	// A nil error with a failure payload means the user id has no account.
	if _, failed := result.Failure.(leaderboardservice.ScoreRecalculationFailed); failed {
		respondError(w, http.StatusNotFound, "user does not exist")
		return
	}
	respond(w, http.StatusOK, result.Success)
}

type awardBadgeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// AwardBadge handles POST /leaderboard/user/{userID}/award-badge. Admin only.
func (h *LeaderboardHandler) AwardBadge(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	var req awardBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.AwardBadge(r.Context(), userID, leaderboarddomain.Badge{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "user has no leaderboard entry")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to award badge", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to award badge")
		return
	}
	if vErr, ok := result.Failure.(*leaderboardservice.ValidationError); ok {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	respond(w, http.StatusOK, result.Success)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
