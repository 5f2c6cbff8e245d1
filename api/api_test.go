package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	storyservice "github.com/storyweave/storyweave-backend/app/modules/story/application"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	userservice "github.com/storyweave/storyweave-backend/app/modules/user/application"
	"github.com/storyweave/storyweave-backend/app/shared/results"
	"github.com/storyweave/storyweave-backend/config"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

// fakeLeaderboard serves canned leaderboard data.
type fakeLeaderboard struct {
	leaderboardservice.Service

	entries []leaderboardservice.RankedEntry
	export  []byte
}

func (f *fakeLeaderboard) GetTopEntries(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]leaderboardservice.RankedEntry, error) {
	return f.entries, nil
}

func (f *fakeLeaderboard) GetStats(ctx context.Context) (*leaderboarddb.BoardStats, error) {
	return &leaderboarddb.BoardStats{TotalParticipants: int64(len(f.entries))}, nil
}

func (f *fakeLeaderboard) ExportXLSX(ctx context.Context, tf leaderboarddomain.Timeframe, limit int) ([]byte, error) {
	return f.export, nil
}

func (f *fakeLeaderboard) RecalculateScore(ctx context.Context, userID uuid.UUID, reason string) (results.OperationResult, error) {
	return results.SuccessResult(leaderboardservice.ScoreRecalculated{UserID: userID, Reason: reason}), nil
}

// fakeStories is a minimal story service for route tests.
type fakeStories struct {
	storyservice.Service

	published []storydb.Story
}

func (f *fakeStories) ListPublished(ctx context.Context, limit, offset int) ([]storydb.Story, error) {
	return f.published, nil
}

// fakeUsers is a minimal user service for route tests.
type fakeUsers struct {
	userservice.Service
}

func newTestRouter(t *testing.T, lb *fakeLeaderboard) (http.Handler, *jwt.Service) {
	t.Helper()
	tokens := jwt.NewService("test-secret", "storyweave", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(Deps{
		Leaderboard: lb,
		Stories:     &fakeStories{},
		Users:       &fakeUsers{},
		Tokens:      tokens,
		Logger:      logger,
		Config:      &config.Config{},
	})
	return router, tokens
}

func TestGetLeaderboardRoute(t *testing.T) {
	lb := &fakeLeaderboard{
		entries: []leaderboardservice.RankedEntry{
			{Position: 1, Score: 107},
		},
	}
	router, _ := newTestRouter(t, lb)

	t.Run("serves the envelope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard?timeframe=weekly", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
	})

	t.Run("rejects an invalid timeframe", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard?timeframe=hourly", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestExportRouteIsAdminGated(t *testing.T) {
	lb := &fakeLeaderboard{export: []byte("xlsx-bytes")}
	router, tokens := newTestRouter(t, lb)

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/export", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("a plain user is rejected", func(t *testing.T) {
		token, err := tokens.Sign(uuid.New(), "user")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/export", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("an admin gets the spreadsheet", func(t *testing.T) {
		token, err := tokens.Sign(uuid.New(), "admin")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/export", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if got := rec.Body.String(); got != "xlsx-bytes" {
			t.Errorf("body = %q", got)
		}
	})
}

func TestUpdateScoreRoute(t *testing.T) {
	lb := &fakeLeaderboard{}
	router, tokens := newTestRouter(t, lb)
	userID := uuid.New()

	t.Run("self can trigger a recalculation", func(t *testing.T) {
		token, err := tokens.Sign(userID, "user")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leaderboard/user/"+userID.String()+"/update-score", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("another user cannot", func(t *testing.T) {
		token, err := tokens.Sign(uuid.New(), "user")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leaderboard/user/"+userID.String()+"/update-score", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}
