package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	storyservice "github.com/storyweave/storyweave-backend/app/modules/story/application"
	userservice "github.com/storyweave/storyweave-backend/app/modules/user/application"
	"github.com/storyweave/storyweave-backend/config"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

// RankingEnqueuer lets an admin kick off a ranking pass out of schedule.
type RankingEnqueuer interface {
	EnqueueRanking(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Leaderboard leaderboardservice.Service
	Stories     storyservice.Service
	Users       userservice.Service
	Tokens      *jwt.Service
	Queue       RankingEnqueuer
	Registry    *prometheus.Registry
	Logger      *slog.Logger
	Config      *config.Config
}

// NewRouter builds the chi router for the public API.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.Config.HTTP.AllowedOrigins))
	if deps.Config.HTTP.RateLimitRPS > 0 {
		limiter := NewIPRateLimiter(deps.Config.HTTP.RateLimitRPS, deps.Config.HTTP.RateLimitBurst)
		r.Use(limiter.Middleware)
	}

	auth := NewAuthenticator(deps.Tokens)
	leaderboard := NewLeaderboardHandler(deps.Leaderboard, deps.Logger)
	stories := NewStoryHandler(deps.Stories, deps.Logger)
	users := NewUserHandler(deps.Users, deps.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", leaderboard.GetLeaderboard)
			r.Get("/stats", leaderboard.GetStats)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required, RequireAdmin)
				r.Get("/export", leaderboard.Export)
				if deps.Queue != nil {
					r.Post("/update-rankings", func(w http.ResponseWriter, req *http.Request) {
						if err := deps.Queue.EnqueueRanking(req.Context()); err != nil {
							respondError(w, http.StatusInternalServerError, "failed to enqueue ranking pass")
							return
						}
						respond(w, http.StatusAccepted, nil)
					})
				}
			})

			r.Route("/user/{userID}", func(r chi.Router) {
				r.Get("/", leaderboard.GetUserRank)
				r.Get("/badges", leaderboard.GetBadges)
				r.Get("/chart", leaderboard.GetChart)

				r.Group(func(r chi.Router) {
					r.Use(auth.Required)
					r.Patch("/update-score", leaderboard.UpdateScore)
					r.With(RequireAdmin).Post("/award-badge", leaderboard.AwardBadge)
				})
			})
		})

		r.Route("/stories", func(r chi.Router) {
			r.Get("/", stories.List)
			r.With(auth.Optional).Get("/slug/{slug}", stories.GetBySlug)
			r.With(auth.Optional).Post("/{storyID}/view", stories.View)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", stories.Create)
				r.Put("/{storyID}", stories.Update)
				r.Delete("/{storyID}", stories.Delete)
				r.Post("/{storyID}/publish", stories.Publish)
				r.Post("/{storyID}/unpublish", stories.Unpublish)
				r.Post("/{storyID}/like", stories.Like)
				r.Post("/{storyID}/dislike", stories.Dislike)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", users.Register)
			r.Post("/login", users.Login)
			r.Get("/{userID}", users.GetProfile)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Put("/me", users.UpdateProfile)
				r.Post("/me/deactivate", users.Deactivate)
				r.Delete("/me", users.Delete)
				r.Post("/{userID}/follow", users.Follow)
				r.Delete("/{userID}/follow", users.Unfollow)
			})
		})
	})

	return r
}
