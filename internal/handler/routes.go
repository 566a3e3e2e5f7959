package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/cache"
	"github.com/lifelog/lifelog/internal/config"
	"github.com/lifelog/lifelog/internal/domain"
	"github.com/lifelog/lifelog/internal/middleware"
	"github.com/lifelog/lifelog/internal/model"
	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

// Deps carries everything the router needs.
type Deps struct {
	Config *config.Config
	DB     *store.DB
	Cache  *cache.Cache
	Tokens *auth.TokenIssuer
	Logger *slog.Logger
}

// NewRouter builds the full HTTP surface: middleware chain, auth endpoints,
// one generic resource instantiation per tracker entity, and the bespoke
// domain endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.Config.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	healthHandler := NewHealthHandler(d.DB, d.Cache)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	authHandler := NewAuthHandler(d.DB, d.Cache, d.Tokens, d.Logger)
	workoutHandler := NewWorkoutHandler(d.DB, d.Logger)
	statsHandler := NewStatsHandler(d.DB, d.Logger)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger: d.Logger,
		Tokens: d.Tokens,
		Cache:  d.Cache,
	})
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Logger:  d.Logger,
		Cache:   d.Cache,
		Enabled: d.Config.RateLimitEnabled,
		Limit:   d.Config.RateLimitRequests,
		Window:  d.Config.RateLimitWindow,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(rateLimit)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Patch("/me", authHandler.UpdateMe)

			mount(r, "/goals", NewResource(resource.NewEngine[model.Goal](d.DB, domain.Goals), d.Logger), nil)
			mount(r, "/workouts", NewResource(resource.NewEngine(d.DB, domain.Workouts, domain.AttachWorkoutExercises), d.Logger), workoutHandler.Register)
			mount(r, "/journals", NewResource(resource.NewEngine[model.JournalEntry](d.DB, domain.Journals), d.Logger), nil)
			mount(r, "/transactions", NewResource(resource.NewEngine[model.Transaction](d.DB, domain.Transactions), d.Logger), func(r chi.Router) {
				r.Get("/summary", statsHandler.FinanceSummary)
			})
			mount(r, "/budgets", NewResource(resource.NewEngine[model.Budget](d.DB, domain.Budgets), d.Logger), nil)
			mount(r, "/habits", NewResource(resource.NewEngine[model.Habit](d.DB, domain.Habits), d.Logger), func(r chi.Router) {
				r.Get("/{id}/streak", statsHandler.HabitStreak)
			})
			mount(r, "/habit-entries", NewResource(resource.NewEngine[model.HabitEntry](d.DB, domain.HabitEntries), d.Logger), nil)
			mount(r, "/moods", NewResource(resource.NewEngine[model.MoodEntry](d.DB, domain.Moods), d.Logger), nil)
			mount(r, "/sleep", NewResource(resource.NewEngine[model.SleepLog](d.DB, domain.SleepLogs), d.Logger), nil)
			mount(r, "/meals", NewResource(resource.NewEngine[model.Meal](d.DB, domain.Meals), d.Logger), nil)
			mount(r, "/water", NewResource(resource.NewEngine[model.WaterLog](d.DB, domain.WaterLogs), d.Logger), nil)
			mount(r, "/weights", NewResource(resource.NewEngine[model.WeightLog](d.DB, domain.Weights), d.Logger), nil)
			mount(r, "/books", NewResource(resource.NewEngine[model.Book](d.DB, domain.Books), d.Logger), nil)
			mount(r, "/medications", NewResource(resource.NewEngine[model.Medication](d.DB, domain.Medications), d.Logger), nil)
			mount(r, "/meditations", NewResource(resource.NewEngine[model.Meditation](d.DB, domain.Meditations), d.Logger), nil)

			r.Get("/wellness/summary", statsHandler.WellnessSummary)
		})
	})

	return r
}

// mount wires one entity's generic routes plus any bespoke extras. Extras
// register first so literal segments like /stats win over /{id}.
func mount[T any](r chi.Router, path string, res *Resource[T], extras func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		if extras != nil {
			extras(r)
		}
		res.Register(r)
	})
}

// notFound handles 404 responses for unknown routes.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// methodNotAllowed handles 405 responses.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
