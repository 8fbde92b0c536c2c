package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tablero-app/tablero/internal/infrastructure/http/handlers"
	"github.com/tablero-app/tablero/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	LabelsHandler   *handlers.LabelsHandler
	CommentsHandler *handlers.CommentsHandler
	BoardsHandler   *handlers.BoardsHandler
	RequireJWT      func(http.Handler) http.Handler
	Log             zerolog.Logger
	CORS            func(http.Handler) http.Handler
	Secure          func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	UserRateLimit   func(http.Handler) http.Handler
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/me", cfg.AuthHandler.Me)
		})
	})

	// Everything below requires a logged-in user.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		if cfg.UserRateLimit != nil {
			r.Use(cfg.UserRateLimit)
		}

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", cfg.ProjectsHandler.Create)
			r.Get("/", cfg.ProjectsHandler.List)
			r.Get("/{id}", cfg.ProjectsHandler.Get)
			r.Patch("/{id}", cfg.ProjectsHandler.Update)
			r.Delete("/{id}", cfg.ProjectsHandler.Delete)
			r.Post("/{id}/members", cfg.ProjectsHandler.AddMember)
			r.Delete("/{id}/members/{memberId}", cfg.ProjectsHandler.RemoveMember)
			r.Get("/{id}/tasks", cfg.TasksHandler.ListByProject)
			r.Get("/{id}/labels", cfg.LabelsHandler.ListByProject)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", cfg.TasksHandler.Create)
			r.Get("/{id}", cfg.TasksHandler.Get)
			r.Patch("/{id}", cfg.TasksHandler.Update)
			r.Patch("/{id}/move", cfg.TasksHandler.Move)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
			r.Post("/{taskId}/comments", cfg.CommentsHandler.Create)
			r.Get("/{taskId}/comments", cfg.CommentsHandler.List)
		})

		r.Route("/labels", func(r chi.Router) {
			r.Post("/", cfg.LabelsHandler.Create)
			r.Patch("/{id}", cfg.LabelsHandler.Update)
			r.Delete("/{id}", cfg.LabelsHandler.Delete)
			r.Post("/{labelId}/tasks/{taskId}", cfg.LabelsHandler.Assign)
			r.Delete("/{labelId}/tasks/{taskId}", cfg.LabelsHandler.Unassign)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Patch("/{id}", cfg.CommentsHandler.Update)
			r.Delete("/{id}", cfg.CommentsHandler.Delete)
		})

		r.Route("/lists", func(r chi.Router) {
			r.Post("/", cfg.BoardsHandler.CreateList)
			r.Patch("/{id}/move", cfg.BoardsHandler.MoveList)
			r.Delete("/{id}", cfg.BoardsHandler.DeleteList)
		})

		r.Delete("/boards/{id}", cfg.BoardsHandler.DeleteBoard)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
