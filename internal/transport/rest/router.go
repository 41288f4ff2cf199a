package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/scripture-backend/internal/transport/middleware"
)

// RouterDeps lists everything the HTTP router serves.
type RouterDeps struct {
	Scripture *ScriptureHandler
	Health    *HealthHandler
	// CORS and Limit are optional. Limit guards the routes that can trigger
	// verse population.
	CORS   middleware.Middleware
	Limit  middleware.Middleware
	Logger *slog.Logger
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		deps.CORS,
	))
	limit := middleware.Chain(deps.Limit)

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)

	s := deps.Scripture
	r.Get("/translations", s.ListTranslations)
	r.Route("/translations/{translation}", func(r chi.Router) {
		r.Get("/", s.GetTranslation)
		r.Get("/books", s.ListBooks)
		r.Get("/books/{book}", s.GetBook)
		r.Get("/books/{book}/chapters", s.ListChapters)

		r.With(limit).Get("/books/{book}/chapters/{number}", s.GetChapterByReference)
	})

	r.With(limit).Get("/books/{bookID}/chapters/{number}", s.GetChapter)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
