package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/plsync/internal/http/pin"
	"github.com/MrJamesThe3rd/plsync/internal/http/record"
	"github.com/MrJamesThe3rd/plsync/internal/http/syncrun"
)

type Options struct {
	AllowedOrigins []string
	JWTSecret      string
}

func New(
	opts Options,
	syncV1 *syncrun.Handler,
	recordsV1 *record.Handler,
	pinsV1 *pin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireToken(opts.JWTSecret))

		r.Route("/sync", syncV1.Routes)

		r.Route("/records", recordsV1.Routes)

		r.Route("/locks", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			pinsV1.LockRoutes(r)
		})

		r.Route("/overrides", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			pinsV1.OverrideRoutes(r)
		})
	})

	return router
}
