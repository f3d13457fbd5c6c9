package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Post("/signup", s.signup)
	r.Post("/signin", s.signin)
	r.Get("/check-loginid", s.checkLoginID)
	r.Post("/refresh", s.refresh)
	r.Post("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/user", s.getUser)
		r.Put("/user/name", s.updateName)
		r.Put("/user/disability", s.updateDisabilities)
		r.Get("/user/log", s.listLogs)
		r.Post("/reform-guide", s.createReformGuide)
	})

	return r
}
