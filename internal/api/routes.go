package api

import (
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed web
var webFiles embed.FS

// SetupRoutes configures all routes. The built-in chat UI is served at /
// unless staticDir names an existing directory, which replaces it.
func SetupRoutes(h *Handlers, allowedOrigins []string, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Post("/chat", h.Chat)
	r.Post("/feedback", h.SubmitFeedback)
	r.Get("/feedback", h.ListFeedback)
	r.Get("/preferences", h.Preferences)
	r.Get("/stats", h.Stats)

	r.Handle("/*", frontEnd(h, staticDir))

	return r
}

func frontEnd(h *Handlers, staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
		h.log.Warn("static directory not found, serving built-in UI", "dir", staticDir)
	}
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
