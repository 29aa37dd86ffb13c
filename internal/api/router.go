package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/chat", apiHandler.ChatHandler)
	r.Post("/analyze-sentiment", apiHandler.AnalyzeSentimentHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", apiHandler.RegisterHandler)
		r.Post("/login", apiHandler.LoginHandler)
	})

	r.Post("/upload", apiHandler.UploadHandler)

	r.Get("/products", apiHandler.ListProductsHandler)
	r.Post("/products/type", apiHandler.ProductsByTypeHandler)
	r.Post("/products/category", apiHandler.ProductsByCategoryHandler)

	// Legacy alias for the type filter, kept for existing clients.
	r.Post("/search", apiHandler.ProductsByTypeHandler)

	return r
}
