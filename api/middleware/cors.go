package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// SessionHeader names the shopper session header.
const SessionHeader = "X-Session-Id"

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-Id", SessionHeader},
		ExposedHeaders:   []string{"X-Request-Id", SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
