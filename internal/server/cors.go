package server

import (
	"net/http"

	"github.com/rs/cors"
)

// newCORSHandler allows browsers on the given origins to read the JSON API.
// Origins are full scheme://host values with no trailing slash.
func newCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler
}
