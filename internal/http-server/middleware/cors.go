package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware allows every origin, header and method, with credentials.
// Origins are accepted through AllowOriginFunc so the request origin is
// echoed back; a literal "*" is rejected by browsers on credentialed requests.
func CORSMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(*http.Request, string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
