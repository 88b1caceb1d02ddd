package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// OriginChecker allows every origin when allowedOrigins is empty. An empty
// origin is always allowed.
func OriginChecker(allowedOrigins []string) func(origin string) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return func(origin string) bool {
		if len(allowed) == 0 || origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	check := OriginChecker(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return check(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
