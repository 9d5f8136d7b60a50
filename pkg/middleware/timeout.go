package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds every request with a deadline so a slow datastore call
// cannot hold a connection forever. The deadline propagates through the
// request context into pgx.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
