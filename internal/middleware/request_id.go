package middleware

import (
	"net/http"

	"github.com/kavehz/realmstats/pkg/utils"
)

// RequestID tags each request with an X-Request-ID header so upload
// failures in the logs can be matched to a caller's report.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = utils.GenerateRandomID(12)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
