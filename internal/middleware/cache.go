package middleware

import (
	"net/http"
)

// NoStore sets strict no-cache headers on every response. Share and view
// counts change on every hit, so intermediaries must not serve stale
// copies of result or type pages.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
