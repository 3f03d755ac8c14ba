package middleware

import (
	"context"
	"net/http"

	"github.com/koilabs/koimbti/internal/services"
	"github.com/koilabs/koimbti/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

// LocaleMiddleware resolves the request locale from the lang query param
// or Accept-Language and stores it in the request context.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := utils.DetermineLocale(
			r.URL.Query().Get("lang"),
			r.Header.Get("Accept-Language"),
			services.SupportedLocales,
			services.DefaultLocale,
		)
		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext retrieves the locale stored by LocaleMiddleware.
func LocaleFromContext(ctx context.Context) string {
	if v := ctx.Value(localeKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return services.DefaultLocale
}
