package middleware

import (
	"net/http"

	"github.com/pwsupply/erp-api/internal/i18n"
)

// Locale resolves the request locale from the NEXT_LOCALE cookie and
// stores it in the request context. Unsupported locales fall back to
// the configured default.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	if defaultLocale == "" {
		defaultLocale = i18n.DefaultLocale
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := defaultLocale
			if cookie, err := r.Cookie(i18n.LocaleCookieName); err == nil {
				if i18n.Supported(cookie.Value) {
					locale = cookie.Value
				}
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), locale)))
		})
	}
}
