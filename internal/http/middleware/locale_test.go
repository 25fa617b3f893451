package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pwsupply/erp-api/internal/i18n"
	"github.com/stretchr/testify/assert"
)

func TestLocaleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		expected string
	}{
		{name: "no cookie uses the default", cookie: "", expected: "en"},
		{name: "supported locale from cookie", cookie: "th", expected: "th"},
		{name: "unsupported locale falls back", cookie: "de", expected: "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resolved string
			handler := Locale("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				resolved = i18n.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: i18n.LocaleCookieName, Value: tc.cookie})
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.expected, resolved)
		})
	}
}
