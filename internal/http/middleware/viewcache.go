package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/i18n"
	"go.uber.org/zap"
)

// ViewCache serves GET responses from the view cache. Keys combine the
// request path and the resolved locale so each translation caches
// separately. Entries are cleared by the revalidator when the data
// backing a view changes.
type ViewCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewCache(c cache.Cache, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{cache: c, ttl: ttl, logger: logger}
}

type cachingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *cachingWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Handler caches successful GET responses. Cache failures degrade to a
// normal uncached request.
func (vc *ViewCache) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cache.ViewKey(r.URL.Path, r.URL.RawQuery, i18n.FromContext(r.Context()))

		if body, ok, err := vc.cache.Get(r.Context(), key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		cw := &cachingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(cw, r)

		if cw.statusCode == http.StatusOK && cw.body.Len() > 0 {
			if err := vc.cache.Set(r.Context(), key, cw.body.Bytes(), vc.ttl); err != nil {
				vc.logger.Warn("failed to store view in cache",
					zap.String("key", key),
					zap.Error(err))
			}
		}
	})
}
