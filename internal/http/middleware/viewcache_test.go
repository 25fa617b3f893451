package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/i18n"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }
func (c *fakeCache) Close() error                   { return nil }

func countingHandler(calls *int, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestViewCacheServesSecondRequestFromCache(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())

	calls := 0
	handler := vc.Handler(countingHandler(&calls, http.StatusOK, `{"data":[]}`))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"data":[]}`, rec.Body.String())
	}

	assert.Equal(t, 1, calls, "second request should not reach the handler")
}

func TestViewCacheKeysPerLocale(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())

	calls := 0
	handler := vc.Handler(countingHandler(&calls, http.StatusOK, "body"))

	english := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	thai := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	thai = thai.WithContext(i18n.WithLocale(thai.Context(), "th"))

	handler.ServeHTTP(httptest.NewRecorder(), english)
	handler.ServeHTTP(httptest.NewRecorder(), thai)

	assert.Equal(t, 2, calls, "each locale renders once")
	_, enCached, _ := store.Get(context.Background(), cache.ViewKey("/api/v1/customers", "", "en"))
	_, thCached, _ := store.Get(context.Background(), cache.ViewKey("/api/v1/customers", "", "th"))
	assert.True(t, enCached)
	assert.True(t, thCached)
}

func TestViewCacheKeysPerQuery(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())

	calls := 0
	handler := vc.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("page=" + r.URL.Query().Get("page")))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/invoices?page=1", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/invoices?page=2", nil))

	assert.Equal(t, 2, calls, "each page renders separately")
	assert.Equal(t, "page=1", first.Body.String())
	assert.Equal(t, "page=2", second.Body.String())

	// same parameters in a different order share one entry
	reordered := httptest.NewRecorder()
	handler.ServeHTTP(reordered, httptest.NewRequest(http.MethodGet, "/api/v1/invoices?pageSize=20&page=2", nil))
	repeat := httptest.NewRecorder()
	handler.ServeHTTP(repeat, httptest.NewRequest(http.MethodGet, "/api/v1/invoices?page=2&pageSize=20", nil))
	assert.Equal(t, 3, calls)
	assert.Equal(t, "HIT", repeat.Header().Get("X-Cache"))
}

func TestViewCacheDroppedByRevalidator(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())
	revalidator := cache.NewRevalidator(store, zap.NewNop())

	calls := 0
	handler := vc.Handler(countingHandler(&calls, http.StatusOK, "body"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/customers?page=2", nil))
	assert.Equal(t, 2, calls)

	revalidator.EntityChanged(context.Background(), cache.EntityCustomer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
	assert.Equal(t, 3, calls, "view should re-render after the entity changed")
	assert.Empty(t, rec.Header().Get("X-Cache"))

	paged := httptest.NewRecorder()
	handler.ServeHTTP(paged, httptest.NewRequest(http.MethodGet, "/api/v1/customers?page=2", nil))
	assert.Equal(t, 4, calls, "paged variant should re-render too")
}

func TestViewCacheSkipsErrorsAndWrites(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())

	calls := 0
	handler := vc.Handler(countingHandler(&calls, http.StatusNotFound, "missing"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/unknown", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, store.entries, "error responses are not cached")

	post := httptest.NewRequest(http.MethodPost, "/api/v1/customers", nil)
	handler.ServeHTTP(httptest.NewRecorder(), post)
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.entries, "writes bypass the cache")
}

func TestViewCacheMarksHits(t *testing.T) {
	store := newFakeCache()
	vc := NewViewCache(store, time.Minute, zap.NewNop())

	calls := 0
	handler := vc.Handler(countingHandler(&calls, http.StatusOK, "body"))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
}
