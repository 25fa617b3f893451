package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryCache records enough to observe what the revalidator touches
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *memoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }
func (c *memoryCache) Close() error                   { return nil }

func TestViewKey(t *testing.T) {
	// the router mount prefix is stripped so keys match viewDependencies
	assert.Equal(t, "view:/customers:en", ViewKey("/api/v1/customers", "", "en"))
	assert.Equal(t, "view:/products:th", ViewKey("/products", "", "th"))

	// query parameters key separately, in canonical order
	assert.Equal(t,
		"view:/invoices?page=2&status=Sent:en",
		ViewKey("/api/v1/invoices", "status=Sent&page=2", "en"))
	assert.Equal(t,
		ViewKey("/api/v1/invoices", "page=2&status=Sent", "en"),
		ViewKey("/api/v1/invoices", "status=Sent&page=2", "en"))
}

func TestViewKeyPrefixCoversQueryVariants(t *testing.T) {
	key := ViewKey("/api/v1/customers", "search=acme&page=3", "th")
	assert.True(t, strings.HasPrefix(key, "view:/customers"),
		"query variants must share the invalidation prefix, got %q", key)
}

func TestAffectedPaths(t *testing.T) {
	tests := []struct {
		name       string
		entity     Entity
		customerID *uuid.UUID
		expected   []string
	}{
		{
			name:     "product changes invalidate products and dashboard",
			entity:   EntityProduct,
			expected: []string{"/products", "/dashboard"},
		},
		{
			name:     "invoice changes invalidate invoices, dashboard and reports",
			entity:   EntityInvoice,
			expected: []string{"/invoices", "/dashboard", "/reports"},
		},
		{
			name:     "settings changes invalidate everything",
			entity:   EntitySettings,
			expected: []string{"/"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AffectedPaths(tc.entity, tc.customerID))
		})
	}
}

func TestAffectedPathsIncludesCustomerDetail(t *testing.T) {
	customerID := uuid.New()
	paths := AffectedPaths(EntityInvoice, &customerID)
	assert.Contains(t, paths, "/customers/"+customerID.String())
}

func TestEntityChangedDropsRenderedViews(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCache()
	revalidator := NewRevalidator(store, zap.NewNop())

	customerID := uuid.New()
	keep := ViewKey("/api/v1/employees", "", "en")

	require.NoError(t, store.Set(ctx, ViewKey("/api/v1/invoices", "", "en"), []byte("x"), 0))
	require.NoError(t, store.Set(ctx, ViewKey("/api/v1/invoices", "page=2", "en"), []byte("x"), 0))
	require.NoError(t, store.Set(ctx, ViewKey("/api/v1/invoices/abc", "", "th"), []byte("x"), 0))
	require.NoError(t, store.Set(ctx, ViewKey("/api/v1/dashboard", "", "en"), []byte("x"), 0))
	require.NoError(t, store.Set(ctx, ViewKey("/api/v1/customers/"+customerID.String(), "", "en"), []byte("x"), 0))
	require.NoError(t, store.Set(ctx, keep, []byte("x"), 0))

	revalidator.EntityChanged(ctx, EntityInvoice, &customerID)

	_, ok, _ := store.Get(ctx, ViewKey("/api/v1/invoices", "", "en"))
	assert.False(t, ok, "invoice list view should be dropped")
	_, ok, _ = store.Get(ctx, ViewKey("/api/v1/invoices", "page=2", "en"))
	assert.False(t, ok, "paged invoice list view should be dropped")
	_, ok, _ = store.Get(ctx, ViewKey("/api/v1/invoices/abc", "", "th"))
	assert.False(t, ok, "invoice detail view should be dropped")
	_, ok, _ = store.Get(ctx, ViewKey("/api/v1/dashboard", "", "en"))
	assert.False(t, ok, "dashboard view should be dropped")
	_, ok, _ = store.Get(ctx, ViewKey("/api/v1/customers/"+customerID.String(), "", "en"))
	assert.False(t, ok, "customer detail view should be dropped")

	_, ok, _ = store.Get(ctx, keep)
	assert.True(t, ok, "unrelated views stay cached")
}
