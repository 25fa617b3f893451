package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity identifies what kind of record changed
type Entity string

const (
	EntityCustomer          Entity = "customer"
	EntityResponsiblePerson Entity = "responsible_person"
	EntityProduct           Entity = "product"
	EntityWarehouse         Entity = "warehouse"
	EntityInvoice           Entity = "invoice"
	EntityQuotation         Entity = "quotation"
	EntityEmployee          Entity = "employee"
	EntitySettings          Entity = "settings"
)

// viewDependencies maps each entity to the view paths that render it.
// Services report what changed; the affected paths are derived here rather
// than hand-listed at every call site. Deleting by path prefix covers both
// the list view and any detail views under it.
var viewDependencies = map[Entity][]string{
	EntityCustomer:          {"/customers", "/dashboard"},
	EntityResponsiblePerson: {"/responsible-persons", "/customers"},
	EntityProduct:           {"/products", "/dashboard"},
	EntityWarehouse:         {"/warehouses", "/products"},
	EntityInvoice:           {"/invoices", "/dashboard", "/reports"},
	EntityQuotation:         {"/quotations", "/dashboard"},
	EntityEmployee:          {"/employees"},
	// company name and logo render on every view
	EntitySettings: {"/"},
}

const keyPrefix = "view:"

// mountPrefix is where the router mounts the API. ViewKey strips it so
// keys line up with the bare view paths in viewDependencies.
const mountPrefix = "/api/v1"

// ViewKey builds the cache key for a rendered view. The query string is
// canonicalized so parameter order does not split the cache, and distinct
// parameter sets (page, search, status filters) key separately. The query
// sits between path and locale, keeping path-prefix invalidation intact.
func ViewKey(path, rawQuery, locale string) string {
	path = strings.TrimPrefix(path, mountPrefix)
	if rawQuery != "" {
		if values, err := url.ParseQuery(rawQuery); err == nil {
			rawQuery = values.Encode()
		}
		path += "?" + rawQuery
	}
	return fmt.Sprintf("%s%s:%s", keyPrefix, path, locale)
}

// Revalidator invalidates cached views after entity mutations
type Revalidator struct {
	cache  Cache
	logger *zap.Logger
}

func NewRevalidator(c Cache, logger *zap.Logger) *Revalidator {
	return &Revalidator{cache: c, logger: logger}
}

// EntityChanged drops every cached view that renders the entity. When the
// change belongs to a customer (an invoice or quotation), that customer's
// detail view is dropped too. Invalidation failures are logged, never
// propagated; a stale view is not worth failing the mutation over.
func (r *Revalidator) EntityChanged(ctx context.Context, entity Entity, customerID *uuid.UUID) {
	paths := viewDependencies[entity]
	if customerID != nil {
		paths = append(paths, fmt.Sprintf("/customers/%s", customerID))
	}
	for _, path := range paths {
		if err := r.cache.DeleteByPrefix(ctx, keyPrefix+path); err != nil {
			r.logger.Warn("view invalidation failed",
				zap.String("entity", string(entity)),
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// AffectedPaths returns the view paths a change to the entity invalidates
func AffectedPaths(entity Entity, customerID *uuid.UUID) []string {
	paths := append([]string(nil), viewDependencies[entity]...)
	if customerID != nil {
		paths = append(paths, fmt.Sprintf("/customers/%s", customerID))
	}
	return paths
}
