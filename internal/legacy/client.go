// Package legacy provides read-only connectivity to the legacy accounting
// system's MS SQL Server database. It is optional; when disabled the
// customer import endpoints and the sync job simply report it as such.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/pwsupply/erp-api/internal/config"
	"go.uber.org/zap"
)

const (
	maxConnectAttempts = 3
	initialBackoff     = 1 * time.Second
	maxBackoff         = 10 * time.Second

	pingTimeout = 5 * time.Second
)

// LegacyCustomer is the customer shape the accounting system exposes
type LegacyCustomer struct {
	Code    string
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// Client provides read-only access to the legacy accounting database
type Client struct {
	db           *sql.DB
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewClient connects to the legacy database. Returns nil without error when
// the integration is disabled or unconfigured, so callers can treat the
// client as absent.
func NewClient(cfg *config.LegacyDBConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("legacy accounting connection disabled")
		return nil, nil
	}
	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("legacy accounting enabled but missing credentials, skipping connection")
		return nil, nil
	}

	connStr := buildConnectionString(cfg)

	var db *sql.DB
	var err error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)

			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				logger.Info("legacy accounting connection established",
					zap.Int("attempts_taken", attempt))
				return &Client{
					db:           db,
					logger:       logger,
					queryTimeout: time.Duration(cfg.QueryTimeout) * time.Second,
				}, nil
			}
			_ = db.Close()
		}

		logger.Warn("legacy accounting connection failed",
			zap.Error(err), zap.Int("attempt", attempt))
		if attempt < maxConnectAttempts {
			time.Sleep(backoff)
			backoff = backoff * 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to legacy accounting database after %d attempts: %w", maxConnectAttempts, err)
}

// buildConnectionString accepts URL in host:port/database or host:port form
func buildConnectionString(cfg *config.LegacyDBConfig) string {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}
	if !strings.Contains(hostPort, ":") {
		hostPort += ":1433"
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     hostPort,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// IsEnabled reports whether the client is connected and usable
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	c.logger.Info("closing legacy accounting connection")
	return c.db.Close()
}

// Ping verifies the connection for health reporting
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.db == nil {
		return fmt.Errorf("legacy accounting client not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	return c.db.PingContext(ctx)
}

// ListCustomers reads the customer register from the accounting system
func (c *Client) ListCustomers(ctx context.Context) ([]LegacyCustomer, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("legacy accounting client not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, `
		SELECT CustomerCode, CustomerName,
		       COALESCE(TaxID, ''), COALESCE(Address, ''), COALESCE(Phone, '')
		FROM dbo.Customers
		WHERE IsActive = 1`)
	if err != nil {
		return nil, fmt.Errorf("customer query failed: %w", err)
	}
	defer rows.Close()

	var customers []LegacyCustomer
	for rows.Next() {
		var lc LegacyCustomer
		if err := rows.Scan(&lc.Code, &lc.Name, &lc.TaxID, &lc.Address, &lc.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}

	c.logger.Debug("legacy customers loaded",
		zap.Int("count", len(customers)),
		zap.Duration("duration", time.Since(start)))

	return customers, nil
}
