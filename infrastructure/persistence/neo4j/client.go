package neo4j

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/observability"
)

// Config holds the connection settings for the graph store
type Config struct {
	URI          string
	Username     string
	Password     string
	Database     string
	QueryTimeout time.Duration
}

// Client wraps the neo4j driver with per-call timeouts and domain error
// wrapping. Every engine operation goes through Read or Write; nothing may
// hang on an overloaded store longer than the configured timeout.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewClient connects to the graph store and verifies connectivity
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger, metrics *observability.Metrics) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, pkgerrors.NewUpstreamError("connect", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, pkgerrors.NewUpstreamError("verify connectivity", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	logger.Info("Connected to graph store",
		zap.String("uri", cfg.URI),
		zap.String("database", cfg.Database),
		zap.Duration("queryTimeout", timeout),
	)

	return &Client{
		driver:   driver,
		database: cfg.Database,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Close releases the underlying driver
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Read runs a read-only query and collects all records
func (c *Client) Read(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error) {
	return c.run(ctx, op, query, params, neo4j.AccessModeRead)
}

// Write runs a mutating query and collects all records
func (c *Client) Write(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error) {
	return c.run(ctx, op, query, params, neo4j.AccessModeWrite)
}

func (c *Client) run(ctx context.Context, op, query string, params map[string]any, mode neo4j.AccessMode) ([]*neo4j.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	}

	var out any
	var err error
	if mode == neo4j.AccessModeRead {
		out, err = session.ExecuteRead(ctx, work)
	} else {
		out, err = session.ExecuteWrite(ctx, work)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.observe(op, "timeout")
			return nil, pkgerrors.NewTimeoutError(op)
		}
		c.logger.Error("Graph store query failed",
			zap.String("operation", op),
			zap.Error(err),
		)
		c.observe(op, "error")
		return nil, pkgerrors.NewUpstreamError(op, err)
	}

	c.observe(op, "ok")
	records, _ := out.([]*neo4j.Record)
	return records, nil
}

func (c *Client) observe(op, result string) {
	if c.metrics != nil {
		c.metrics.ObserveGraphQuery(op, result)
	}
}
