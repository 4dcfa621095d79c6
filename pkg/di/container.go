// Package di provides dependency injection container
package di

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/config"
	"github.com/ssargent/dtaus/pkg/dtaus"
	"github.com/ssargent/dtaus/pkg/logging"
	"github.com/ssargent/dtaus/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Container holds all the dependencies for the application
type Container struct {
	config   *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	runID    ksuid.KSUID
}

// NewContainer creates a new dependency injection container with the
// default configuration and a logger that discards everything.
func NewContainer() *Container {
	registry := prometheus.NewRegistry()
	return &Container{
		config:   config.DefaultConfig(),
		logger:   zap.NewNop(),
		registry: registry,
		metrics:  metrics.NewMetrics(registry),
		runID:    ksuid.New(),
	}
}

// Configure applies cfg and builds the logger it describes. Every log line
// carries the run id.
func (c *Container) Configure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Mode)
	if err != nil {
		return err
	}
	c.config = cfg
	c.logger = logger.With(zap.String("run_id", c.runID.String()))
	return nil
}

// GetConfig returns the active configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the application logger
func (c *Container) GetLogger() *zap.Logger {
	return c.logger
}

// SetLogger allows overriding the logger (for testing)
func (c *Container) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

// GetMetrics returns the metrics registered on the container's registry
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetRegistry returns the container's Prometheus registry
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// RunID identifies this invocation in logs.
func (c *Container) RunID() ksuid.KSUID {
	return c.runID
}

// Options returns the parser and writer options for the given policy,
// wired to the container's logger and metrics.
func (c *Container) Options(tol codec.Tolerance, enc encoding.Encoding) []dtaus.Option {
	return []dtaus.Option{
		dtaus.WithTolerance(tol),
		dtaus.WithCharset(enc),
		dtaus.WithLogger(c.logger),
		dtaus.WithMetrics(c.metrics),
	}
}

// WriteMetrics writes the registry in the Prometheus text format to path,
// atomically, for the node exporter textfile collector.
func (c *Container) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
