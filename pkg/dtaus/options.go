package dtaus

import (
	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Option configures a Parser or Writer.
type Option func(*config)

type config struct {
	codec      codec.Options
	metrics    *metrics.Metrics
	bufferSize int
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.codec.Logger == nil {
		cfg.codec.Logger = zap.NewNop()
	}
	return cfg
}

// WithTolerance sets the tolerance policy applied to every record.
func WithTolerance(t codec.Tolerance) Option {
	return func(c *config) { c.codec.Tolerance = t }
}

// WithCharset sets the text encoding of the stream. The default is ISO-8859-1.
func WithCharset(enc encoding.Encoding) Option {
	return func(c *config) { c.codec.Charset = enc }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) { c.codec.Logger = logger }
}

// WithMetrics enables instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithWarningHandler registers a callback for every accepted deviation.
func WithWarningHandler(fn func(codec.Warning)) Option {
	return func(c *config) { c.codec.OnWarning = fn }
}

// WithBufferSize sets the size of the read or write buffer.
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}
