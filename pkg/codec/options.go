package codec

import (
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Options carries the policy for a single decode or encode call. The zero
// value decodes strictly as ISO-8859-1 without logging.
type Options struct {
	Tolerance Tolerance
	Charset   encoding.Encoding
	Logger    *zap.Logger
	// OnWarning, when set, receives every deviation accepted under the
	// tolerance policy. It is called after the event has been logged.
	OnWarning func(Warning)
}

// Warning describes a deviation that was accepted instead of failing.
type Warning struct {
	Kind   ErrorKind
	Record RecordType
	Field  string
	Value  string
}

func (w Warning) String() string {
	return (&Error{Kind: w.Kind, Record: w.Record, Field: w.Field, Value: w.Value}).Error()
}

func (o Options) charset() encoding.Encoding {
	if o.Charset == nil {
		return DefaultCharset
	}
	return o.Charset
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) warn(w Warning) {
	o.logger().Warn("accepted non-conformant field",
		zap.String("record", w.Record.String()),
		zap.String("field", w.Field),
		zap.String("value", w.Value),
		zap.String("kind", w.Kind.String()),
	)
	if o.OnWarning != nil {
		o.OnWarning(w)
	}
}
