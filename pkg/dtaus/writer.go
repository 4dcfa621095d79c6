package dtaus

import (
	"fmt"
	"io"

	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/stream"
	"go.uber.org/zap"
)

// Writer encodes logical files onto a stream. Multiple logical files are
// written by calling Write repeatedly. A Writer is not safe for concurrent
// use and must be flushed before the stream is closed.
type Writer struct {
	records *stream.RecordWriter
	cfg     config
	files   int
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := newConfig(opts)
	return &Writer{
		records: stream.NewRecordWriter(w, stream.RecordWriterConfig{
			BufferSize: cfg.bufferSize,
			Charset:    cfg.codec.Charset,
		}),
		cfg:     cfg,
	}
}

// Write emits the header, every transaction and the trailer of f. When f
// has no trailer one is computed from its transactions without modifying
// f. Every record is encoded before anything is written, so a failing
// record leaves the stream untouched.
func (w *Writer) Write(f *LogicalFile) error {
	if f == nil || f.Header == nil {
		return &codec.Error{Kind: codec.KindRecordTypeTagInvalid, Record: codec.RecordHeader, Field: "missing"}
	}
	trailer := f.Trailer
	if trailer == nil {
		trailer = f.computeTrailer()
	}

	records := make([]codec.Record, 0, f.Len()+2)
	records = append(records, f.Header)
	for _, tx := range f.transactions {
		records = append(records, tx)
	}
	records = append(records, trailer)

	encoded := make([][]byte, len(records))
	for i, rec := range records {
		raw, err := rec.Encode(w.cfg.codec)
		if err != nil {
			return fmt.Errorf("logical file %d: %w", w.files+1, err)
		}
		encoded[i] = raw
	}

	for i, raw := range encoded {
		if _, err := w.records.Put(raw); err != nil {
			return fmt.Errorf("logical file %d: %w", w.files+1, err)
		}
		w.cfg.metrics.RecordWrittenRecord(records[i].Type(), len(raw))
	}
	w.files++

	w.cfg.codec.Logger.Debug("wrote logical file",
		zap.Int("index", w.files),
		zap.Int("transactions", f.Len()),
		zap.Int64("bytes", w.records.Size()),
	)
	return nil
}

// Flush writes buffered records to the underlying stream.
func (w *Writer) Flush() error {
	return w.records.Flush()
}

// Count returns the number of logical files written.
func (w *Writer) Count() int {
	return w.files
}

// Size returns the number of bytes written, including buffered bytes.
func (w *Writer) Size() int64 {
	return w.records.Size()
}
