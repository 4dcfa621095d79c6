package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ssargent/dtaus/pkg/codec"
	"golang.org/x/text/encoding"
)

// RecordWriter appends framed records to a stream. It is not safe for
// concurrent use.
type RecordWriter struct {
	writer  *bufio.Writer
	charset encoding.Encoding
	offset  int64 // Current write offset
}

// NewRecordWriter wraps w. The writer does not close w.
func NewRecordWriter(w io.Writer, config RecordWriterConfig) *RecordWriter {
	var bw *bufio.Writer
	if config.BufferSize > 0 {
		bw = bufio.NewWriterSize(w, config.BufferSize)
	} else {
		bw = bufio.NewWriter(w)
	}
	return &RecordWriter{writer: bw, charset: config.Charset}
}

// Put appends one encoded record and returns the offset it starts at. The
// record's length code, decoded with the configured charset, must resolve
// to exactly len(record) bytes.
func (w *RecordWriter) Put(record []byte) (int64, error) {
	if len(record) < codec.LengthCodeSize {
		return 0, &codec.Error{Kind: codec.KindLengthCodeInvalid, Value: string(record)}
	}
	length, ok, err := codec.ParseLengthCode(record[:codec.LengthCodeSize], w.charset)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &codec.Error{Kind: codec.KindLengthCodeInvalid, Value: string(record[:codec.LengthCodeSize])}
	}
	size, err := codec.PhysicalSize(length)
	if err != nil {
		return 0, err
	}
	if size != len(record) {
		return 0, &codec.Error{Kind: codec.KindLengthCodeInvalid, Field: "physical size", Value: strconv.Itoa(len(record))}
	}

	n, err := w.writer.Write(record)
	if err != nil {
		return 0, fmt.Errorf("write record at offset %d: %w", w.offset, err)
	}

	// Calculate the offset where this record starts
	recordOffset := w.offset
	w.offset += int64(n)

	return recordOffset, nil
}

// Flush writes buffered records to the underlying stream
func (w *RecordWriter) Flush() error {
	return w.writer.Flush()
}

// Size returns the number of bytes written so far
func (w *RecordWriter) Size() int64 {
	return w.offset
}
