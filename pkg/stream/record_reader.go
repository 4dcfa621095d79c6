package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ssargent/dtaus/pkg/codec"
	"golang.org/x/text/encoding"
)

// RecordReader frames raw records out of a DTAUS byte stream. It is not
// safe for concurrent use.
type RecordReader struct {
	reader  *bufio.Reader
	charset encoding.Encoding
	offset  int64
	done    bool
}

// NewRecordReader wraps r. The reader does not close r.
func NewRecordReader(r io.Reader, config RecordReaderConfig) *RecordReader {
	var br *bufio.Reader
	if config.BufferSize > 0 {
		br = bufio.NewReaderSize(r, config.BufferSize)
	} else {
		br = bufio.NewReader(r)
	}
	return &RecordReader{reader: br, charset: config.Charset}
}

// ReadNext returns the next physical record including its length code.
// The length code is decoded with the configured charset. It returns
// io.EOF at the end of the stream or when the next four bytes are not a
// number, which producers use to mark the end of records.
func (r *RecordReader) ReadNext() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}

	// Read the length code (4 bytes)
	code := make([]byte, codec.LengthCodeSize)
	n, err := io.ReadFull(r.reader, code)
	if err != nil {
		if err == io.EOF {
			r.done = true
			return nil, io.EOF
		}
		return nil, r.truncated(n, err)
	}

	length, ok, err := codec.ParseLengthCode(code, r.charset)
	if err != nil {
		return nil, fmt.Errorf("record at offset %d: %w", r.offset, err)
	}
	if !ok {
		r.done = true
		return nil, io.EOF
	}
	size, err := codec.PhysicalSize(length)
	if err != nil {
		return nil, fmt.Errorf("record at offset %d: %w", r.offset, err)
	}

	record := make([]byte, size)
	copy(record, code)
	n, err = io.ReadFull(r.reader, record[codec.LengthCodeSize:])
	if err != nil {
		return nil, r.truncated(codec.LengthCodeSize+n, err)
	}
	r.offset += int64(size)

	return record, nil
}

// truncated reports a short read of the record starting at the current offset.
func (r *RecordReader) truncated(got int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("record at offset %d: %w", r.offset,
		&codec.Error{Kind: codec.KindStreamTruncated, Value: strconv.Itoa(got) + " bytes", Err: err})
}

// Offset returns the number of bytes consumed by complete records
func (r *RecordReader) Offset() int64 {
	return r.offset
}

// Iterator returns a streaming iterator for records
func (r *RecordReader) Iterator() RecordIterator {
	return &recordIterator{reader: r}
}

// recordIterator implements RecordIterator for streaming access
type recordIterator struct {
	reader *RecordReader
	record []byte
	err    error
}

func (it *recordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *recordIterator) Record() []byte {
	return it.record
}

// Err returns the error that stopped iteration, nil at a clean end.
func (it *recordIterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}

func (it *recordIterator) Close() error {
	// Don't close the underlying stream as it's owned by the caller
	return nil
}
