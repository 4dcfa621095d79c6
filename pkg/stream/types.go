package stream

import "golang.org/x/text/encoding"

// RecordReaderConfig holds configuration for the record reader
type RecordReaderConfig struct {
	BufferSize int               // Read buffer size (0 = bufio default)
	Charset    encoding.Encoding // Charset of length codes (nil = ISO-8859-1)
}

// RecordWriterConfig holds configuration for the record writer
type RecordWriterConfig struct {
	BufferSize int               // Write buffer size (0 = bufio default)
	Charset    encoding.Encoding // Charset of length codes (nil = ISO-8859-1)
}

// RecordIterator provides streaming access to raw records
type RecordIterator interface {
	Next() bool
	Record() []byte
	Err() error
	Close() error
}
