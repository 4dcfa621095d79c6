package dtaus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/stream"
	"go.uber.org/zap"
)

// Parser holds every logical file of a DTAUS stream together with a
// selection and a cursor over the selected file's transactions.
//
// The selection and cursor are mutable state. A Parser must be confined to
// one goroutine or guarded by the caller. LogicalFile and its Iterator are
// the stateless alternative.
type Parser struct {
	files    []*LogicalFile
	selected int
	cursor   *TransactionIterator
}

// Parse reads r to the end and decodes all logical files in it. Any
// decode failure aborts the whole parse; no partial result is returned.
// The first logical file is selected when the stream holds any.
func Parse(r io.Reader, opts ...Option) (*Parser, error) {
	cfg := newConfig(opts)
	logger := cfg.codec.Logger

	start := time.Now()
	files, err := parse(r, cfg)
	cfg.metrics.ObserveParse(time.Since(start), err)
	if err != nil {
		logger.Debug("parse failed", zap.Error(err))
		return nil, err
	}

	p := &Parser{files: files}
	if len(files) > 0 {
		_ = p.Select(1)
	}
	logger.Info("parsed dtaus stream",
		zap.Int("logical_files", len(files)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return p, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string, opts ...Option) (*Parser, error) {
	file, err := os.Open(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open dtaus file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts...)
}

// parse drives the header, transactions, trailer cycle until the stream
// ends.
func parse(r io.Reader, cfg config) ([]*LogicalFile, error) {
	reader := stream.NewRecordReader(r, stream.RecordReaderConfig{
		BufferSize: cfg.bufferSize,
		Charset:    cfg.codec.Charset,
	})

	var warnings []codec.Warning
	opts := cfg.codec
	opts.OnWarning = func(w codec.Warning) {
		warnings = append(warnings, w)
		cfg.metrics.RecordWarning(w.Kind)
		if cfg.codec.OnWarning != nil {
			cfg.codec.OnWarning(w)
		}
	}

	var files []*LogicalFile
	for {
		index := len(files) + 1

		raw, err := reader.ReadNext()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return nil, fmt.Errorf("logical file %d: %w", index, err)
		}

		if rt := codec.TypeOf(raw, cfg.codec.Charset); rt != codec.RecordHeader {
			return nil, fmt.Errorf("logical file %d: %w", index,
				&codec.Error{Kind: codec.KindRecordTypeTagInvalid, Record: codec.RecordHeader, Value: string(rt)})
		}
		header, err := codec.DecodeHeader(raw, opts)
		if err != nil {
			return nil, fmt.Errorf("logical file %d: %w", index, err)
		}
		cfg.metrics.RecordRecord(codec.RecordHeader, len(raw))

		file := &LogicalFile{Header: header}
		if err := readBody(reader, file, opts, cfg); err != nil {
			return nil, fmt.Errorf("logical file %d: %w", index, err)
		}
		file.Warnings, warnings = warnings, nil

		cfg.metrics.RecordLogicalFile(header.Direction)
		cfg.codec.Logger.Debug("sealed logical file",
			zap.Int("index", index),
			zap.String("direction", string(header.Direction)),
			zap.Int("transactions", file.Len()),
		)
		files = append(files, file)
	}
}

// readBody collects transactions until a record that is not a transaction,
// which must be the trailer.
func readBody(reader *stream.RecordReader, file *LogicalFile, opts codec.Options, cfg config) error {
	for {
		raw, err := reader.ReadNext()
		if errors.Is(err, io.EOF) {
			return &codec.Error{
				Kind:   codec.KindStreamTruncated,
				Record: codec.RecordTrailer,
				Field:  "missing",
				Value:  "offset " + strconv.FormatInt(reader.Offset(), 10),
			}
		}
		if err != nil {
			return err
		}

		if codec.TypeOf(raw, cfg.codec.Charset) == codec.RecordTransaction {
			tx, err := codec.DecodeTransaction(raw, opts)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", file.Len()+1, err)
			}
			cfg.metrics.RecordRecord(codec.RecordTransaction, len(raw))
			file.transactions = append(file.transactions, tx)
			continue
		}

		trailer, err := codec.DecodeTrailer(raw, opts)
		if err != nil {
			return err
		}
		cfg.metrics.RecordRecord(codec.RecordTrailer, len(raw))
		file.seal(trailer)
		return nil
	}
}

// Count returns the number of logical files.
func (p *Parser) Count() int {
	return len(p.files)
}

// LogicalFiles returns all logical files in stream order.
func (p *Parser) LogicalFiles() []*LogicalFile {
	out := make([]*LogicalFile, len(p.files))
	copy(out, p.files)
	return out
}

// LogicalFile returns logical file n, counting from 1.
func (p *Parser) LogicalFile(n int) (*LogicalFile, error) {
	if n < 1 || n > len(p.files) {
		return nil, &codec.Error{Kind: codec.KindInvalidLogicalFileIndex, Value: strconv.Itoa(n)}
	}
	return p.files[n-1], nil
}

// Select makes logical file n current and rewinds the cursor. Selecting the
// current file again restarts its cursor.
func (p *Parser) Select(n int) error {
	file, err := p.LogicalFile(n)
	if err != nil {
		return err
	}
	p.selected = n
	p.cursor = file.Iterator()
	return nil
}

// Selected returns the index of the current logical file, 0 if none.
func (p *Parser) Selected() int {
	return p.selected
}

// Header returns the header of the current logical file.
func (p *Parser) Header() *codec.Header {
	if p.selected == 0 {
		return nil
	}
	return p.files[p.selected-1].Header
}

// Trailer returns the trailer of the current logical file.
func (p *Parser) Trailer() *codec.Trailer {
	if p.selected == 0 {
		return nil
	}
	return p.files[p.selected-1].Trailer
}

// Next returns the next transaction of the current logical file, or nil
// when the cursor is exhausted.
func (p *Parser) Next() *codec.Transaction {
	if p.cursor == nil || !p.cursor.Next() {
		return nil
	}
	return p.cursor.Transaction()
}
