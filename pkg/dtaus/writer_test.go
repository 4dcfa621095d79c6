package dtaus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestWriter_RoundTrip(t *testing.T) {
	files := []*LogicalFile{
		testFile(t, codec.CreditToCustomer, "EINS", 4),
		testFile(t, codec.DebitFromBank, "ZWEI", 0),
		testFile(t, codec.CreditToBank, "DREI", 7),
	}
	stream := encodeStream(t, files...)

	p, err := Parse(bytes.NewReader(stream))
	require.NoError(t, err)
	require.Equal(t, len(files), p.Count())

	for i, want := range files {
		got, err := p.LogicalFile(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want.Header, got.Header)
		assert.Equal(t, want.Transactions(), got.Transactions())
		assert.True(t, want.Trailer.Equal(got.Trailer))
	}

	// Writing the parsed files reproduces the stream byte for byte.
	assert.Equal(t, stream, encodeStream(t, p.LogicalFiles()...))
}

func TestWriter_UnsealedFile(t *testing.T) {
	f := NewLogicalFile(testHeader(t, codec.CreditToCustomer, "OFFEN"))
	require.NoError(t, f.Add(testTransaction(0)))
	require.NoError(t, f.Add(testTransaction(1)))

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(f))
	require.NoError(t, w.Flush())

	assert.Nil(t, f.Trailer)
	assert.False(t, f.Sealed())

	p, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Trailer().Count())
	assert.Equal(t, 1, w.Count())
}

func TestWriter_EncodeFailureWritesNothing(t *testing.T) {
	f := NewLogicalFile(testHeader(t, codec.CreditToCustomer, "KASSE"))
	bad := testTransaction(0)
	bad.PayeeName = "kleinbuchstaben"
	require.NoError(t, f.Add(bad))

	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.Write(f)
	assert.True(t, errors.Is(err, codec.ErrCharacterSetInvalid))
	require.NoError(t, w.Flush())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, int64(0), w.Size())

	for _, f := range []*LogicalFile{{}, nil} {
		err := w.Write(f)
		assert.True(t, errors.Is(err, codec.ErrRecordTypeTagInvalid), "got %v", err)
		assert.Equal(t, codec.KindRecordTypeTagInvalid, codec.KindOf(err))
		var e *codec.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, codec.RecordHeader, e.Record)
	}
	assert.Equal(t, 0, w.Count())
}

func TestWriter_Charset(t *testing.T) {
	f := testFile(t, codec.CreditToCustomer, "MÜLLER", 1)

	var buf bytes.Buffer
	w := NewWriter(&buf, WithCharset(charmap.CodePage850))
	require.NoError(t, w.Write(f))
	require.NoError(t, w.Flush())
	assert.Equal(t, byte(0x9A), buf.Bytes()[24])

	p, err := Parse(&buf, WithCharset(charmap.CodePage850))
	require.NoError(t, err)
	assert.Equal(t, "MÜLLER", p.Header().Name)
}

func TestWriter_RoundTripEBCDIC(t *testing.T) {
	files := []*LogicalFile{
		testFile(t, codec.CreditToCustomer, "EINS", 4),
		testFile(t, codec.DebitFromCustomer, "ZWEI", 2),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, WithCharset(charmap.CodePage037))
	for _, f := range files {
		require.NoError(t, w.Write(f))
	}
	require.NoError(t, w.Flush())
	raw := buf.Bytes()
	assert.Equal(t, []byte{0xF0, 0xF1, 0xF2, 0xF8, 0xC1}, raw[:5]) // 0128A

	p, err := Parse(bytes.NewReader(raw), WithCharset(charmap.CodePage037))
	require.NoError(t, err)
	require.Equal(t, len(files), p.Count())
	for i, want := range files {
		got, err := p.LogicalFile(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want.Header, got.Header)
		assert.Equal(t, want.Transactions(), got.Transactions())
		assert.True(t, want.Trailer.Equal(got.Trailer))
	}
}

func TestWriter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	var buf bytes.Buffer
	w := NewWriter(&buf, WithMetrics(m), WithBufferSize(256))
	require.NoError(t, w.Write(testFile(t, codec.CreditToCustomer, "KASSE", 2)))
	require.NoError(t, w.Flush())

	count, err := testutil.GatherAndCount(reg, "dtaus_records_written_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count) // header, transaction and trailer series
	assert.Equal(t, int64(buf.Len()), w.Size())
}

func BenchmarkWriter_Write(b *testing.B) {
	f := testFile(b, codec.DebitFromCustomer, "LASTSCHRIFT", 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.Write(f); err != nil {
			b.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			b.Fatal(err)
		}
	}
}
