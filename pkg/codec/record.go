package codec

import (
	"strconv"

	"golang.org/x/text/encoding"
)

// RecordType is the one-letter tag at offset 4 of every record.
type RecordType byte

const (
	RecordUnknown     RecordType = 0
	RecordHeader      RecordType = 'A'
	RecordTransaction RecordType = 'C'
	RecordTrailer     RecordType = 'E'
)

func (t RecordType) String() string {
	switch t {
	case RecordHeader:
		return "header"
	case RecordTransaction:
		return "transaction"
	case RecordTrailer:
		return "trailer"
	case RecordUnknown:
		return "unknown"
	}
	return "type " + strconv.QuoteRune(rune(t))
}

const (
	// LengthCodeSize is the width of the length code opening every record.
	LengthCodeSize = 4
	// FixedRecordSize is the size of header and trailer records.
	FixedRecordSize = 128

	fixedLengthCode = "0128"
)

// Record is implemented by Header, Transaction and Trailer.
type Record interface {
	Type() RecordType
	Encode(opts Options) ([]byte, error)
}

// physicalSizes maps logical length code ranges to physical record sizes.
// A zero max means unbounded.
var physicalSizes = []struct {
	min, max, size int
}{
	{128, 128, 128},
	{187, 245, 256},
	{274, 361, 384},
	{390, 477, 512},
	{506, 593, 640},
	{622, 0, 728},
}

// PhysicalSize resolves a logical length code to the number of bytes the
// record occupies in the stream.
func PhysicalSize(code int) (int, error) {
	for _, r := range physicalSizes {
		if code >= r.min && (r.max == 0 || code <= r.max) {
			return r.size, nil
		}
	}
	return 0, newError(KindLengthCodeInvalid, RecordUnknown, "", strconv.Itoa(code))
}

// ParseLengthCode decodes the four length code bytes with enc, nil meaning
// DefaultCharset, and parses them. ok is false when they are not a number,
// which marks the end of the records. A signed number is never a valid
// code and fails with KindLengthCodeInvalid.
func ParseLengthCode(b []byte, enc encoding.Encoding) (code int, ok bool, err error) {
	if len(b) != LengthCodeSize {
		return 0, false, nil
	}
	runes, err := decodeRunes(b, Options{Charset: enc}, RecordUnknown)
	if err != nil || len(runes) != LengthCodeSize {
		return 0, false, nil
	}
	s := string(runes)
	if !isDigits(s) {
		if (runes[0] == '+' || runes[0] == '-') && isDigits(string(runes[1:])) {
			return 0, true, newError(KindLengthCodeInvalid, RecordUnknown, "", s)
		}
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// TypeOf returns the record type tag of a raw record, decoded with enc,
// without decoding the rest of the record.
func TypeOf(raw []byte, enc encoding.Encoding) RecordType {
	if len(raw) <= LengthCodeSize {
		return RecordUnknown
	}
	runes, err := decodeRunes(raw[:LengthCodeSize+1], Options{Charset: enc}, RecordUnknown)
	if err != nil || len(runes) <= LengthCodeSize || runes[LengthCodeSize] > 0xFF {
		return RecordUnknown
	}
	return RecordType(runes[LengthCodeSize])
}

// prepare decodes raw into runes, applies the tolerance translations and
// validates the whole record against the DTAUS alphabet.
func prepare(raw []byte, size int, rt RecordType, opts Options) ([]rune, error) {
	runes, err := decodeRunes(raw, opts, rt)
	if err != nil {
		return nil, err
	}
	if len(runes) < size {
		return nil, &Error{Kind: KindStreamTruncated, Record: rt, Value: strconv.Itoa(len(runes))}
	}
	translate(runes, opts.Tolerance)
	if err := validate(runes, rt, ""); err != nil {
		return nil, err
	}
	return runes, nil
}
