package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the failures a DTAUS stream can produce.
type ErrorKind int

const (
	KindLengthCodeInvalid ErrorKind = iota + 1
	KindStreamTruncated
	KindRecordTypeTagInvalid
	KindDirectionFlagInvalid
	KindNumericFieldInvalid
	KindCountFieldInvalid
	KindSumFieldInvalid
	KindCharacterSetInvalid
	KindCurrencyFlagInvalid
	KindDateFieldInvalid
	KindInvalidLogicalFileIndex
	KindTrailerMismatch
	KindSumOverflow
	KindLogicalFileSealed
)

var kindText = map[ErrorKind]string{
	KindLengthCodeInvalid:       "length code invalid",
	KindStreamTruncated:         "stream truncated",
	KindRecordTypeTagInvalid:    "record type tag invalid",
	KindDirectionFlagInvalid:    "direction flag invalid",
	KindNumericFieldInvalid:     "numeric field invalid",
	KindCountFieldInvalid:       "count field invalid",
	KindSumFieldInvalid:         "sum field invalid",
	KindCharacterSetInvalid:     "character set invalid",
	KindCurrencyFlagInvalid:     "currency flag invalid",
	KindDateFieldInvalid:        "date field invalid",
	KindInvalidLogicalFileIndex: "invalid logical file index",
	KindTrailerMismatch:         "trailer does not match transactions",
	KindSumOverflow:             "sum exceeds field width",
	KindLogicalFileSealed:       "logical file already sealed",
}

func (k ErrorKind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the single error type returned by the codec and the packages
// built on it. Record, Field and Value are optional annotations.
type Error struct {
	Kind   ErrorKind
	Record RecordType
	Field  string
	Value  string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Record != RecordUnknown {
		b.WriteString(e.Record.String())
		b.WriteString(" record: ")
	}
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of annotations. A count failure is also a numeric
// field failure.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindNumericFieldInvalid && e.Kind == KindCountFieldInvalid
}

// Sentinels for errors.Is.
var (
	ErrLengthCodeInvalid       = &Error{Kind: KindLengthCodeInvalid}
	ErrStreamTruncated         = &Error{Kind: KindStreamTruncated}
	ErrRecordTypeTagInvalid    = &Error{Kind: KindRecordTypeTagInvalid}
	ErrDirectionFlagInvalid    = &Error{Kind: KindDirectionFlagInvalid}
	ErrNumericFieldInvalid     = &Error{Kind: KindNumericFieldInvalid}
	ErrCountFieldInvalid       = &Error{Kind: KindCountFieldInvalid}
	ErrSumFieldInvalid         = &Error{Kind: KindSumFieldInvalid}
	ErrCharacterSetInvalid     = &Error{Kind: KindCharacterSetInvalid}
	ErrCurrencyFlagInvalid     = &Error{Kind: KindCurrencyFlagInvalid}
	ErrDateFieldInvalid        = &Error{Kind: KindDateFieldInvalid}
	ErrInvalidLogicalFileIndex = &Error{Kind: KindInvalidLogicalFileIndex}
	ErrTrailerMismatch         = &Error{Kind: KindTrailerMismatch}
	ErrSumOverflow             = &Error{Kind: KindSumOverflow}
	ErrLogicalFileSealed       = &Error{Kind: KindLogicalFileSealed}
)

func newError(kind ErrorKind, rt RecordType, field, value string) *Error {
	return &Error{Kind: kind, Record: rt, Field: field, Value: value}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
