package codec

import (
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	creationDateLayout  = "020106"
	executionDateLayout = "02012006"
)

// field returns runes[from:to] as a string.
func field(runes []rune, from, to int) string {
	return string(runes[from:to])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseNumber parses a fixed-width all-digit field.
func parseNumber(s string, rt RecordType, name string) (uint64, error) {
	if !isDigits(s) {
		return 0, newError(KindNumericFieldInvalid, rt, name, s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &Error{Kind: KindNumericFieldInvalid, Record: rt, Field: name, Value: s, Err: err}
	}
	return n, nil
}

// parseBig parses an all-digit field of arbitrary width.
func parseBig(s string) (*big.Int, bool) {
	if !isDigits(s) {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}

// zeroPad renders n right-aligned in width digits. ok is false when n does
// not fit.
func zeroPad(n uint64, width int) (string, bool) {
	s := strconv.FormatUint(n, 10)
	if len(s) > width {
		return s, false
	}
	return strings.Repeat("0", width-len(s)) + s, true
}

func zeroPadBig(n *big.Int, width int) (string, bool) {
	if n == nil {
		return strings.Repeat("0", width), true
	}
	s := n.String()
	if n.Sign() < 0 || len(s) > width {
		return s, false
	}
	return strings.Repeat("0", width-len(s)) + s, true
}

// fit pads s with spaces, or truncates it, to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " ") == ""
}

// parseExecutionDate parses ddmmyyyy strictly. An all-blank field yields
// nil.
func parseExecutionDate(s string, rt RecordType) (*time.Time, error) {
	if isBlank(s) {
		return nil, nil
	}
	if !isDigits(s) {
		return nil, newError(KindDateFieldInvalid, rt, "execution date", s)
	}
	t, err := time.Parse(executionDateLayout, s)
	if err != nil {
		return nil, &Error{Kind: KindDateFieldInvalid, Record: rt, Field: "execution date", Value: s, Err: err}
	}
	return &t, nil
}

// recordBuilder assembles a record of fixed rune width left to right.
type recordBuilder struct {
	runes []rune
}

func newRecordBuilder(size int) *recordBuilder {
	return &recordBuilder{runes: make([]rune, 0, size)}
}

func (b *recordBuilder) put(s string) {
	b.runes = append(b.runes, []rune(s)...)
}

func (b *recordBuilder) pad(n int) {
	for i := 0; i < n; i++ {
		b.runes = append(b.runes, ' ')
	}
}

// padTo fills with spaces up to size.
func (b *recordBuilder) padTo(size int) {
	if n := size - len(b.runes); n > 0 {
		b.pad(n)
	}
}
