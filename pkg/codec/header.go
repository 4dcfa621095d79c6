package codec

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the header's credit/debit marker.
type Direction string

const (
	CreditToCustomer  Direction = "GK"
	DebitFromCustomer Direction = "LK"
	CreditToBank      Direction = "GB"
	DebitFromBank     Direction = "LB"
)

// ParseDirection validates one of the four header direction codes.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case CreditToCustomer, DebitFromCustomer, CreditToBank, DebitFromBank:
		return d, nil
	}
	return "", newError(KindDirectionFlagInvalid, RecordHeader, "", s)
}

// IsCredit reports whether the file carries credit transfers.
func (d Direction) IsCredit() bool {
	return d == CreditToCustomer || d == CreditToBank
}

// CurrencyEuro is the only currency flag the format accepts.
const CurrencyEuro = "1"

const (
	nameWidth      = 27
	referenceWidth = 10
)

// Header is the A record opening a logical file.
type Header struct {
	Direction Direction
	BankCode  uint64
	// SecondaryBankCode is only filled on files delivered by banks.
	SecondaryBankCode uint64
	Name              string
	// CreationDate holds the raw ddmmyy digits.
	CreationDate  string
	AccountNumber uint64
	Reference     string
	// ExecutionDate is nil when unspecified.
	ExecutionDate *time.Time
	CurrencyFlag  string
}

// NewHeader returns a header with the format defaults filled in.
func NewHeader(direction Direction) *Header {
	return &Header{
		Direction:    direction,
		Reference:    spaces(referenceWidth),
		CurrencyFlag: CurrencyEuro,
	}
}

func (h *Header) Type() RecordType {
	return RecordHeader
}

// SetName sanitizes name and stores it if it fits the DTAUS alphabet.
func (h *Header) SetName(name string, tol Tolerance) error {
	s := sanitize(name, tol)
	if err := validate([]rune(s), RecordHeader, "name"); err != nil {
		return err
	}
	h.Name = strings.TrimRight(s, " ")
	return nil
}

// CreationTime converts CreationDate. ok is false when the raw digits are
// not a calendar date.
func (h *Header) CreationTime() (t time.Time, ok bool) {
	t, err := time.Parse(creationDateLayout, h.CreationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasExecutionDate reports whether an execution date was given.
func (h *Header) HasExecutionDate() bool {
	return h.ExecutionDate != nil
}

// DecodeHeader decodes a 128 byte A record.
func DecodeHeader(raw []byte, opts Options) (*Header, error) {
	runes, err := prepare(raw, FixedRecordSize, RecordHeader, opts)
	if err != nil {
		return nil, err
	}
	if code := field(runes, 0, 4); code != fixedLengthCode {
		return nil, newError(KindLengthCodeInvalid, RecordHeader, "", code)
	}
	if tag := field(runes, 4, 5); tag != string(RecordHeader) {
		return nil, newError(KindRecordTypeTagInvalid, RecordHeader, "", tag)
	}

	h := &Header{}
	if h.Direction, err = ParseDirection(field(runes, 5, 7)); err != nil {
		return nil, err
	}
	if h.BankCode, err = parseNumber(field(runes, 7, 15), RecordHeader, "bank code"); err != nil {
		return nil, err
	}
	// Customer files leave this field blank or zero.
	h.SecondaryBankCode, _ = parseNumber(field(runes, 15, 23), RecordHeader, "secondary bank code")
	if err := h.SetName(field(runes, 23, 50), opts.Tolerance); err != nil {
		return nil, err
	}
	h.CreationDate = field(runes, 50, 56)
	if h.AccountNumber, err = parseNumber(field(runes, 60, 70), RecordHeader, "account number"); err != nil {
		return nil, err
	}
	h.Reference = field(runes, 70, 80)
	if h.ExecutionDate, err = parseExecutionDate(field(runes, 95, 103), RecordHeader); err != nil {
		return nil, err
	}

	h.CurrencyFlag = field(runes, 127, 128)
	if h.CurrencyFlag != CurrencyEuro {
		if !opts.Tolerance.Has(LenientCurrencyFlag) {
			return nil, newError(KindCurrencyFlagInvalid, RecordHeader, "", h.CurrencyFlag)
		}
		opts.warn(Warning{Kind: KindCurrencyFlagInvalid, Record: RecordHeader, Field: "currency flag", Value: h.CurrencyFlag})
	}
	return h, nil
}

// Encode renders the header as a 128 byte A record.
func (h *Header) Encode(opts Options) ([]byte, error) {
	if _, err := ParseDirection(string(h.Direction)); err != nil {
		return nil, err
	}
	bank, ok := zeroPad(h.BankCode, 8)
	if !ok {
		return nil, newError(KindNumericFieldInvalid, RecordHeader, "bank code", bank)
	}
	secondary, ok := zeroPad(h.SecondaryBankCode, 8)
	if !ok {
		return nil, newError(KindNumericFieldInvalid, RecordHeader, "secondary bank code", secondary)
	}
	account, ok := zeroPad(h.AccountNumber, 10)
	if !ok {
		return nil, newError(KindNumericFieldInvalid, RecordHeader, "account number", account)
	}
	reference := h.Reference
	if reference == "" {
		reference = spaces(referenceWidth)
	}
	currency := h.CurrencyFlag
	if currency == "" {
		currency = CurrencyEuro
	}

	b := newRecordBuilder(FixedRecordSize)
	b.put(fixedLengthCode)
	b.put(string(RecordHeader))
	b.put(string(h.Direction))
	b.put(bank)
	b.put(secondary)
	b.put(fit(h.Name, nameWidth))
	b.put(fit(h.CreationDate, 6))
	b.pad(4)
	b.put(account)
	b.put(fit(reference, referenceWidth))
	b.pad(15)
	if h.HasExecutionDate() {
		b.put(h.ExecutionDate.Format(executionDateLayout))
	} else {
		b.pad(8)
	}
	b.pad(24)
	b.put(fit(currency, 1))

	if err := validate(b.runes, RecordHeader, ""); err != nil {
		return nil, err
	}
	return encodeRunes(b.runes, opts, RecordHeader)
}

func (h *Header) String() string {
	exec := "-"
	if h.HasExecutionDate() {
		exec = h.ExecutionDate.Format(executionDateLayout)
	}
	kind := "debit"
	if h.Direction.IsCredit() {
		kind = "credit"
	}
	return fmt.Sprintf("header direction=%s kind=%s bank=%d secondary=%d name=%q created=%s account=%d reference=%q executes=%s currency=%s",
		h.Direction, kind, h.BankCode, h.SecondaryBankCode, h.Name, h.CreationDate,
		h.AccountNumber, h.Reference, exec, h.CurrencyFlag)
}
