package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxExtensions is the number of extension blocks a C record may carry.
	MaxExtensions = 15

	transactionBaseLength = 187
	extensionSize         = 29
	extensionTextWidth    = 27
	continuationSize      = 128
	firstPartExtensions   = 2
	continuationSlots     = 4
)

// Extension is one 29 character extension block of a C record. The
// content is kept opaque.
type Extension struct {
	Type string
	Text string
}

// Transaction is a C record: one payment instruction.
type Transaction struct {
	FirstBankCode      uint64
	BankCode           uint64
	AccountNumber      uint64
	CustomerReference  string
	TextKey            string
	TextKeyExtension   string
	OriginatorBankCode uint64
	OriginatorAccount  uint64
	// Amount is in cents.
	Amount         uint64
	PayeeName      string
	OriginatorName string
	Purpose        string
	CurrencyFlag   string
	Extensions     []Extension
}

func (t *Transaction) Type() RecordType {
	return RecordTransaction
}

// LengthCode is the logical record length written at offset 0.
func (t *Transaction) LengthCode() int {
	return transactionBaseLength + extensionSize*len(t.Extensions)
}

// AmountEuro returns Amount in euros.
func (t *Transaction) AmountEuro() decimal.Decimal {
	return decimal.New(int64(t.Amount), -2)
}

// extensionOffset returns the rune offset of extension i (0-based).
func extensionOffset(i int) int {
	if i < firstPartExtensions {
		return transactionBaseLength + i*extensionSize
	}
	i -= firstPartExtensions
	return 2*continuationSize + (i/continuationSlots)*continuationSize + (i%continuationSlots)*extensionSize
}

// DecodeTransaction decodes a C record of any physical size.
func DecodeTransaction(raw []byte, opts Options) (*Transaction, error) {
	if len(raw) < LengthCodeSize {
		return nil, newError(KindStreamTruncated, RecordTransaction, "", strconv.Itoa(len(raw)))
	}
	code, ok, err := ParseLengthCode(raw[:LengthCodeSize], opts.Charset)
	if err != nil || !ok {
		return nil, newError(KindLengthCodeInvalid, RecordTransaction, "", string(raw[:LengthCodeSize]))
	}
	size, err := PhysicalSize(code)
	if err != nil || size == FixedRecordSize {
		return nil, newError(KindLengthCodeInvalid, RecordTransaction, "", strconv.Itoa(code))
	}
	runes, err := prepare(raw, size, RecordTransaction, opts)
	if err != nil {
		return nil, err
	}
	if tag := field(runes, 4, 5); tag != string(RecordTransaction) {
		return nil, newError(KindRecordTypeTagInvalid, RecordTransaction, "", tag)
	}

	t := &Transaction{}
	t.FirstBankCode, _ = parseNumber(field(runes, 5, 13), RecordTransaction, "first bank code")
	numbers := []struct {
		dst      *uint64
		from, to int
		name     string
	}{
		{&t.BankCode, 13, 21, "bank code"},
		{&t.AccountNumber, 21, 31, "account number"},
		{&t.OriginatorBankCode, 61, 69, "originator bank code"},
		{&t.OriginatorAccount, 69, 79, "originator account"},
		{&t.Amount, 79, 90, "amount"},
	}
	for _, n := range numbers {
		if *n.dst, err = parseNumber(field(runes, n.from, n.to), RecordTransaction, n.name); err != nil {
			return nil, err
		}
	}
	t.CustomerReference = field(runes, 31, 44)
	t.TextKey = field(runes, 44, 46)
	t.TextKeyExtension = field(runes, 46, 49)
	t.PayeeName = strings.TrimRight(field(runes, 93, 120), " ")
	t.OriginatorName = strings.TrimRight(field(runes, 128, 155), " ")
	t.Purpose = strings.TrimRight(field(runes, 155, 182), " ")

	t.CurrencyFlag = field(runes, 182, 183)
	if t.CurrencyFlag != CurrencyEuro {
		if !opts.Tolerance.Has(LenientCurrencyFlag) {
			return nil, newError(KindCurrencyFlagInvalid, RecordTransaction, "", t.CurrencyFlag)
		}
		opts.warn(Warning{Kind: KindCurrencyFlagInvalid, Record: RecordTransaction, Field: "currency flag", Value: t.CurrencyFlag})
	}

	count, err := parseNumber(field(runes, 185, 187), RecordTransaction, "extension count")
	if err != nil {
		return nil, err
	}
	if count > MaxExtensions || transactionBaseLength+extensionSize*int(count) != code {
		return nil, &Error{Kind: KindLengthCodeInvalid, Record: RecordTransaction, Field: "extension count", Value: strconv.Itoa(code)}
	}
	for i := 0; i < int(count); i++ {
		off := extensionOffset(i)
		t.Extensions = append(t.Extensions, Extension{
			Type: field(runes, off, off+2),
			Text: strings.TrimRight(field(runes, off+2, off+extensionSize), " "),
		})
	}
	return t, nil
}

// Encode renders the transaction padded to its physical size.
func (t *Transaction) Encode(opts Options) ([]byte, error) {
	if len(t.Extensions) > MaxExtensions {
		return nil, newError(KindLengthCodeInvalid, RecordTransaction, "extension count", strconv.Itoa(len(t.Extensions)))
	}
	code := t.LengthCode()
	size, err := PhysicalSize(code)
	if err != nil {
		return nil, err
	}

	numbers := []struct {
		n     uint64
		width int
		name  string
	}{
		{t.FirstBankCode, 8, "first bank code"},
		{t.BankCode, 8, "bank code"},
		{t.AccountNumber, 10, "account number"},
		{t.OriginatorBankCode, 8, "originator bank code"},
		{t.OriginatorAccount, 10, "originator account"},
		{t.Amount, 11, "amount"},
	}
	digits := make([]string, len(numbers))
	for i, n := range numbers {
		s, ok := zeroPad(n.n, n.width)
		if !ok {
			return nil, newError(KindNumericFieldInvalid, RecordTransaction, n.name, s)
		}
		digits[i] = s
	}
	currency := t.CurrencyFlag
	if currency == "" {
		currency = CurrencyEuro
	}
	lengthCode, _ := zeroPad(uint64(code), LengthCodeSize)
	extCount, _ := zeroPad(uint64(len(t.Extensions)), 2)

	b := newRecordBuilder(size)
	b.put(lengthCode)
	b.put(string(RecordTransaction))
	b.put(digits[0])
	b.put(digits[1])
	b.put(digits[2])
	b.put(fit(t.CustomerReference, 13))
	b.put(fit(t.TextKey, 2))
	b.put(fit(t.TextKeyExtension, 3))
	b.pad(1)
	b.put(strings.Repeat("0", 11))
	b.put(digits[3])
	b.put(digits[4])
	b.put(digits[5])
	b.pad(3)
	b.put(fit(t.PayeeName, nameWidth))
	b.pad(8)
	b.put(fit(t.OriginatorName, nameWidth))
	b.put(fit(t.Purpose, extensionTextWidth))
	b.put(fit(currency, 1))
	b.pad(2)
	b.put(extCount)
	for i, ext := range t.Extensions {
		b.padTo(extensionOffset(i))
		b.put(fit(ext.Type, 2))
		b.put(fit(ext.Text, extensionTextWidth))
	}
	b.padTo(size)

	if err := validate(b.runes, RecordTransaction, ""); err != nil {
		return nil, err
	}
	return encodeRunes(b.runes, opts, RecordTransaction)
}

func (t *Transaction) String() string {
	return fmt.Sprintf("transaction bank=%d account=%d amount=%s payee=%q originator=%q purpose=%q textkey=%s%s extensions=%d",
		t.BankCode, t.AccountNumber, t.AmountEuro().StringFixed(2), t.PayeeName, t.OriginatorName,
		t.Purpose, t.TextKey, t.TextKeyExtension, len(t.Extensions))
}
