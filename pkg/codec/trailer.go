package codec

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	countWidth         = 7
	sumAccountsWidth   = 17
	sumBankCodesWidth  = 17
	sumAmountsWidth    = 13
	legacyAmountWidth  = 13
	trailerReserve     = 51
	trailerLeadReserve = 5
)

// Trailer is the E record closing a logical file. It is either decoded
// from a stream or built by accumulating transactions.
type Trailer struct {
	count        int
	sumAccounts  *big.Int
	sumBankCodes *big.Int
	sumAmounts   *big.Int
}

// NewTrailer returns an empty trailer ready for Accumulate.
func NewTrailer() *Trailer {
	return &Trailer{
		sumAccounts:  new(big.Int),
		sumBankCodes: new(big.Int),
		sumAmounts:   new(big.Int),
	}
}

func (t *Trailer) Type() RecordType {
	return RecordTrailer
}

// Count is the number of C records.
func (t *Trailer) Count() int { return t.count }

// SumAccounts returns a copy of the account number checksum.
func (t *Trailer) SumAccounts() *big.Int { return new(big.Int).Set(t.sumAccounts) }

// SumBankCodes returns a copy of the bank code checksum.
func (t *Trailer) SumBankCodes() *big.Int { return new(big.Int).Set(t.sumBankCodes) }

// SumAmounts returns a copy of the amount checksum in cents.
func (t *Trailer) SumAmounts() *big.Int { return new(big.Int).Set(t.sumAmounts) }

// SumAmountsEuro returns the amount checksum in euros.
func (t *Trailer) SumAmountsEuro() decimal.Decimal {
	return decimal.NewFromBigInt(t.sumAmounts, -2)
}

// Accumulate folds tx into the count and the three sums.
func (t *Trailer) Accumulate(tx *Transaction) {
	t.count++
	t.sumBankCodes.Add(t.sumBankCodes, new(big.Int).SetUint64(tx.BankCode))
	t.sumAccounts.Add(t.sumAccounts, new(big.Int).SetUint64(tx.AccountNumber))
	t.sumAmounts.Add(t.sumAmounts, new(big.Int).SetUint64(tx.Amount))
}

// Equal reports whether both trailers carry the same count and sums.
func (t *Trailer) Equal(o *Trailer) bool {
	return t.count == o.count &&
		t.sumAccounts.Cmp(o.sumAccounts) == 0 &&
		t.sumBankCodes.Cmp(o.sumBankCodes) == 0 &&
		t.sumAmounts.Cmp(o.sumAmounts) == 0
}

// DecodeTrailer decodes a 128 byte E record. The totals are taken as given.
func DecodeTrailer(raw []byte, opts Options) (*Trailer, error) {
	runes, err := prepare(raw, FixedRecordSize, RecordTrailer, opts)
	if err != nil {
		return nil, err
	}
	if code := field(runes, 0, 4); code != fixedLengthCode {
		return nil, newError(KindLengthCodeInvalid, RecordTrailer, "", code)
	}
	if tag := field(runes, 4, 5); tag != string(RecordTrailer) {
		return nil, newError(KindRecordTypeTagInvalid, RecordTrailer, "", tag)
	}

	t := NewTrailer()
	count := field(runes, 10, 17)
	if !isDigits(count) {
		return nil, newError(KindCountFieldInvalid, RecordTrailer, "count", count)
	}
	t.count, _ = strconv.Atoi(count)

	// Non-numeric account and bank code sums read as zero; only the amount
	// sum is mandatory.
	if n, ok := parseBig(field(runes, 30, 47)); ok {
		t.sumAccounts = n
	}
	if n, ok := parseBig(field(runes, 47, 64)); ok {
		t.sumBankCodes = n
	}
	amounts := field(runes, 64, 77)
	n, ok := parseBig(amounts)
	if !ok {
		return nil, newError(KindSumFieldInvalid, RecordTrailer, "amount sum", amounts)
	}
	t.sumAmounts = n
	return t, nil
}

// Encode renders the trailer as a 128 byte E record.
func (t *Trailer) Encode(opts Options) ([]byte, error) {
	count, ok := zeroPad(uint64(t.count), countWidth)
	if !ok || t.count < 0 {
		return nil, newError(KindSumOverflow, RecordTrailer, "count", count)
	}
	accounts, ok := zeroPadBig(t.sumAccounts, sumAccountsWidth)
	if !ok {
		return nil, newError(KindSumOverflow, RecordTrailer, "account sum", accounts)
	}
	banks, ok := zeroPadBig(t.sumBankCodes, sumBankCodesWidth)
	if !ok {
		return nil, newError(KindSumOverflow, RecordTrailer, "bank code sum", banks)
	}
	amounts, ok := zeroPadBig(t.sumAmounts, sumAmountsWidth)
	if !ok {
		return nil, newError(KindSumOverflow, RecordTrailer, "amount sum", amounts)
	}

	b := newRecordBuilder(FixedRecordSize)
	b.put(fixedLengthCode)
	b.put(string(RecordTrailer))
	b.pad(trailerLeadReserve)
	b.put(count)
	b.put(strings.Repeat("0", legacyAmountWidth))
	b.put(accounts)
	b.put(banks)
	b.put(amounts)
	b.pad(trailerReserve)
	return encodeRunes(b.runes, opts, RecordTrailer)
}

func (t *Trailer) String() string {
	return fmt.Sprintf("trailer count=%d accounts=%s bankcodes=%s amounts=%s",
		t.count, t.sumAccounts, t.sumBankCodes, t.SumAmountsEuro().StringFixed(2))
}
