package dtaus

import (
	"strconv"

	"github.com/ssargent/dtaus/pkg/codec"
)

// LogicalFile is one header, its transactions and the closing trailer.
// Files returned by Parse are sealed. Files built with NewLogicalFile stay
// open for Add until Seal is called.
type LogicalFile struct {
	Header  *codec.Header
	Trailer *codec.Trailer
	// Warnings lists the deviations accepted while decoding this file.
	Warnings []codec.Warning

	transactions []*codec.Transaction
	sealed       bool
}

// NewLogicalFile starts an open logical file for the write path.
func NewLogicalFile(header *codec.Header) *LogicalFile {
	return &LogicalFile{Header: header}
}

// Add appends a transaction. It fails once the file is sealed.
func (f *LogicalFile) Add(tx *codec.Transaction) error {
	if f.sealed {
		return &codec.Error{Kind: codec.KindLogicalFileSealed, Record: codec.RecordTransaction}
	}
	f.transactions = append(f.transactions, tx)
	return nil
}

// Seal computes the trailer from the transactions added so far and closes
// the file for further additions. Sealing twice returns the same trailer.
func (f *LogicalFile) Seal() *codec.Trailer {
	if !f.sealed {
		f.Trailer = f.computeTrailer()
		f.sealed = true
	}
	return f.Trailer
}

// Sealed reports whether the file has a trailer and accepts no more transactions.
func (f *LogicalFile) Sealed() bool {
	return f.sealed
}

// Len returns the number of transactions.
func (f *LogicalFile) Len() int {
	return len(f.transactions)
}

// Transactions returns the transactions in stream order. The slice is a
// copy; the records are shared.
func (f *LogicalFile) Transactions() []*codec.Transaction {
	out := make([]*codec.Transaction, len(f.transactions))
	copy(out, f.transactions)
	return out
}

// Iterator returns a new cursor positioned before the first transaction.
func (f *LogicalFile) Iterator() *TransactionIterator {
	return &TransactionIterator{transactions: f.transactions}
}

// Verify recomputes the count and the three sums from the transactions and
// compares them with the trailer. The first disagreement is reported as a
// KindTrailerMismatch error naming the field.
func (f *LogicalFile) Verify() error {
	if f.Trailer == nil {
		return &codec.Error{Kind: codec.KindTrailerMismatch, Record: codec.RecordTrailer, Field: "missing"}
	}
	want := f.computeTrailer()

	if f.Trailer.Count() != want.Count() {
		return mismatch("count", strconv.Itoa(f.Trailer.Count()), strconv.Itoa(want.Count()))
	}
	if f.Trailer.SumAccounts().Cmp(want.SumAccounts()) != 0 {
		return mismatch("account sum", f.Trailer.SumAccounts().String(), want.SumAccounts().String())
	}
	if f.Trailer.SumBankCodes().Cmp(want.SumBankCodes()) != 0 {
		return mismatch("bank code sum", f.Trailer.SumBankCodes().String(), want.SumBankCodes().String())
	}
	if f.Trailer.SumAmounts().Cmp(want.SumAmounts()) != 0 {
		return mismatch("amount sum", f.Trailer.SumAmounts().String(), want.SumAmounts().String())
	}
	return nil
}

func (f *LogicalFile) computeTrailer() *codec.Trailer {
	tr := codec.NewTrailer()
	for _, tx := range f.transactions {
		tr.Accumulate(tx)
	}
	return tr
}

// seal closes a decoded file with the trailer read from the stream.
func (f *LogicalFile) seal(tr *codec.Trailer) {
	f.Trailer = tr
	f.sealed = true
}

func mismatch(field, got, want string) error {
	return &codec.Error{
		Kind:   codec.KindTrailerMismatch,
		Record: codec.RecordTrailer,
		Field:  field,
		Value:  got + " != " + want,
	}
}
