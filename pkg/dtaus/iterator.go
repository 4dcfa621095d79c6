package dtaus

import "github.com/ssargent/dtaus/pkg/codec"

// TransactionIterator is a finite forward-only cursor over the
// transactions of one logical file. It is not safe for concurrent use.
type TransactionIterator struct {
	transactions []*codec.Transaction
	pos          int
	current      *codec.Transaction
}

// Next advances the cursor and reports whether a transaction is available.
func (it *TransactionIterator) Next() bool {
	if it.pos >= len(it.transactions) {
		it.current = nil
		return false
	}
	it.current = it.transactions[it.pos]
	it.pos++
	return true
}

// Transaction returns the transaction at the cursor, nil before the first
// call to Next or after the last.
func (it *TransactionIterator) Transaction() *codec.Transaction {
	return it.current
}

// Remaining returns how many transactions Next will still yield.
func (it *TransactionIterator) Remaining() int {
	return len(it.transactions) - it.pos
}
