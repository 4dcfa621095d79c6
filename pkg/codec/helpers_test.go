package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

type headerFields struct {
	direction string
	bank      string
	secondary string
	name      string
	created   string
	account   string
	reference string
	execution string
	currency  string
}

func defaultHeaderFields() headerFields {
	return headerFields{
		direction: "GK",
		bank:      "10000000",
		secondary: "00000000",
		name:      "MUSTERMANN GMBH",
		created:   "010124",
		account:   "0123456789",
		reference: spaces(10),
		execution: spaces(8),
		currency:  "1",
	}
}

func (f headerFields) line() string {
	return "0128A" + f.direction + f.bank + f.secondary + fit(f.name, 27) + f.created +
		spaces(4) + f.account + f.reference + spaces(15) + f.execution + spaces(24) + f.currency
}

func trailerLine(count, accounts, banks, amounts string) string {
	return "0128E" + spaces(5) + count + strings.Repeat("0", 13) + accounts + banks + amounts + spaces(51)
}

func latin1(t testing.TB, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func sampleTransaction(extensions int) *Transaction {
	tx := &Transaction{
		FirstBankCode:      0,
		BankCode:           37040044,
		AccountNumber:      532013000,
		CustomerReference:  strings.Repeat("0", 13),
		TextKey:            "51",
		TextKeyExtension:   "000",
		OriginatorBankCode: 10000000,
		OriginatorAccount:  123456789,
		Amount:             12550,
		PayeeName:          "MAX MÜLLER",
		OriginatorName:     "MUSTERMANN GMBH",
		Purpose:            "RECHNUNG 2024/001",
		CurrencyFlag:       CurrencyEuro,
	}
	for i := 0; i < extensions; i++ {
		tx.Extensions = append(tx.Extensions, Extension{Type: "02", Text: fmt.Sprintf("ZEILE %02d", i)})
	}
	return tx
}
