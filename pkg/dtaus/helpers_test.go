package dtaus

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/stretchr/testify/require"
)

func testHeader(t testing.TB, dir codec.Direction, name string) *codec.Header {
	t.Helper()
	h := codec.NewHeader(dir)
	h.BankCode = 10000000
	h.AccountNumber = 123456789
	h.CreationDate = "010124"
	require.NoError(t, h.SetName(name, codec.StrictConformant))
	return h
}

func testTransaction(i int) *codec.Transaction {
	tx := &codec.Transaction{
		BankCode:           37040044 + uint64(i),
		AccountNumber:      532013000 + uint64(i),
		CustomerReference:  "0000000000000",
		TextKey:            "05",
		TextKeyExtension:   "000",
		OriginatorBankCode: 10000000,
		OriginatorAccount:  123456789,
		Amount:             uint64(1000 * (i + 1)),
		PayeeName:          fmt.Sprintf("ZAHLER %d", i),
		OriginatorName:     "MUSTERMANN GMBH",
		Purpose:            fmt.Sprintf("BEITRAG %d", i),
		CurrencyFlag:       codec.CurrencyEuro,
	}
	for e := 0; e < i%4; e++ {
		tx.Extensions = append(tx.Extensions, codec.Extension{Type: "02", Text: fmt.Sprintf("ZUSATZ %d", e)})
	}
	return tx
}

func testFile(t testing.TB, dir codec.Direction, name string, n int) *LogicalFile {
	t.Helper()
	f := NewLogicalFile(testHeader(t, dir, name))
	for i := 0; i < n; i++ {
		require.NoError(t, f.Add(testTransaction(i)))
	}
	f.Seal()
	return f
}

// encodeStream writes the given logical files back to back.
func encodeStream(t testing.TB, files ...*LogicalFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, f := range files {
		require.NoError(t, w.Write(f))
	}
	require.NoError(t, w.Flush())
	return buf.Bytes()
}
