//go:build fuzz
// +build fuzz

package codec

import (
	"reflect"
	"testing"
)

// FuzzDecodeHeader checks that any header that decodes re-encodes into a
// record that decodes to the same value.
func FuzzDecodeHeader(f *testing.F) {
	f.Add([]byte(defaultHeaderFields().line()), 0)
	f.Add([]byte(defaultHeaderFields().line()), 7)
	f.Add([]byte("0128A"), 0)

	f.Fuzz(func(t *testing.T, raw []byte, tol int) {
		tolerance, err := ToleranceFromInt(tol & 7)
		if err != nil {
			t.Skip()
		}
		opts := Options{Tolerance: tolerance}

		h, err := DecodeHeader(raw, opts)
		if err != nil {
			if KindOf(err) == 0 {
				t.Fatalf("untyped error: %v", err)
			}
			return
		}

		encoded, err := h.Encode(opts)
		if err != nil {
			t.Fatalf("Encode failed for decoded header %v: %v", h, err)
		}
		if len(encoded) != FixedRecordSize {
			t.Fatalf("encoded header has %d bytes", len(encoded))
		}

		again, err := DecodeHeader(encoded, opts)
		if err != nil {
			t.Fatalf("Decode of re-encoded header failed: %v", err)
		}
		if !reflect.DeepEqual(h, again) {
			t.Errorf("header mismatch: got %v, want %v", again, h)
		}
	})
}

// FuzzDecodeTrailer checks the same property for trailers.
func FuzzDecodeTrailer(f *testing.F) {
	f.Add([]byte(trailerLine("0000001", "00000000532013000", "00000000037040044", "0000000012550")))
	f.Add([]byte("0128E"))

	f.Fuzz(func(t *testing.T, raw []byte) {
		tr, err := DecodeTrailer(raw, Options{})
		if err != nil {
			if KindOf(err) == 0 {
				t.Fatalf("untyped error: %v", err)
			}
			return
		}

		encoded, err := tr.Encode(Options{})
		if err != nil {
			t.Fatalf("Encode failed for decoded trailer %v: %v", tr, err)
		}
		again, err := DecodeTrailer(encoded, Options{})
		if err != nil {
			t.Fatalf("Decode of re-encoded trailer failed: %v", err)
		}
		if !tr.Equal(again) {
			t.Errorf("trailer mismatch: got %v, want %v", again, tr)
		}
	})
}

// FuzzDecodeTransaction checks the same property for transactions.
func FuzzDecodeTransaction(f *testing.F) {
	for _, n := range []int{0, 2, 3, 15} {
		raw, err := sampleTransaction(n).Encode(Options{})
		if err != nil {
			f.Fatal(err)
		}
		f.Add(raw)
	}

	f.Fuzz(func(t *testing.T, raw []byte) {
		tx, err := DecodeTransaction(raw, Options{})
		if err != nil {
			if KindOf(err) == 0 {
				t.Fatalf("untyped error: %v", err)
			}
			return
		}

		encoded, err := tx.Encode(Options{})
		if err != nil {
			t.Fatalf("Encode failed for decoded transaction %v: %v", tx, err)
		}
		again, err := DecodeTransaction(encoded, Options{})
		if err != nil {
			t.Fatalf("Decode of re-encoded transaction failed: %v", err)
		}
		if !reflect.DeepEqual(tx, again) {
			t.Errorf("transaction mismatch: got %v, want %v", again, tx)
		}
	})
}
