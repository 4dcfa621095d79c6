package codec

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset is used when Options.Charset is nil.
var DefaultCharset encoding.Encoding = charmap.ISO8859_1

// permitted is the DTAUS alphabet.
const permitted = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 .,&-/+*$%ÄÖÜß"

// legacyRunes maps DOS code page umlauts, as they appear after an
// ISO-8859-1 decode, onto the DTAUS alphabet.
var legacyRunes = map[rune]rune{
	0x8E: 'Ä',
	0x99: 'Ö',
	0x9A: 'Ü',
	0x84: 'Ä',
	0x94: 'Ö',
	0x81: 'Ü',
	0xE1: 'ß',
}

// LookupCharset resolves an IANA charset name such as "ISO-8859-1" or
// "IBM850". An empty name selects DefaultCharset.
func LookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCharset, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// CharsetName returns the IANA name of enc, or "unknown".
func CharsetName(enc encoding.Encoding) string {
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return "unknown"
	}
	return name
}

func isPermitted(r rune) bool {
	return strings.ContainsRune(permitted, r)
}

func decodeRunes(raw []byte, opts Options, rt RecordType) ([]rune, error) {
	b, err := opts.charset().NewDecoder().Bytes(raw)
	if err != nil {
		return nil, &Error{Kind: KindCharacterSetInvalid, Record: rt, Err: err}
	}
	return []rune(string(b)), nil
}

func encodeRunes(runes []rune, opts Options, rt RecordType) ([]byte, error) {
	b, err := opts.charset().NewEncoder().Bytes([]byte(string(runes)))
	if err != nil {
		return nil, &Error{Kind: KindCharacterSetInvalid, Record: rt, Err: err}
	}
	return b, nil
}

// translate applies the character translations enabled by tol in place.
func translate(runes []rune, tol Tolerance) {
	if !tol.Has(TranslateLegacyCharacters) {
		return
	}
	nul := tol.Has(NulToSpace)
	for i, r := range runes {
		if nul && r == 0 {
			runes[i] = ' '
			continue
		}
		if t, ok := legacyRunes[r]; ok {
			runes[i] = t
		}
	}
}

// validate rejects the first rune outside the DTAUS alphabet.
func validate(runes []rune, rt RecordType, field string) error {
	for _, r := range runes {
		if !isPermitted(r) {
			return newError(KindCharacterSetInvalid, rt, field, string(r))
		}
	}
	return nil
}

// sanitize applies the legacy translations of tol and upper-cases s. The
// result still has to be validated.
func sanitize(s string, tol Tolerance) string {
	runes := []rune(s)
	translate(runes, tol)
	for i, r := range runes {
		if r != 'ß' {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}
