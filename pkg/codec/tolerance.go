package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Tolerance is a set of legacy deviations a decoder accepts. Flags combine
// with bitwise OR; the zero value is strict conformance.
type Tolerance int

const (
	StrictConformant          Tolerance = 0
	TranslateLegacyCharacters Tolerance = 1
	NulToSpace                Tolerance = 2
	LenientCurrencyFlag       Tolerance = 4

	allTolerances = TranslateLegacyCharacters | NulToSpace | LenientCurrencyFlag
)

// Normalize returns t with implied flags added. NulToSpace has always
// implied TranslateLegacyCharacters.
func (t Tolerance) Normalize() Tolerance {
	if t&NulToSpace != 0 {
		t |= TranslateLegacyCharacters
	}
	return t
}

// Has reports whether flag is enabled, taking implied flags into account.
func (t Tolerance) Has(flag Tolerance) bool {
	return t.Normalize()&flag == flag
}

func (t Tolerance) String() string {
	if t == StrictConformant {
		return "strict"
	}
	var parts []string
	if t&TranslateLegacyCharacters != 0 {
		parts = append(parts, "translate-legacy")
	}
	if t&NulToSpace != 0 {
		parts = append(parts, "nul-to-space")
	}
	if t&LenientCurrencyFlag != 0 {
		parts = append(parts, "lenient-currency")
	}
	if rest := t &^ allTolerances; rest != 0 {
		parts = append(parts, strconv.Itoa(int(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseTolerance parses the decimal flag sum used on the command line.
func ParseTolerance(s string) (Tolerance, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid tolerance %q: %w", s, err)
	}
	return ToleranceFromInt(n)
}

// ToleranceFromInt validates n as a combination of known flags.
func ToleranceFromInt(n int) (Tolerance, error) {
	t := Tolerance(n)
	if n < 0 || t&^allTolerances != 0 {
		return 0, fmt.Errorf("invalid tolerance %d: unknown flags", n)
	}
	return t, nil
}
