// Package codec decodes and encodes the records of DTAUS, the fixed-width
// batch payment format German banks exchange for bulk credit transfers and
// direct debits.
//
// # Record Format
//
// Every record starts with a four digit logical length code followed by a
// one letter type tag:
//
//	A  header,       length code 0128, 128 bytes
//	C  transaction,  length code 187 + 29*n for n extension blocks
//	E  trailer,      length code 0128, 128 bytes
//
// Transactions are stored in one of six physical sizes; PhysicalSize maps
// a length code to the number of bytes a reader must consume:
//
//	128        -> 128
//	187 - 245  -> 256
//	274 - 361  -> 384
//	390 - 477  -> 512
//	506 - 593  -> 640
//	>= 622     -> 728
//
// # Header Layout
//
//	[0:4]     length code "0128"
//	[4:5]     "A"
//	[5:7]     direction GK, LK, GB or LB
//	[7:15]    bank code
//	[15:23]   secondary bank code (bank-delivered files only)
//	[23:50]   originator name
//	[50:56]   creation date ddmmyy, kept as raw digits
//	[60:70]   account number
//	[70:80]   submitter reference
//	[95:103]  execution date ddmmyyyy, blank when unspecified
//	[127:128] currency flag "1"
//
// # Trailer Layout
//
//	[0:4]    length code "0128"
//	[4:5]    "E"
//	[10:17]  transaction count
//	[17:30]  legacy amount sum, always zero
//	[30:47]  sum of account numbers
//	[47:64]  sum of bank codes
//	[64:77]  sum of amounts in cents
//
// Sums are math/big integers; seventeen digit fields do not fit an int64
// reliably.
//
// # Tolerance
//
// Decoding is strict by default. Options.Tolerance enables accepting input
// from legacy producers:
//
//	TranslateLegacyCharacters  DOS umlauts are mapped onto Ä, Ö, Ü and ß
//	NulToSpace                 NUL bytes become spaces (implies the above)
//	LenientCurrencyFlag        a wrong currency flag is logged, not fatal
//
// # Error Handling
//
// All failures are *Error values carrying an ErrorKind and the record type
// they occurred in. Compare against the exported sentinels with errors.Is:
//
//	if errors.Is(err, codec.ErrCurrencyFlagInvalid) {
//	    ...
//	}
//
// # Thread Safety
//
// Decode and Encode functions keep no state and are safe for concurrent
// use. Record values are plain structs and must not be mutated while
// shared.
package codec
