// Package encoding provides the low-level symbol tables and radix arithmetic
// behind noid identifiers. It has no knowledge of masks or templates.
//
// Extended alphabet: 0-9 (0-9), a-z without l (10-34), A-Z without I, O, Q (35-57).
// Letters that are easily confused with digits or with each other are left out.
package encoding

// Alphabet constants
const (
	Digits         = "0123456789"
	ExtendedDigits = Digits + "abcdefghijkmnopqrstuvwxyz" + "ABCDEFGHJKLMNPRSTUVWXYZ"

	DecimalBase  = len(Digits)         // 10
	ExtendedBase = len(ExtendedDigits) // 58
)

// extendedIndex maps a byte to its position in ExtendedDigits, or -1.
var extendedIndex = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(ExtendedDigits); i++ {
		table[ExtendedDigits[i]] = int8(i)
	}
	return table
}()

// IndexOf returns the value of c in the extended alphabet.
// Returns -1 when c is not part of the alphabet.
func IndexOf(c rune) int {
	if c < 0 || c > 0xFF {
		return -1
	}
	return int(extendedIndex[c])
}

// IsExtendedDigit reports whether c belongs to the extended alphabet.
func IsExtendedDigit(c rune) bool {
	return IndexOf(c) >= 0
}

// ValueToChar converts a value (0-57) to its extended alphabet symbol.
// Panics if the value is out of range (internal error, callers reduce modulo the base first).
func ValueToChar(val int) byte {
	if val < 0 || val >= ExtendedBase {
		panic("encoding: invalid extended digit value")
	}
	return ExtendedDigits[val]
}
