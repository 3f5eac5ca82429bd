package encoding

import "strings"

// CheckDigit computes the weighted check symbol for s.
//
// A three-letter scheme such as "ark:" or "doi:" (a ':' at index 3) is dropped
// along with any slashes that follow it. Each remaining symbol contributes
// value*(position+1); symbols outside the extended alphabet count as 0.
func CheckDigit(s string) byte {
	s = stripScheme(s)

	sum := 0
	for i, c := range []rune(s) {
		v := IndexOf(c)
		if v < 0 {
			v = 0
		}
		sum += v * (i + 1)
	}
	return ExtendedDigits[sum%ExtendedBase]
}

// ValidCheckDigit reports whether the last symbol of s is the check digit of the rest.
// Identifiers minted without a check digit will generally fail.
func ValidCheckDigit(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	last := runes[len(runes)-1]
	return rune(CheckDigit(string(runes[:len(runes)-1]))) == last
}

func stripScheme(s string) string {
	if len(s) > 3 && s[3] == ':' {
		return strings.TrimLeft(s[4:], "/")
	}
	return s
}
