// Package template parses noid templates and drives the mixed-radix codec
// from their masks.
//
// A template is "prefix.mask" or a bare mask. A mask is
//
//	[r|s|z] (d|e)+ [k]
//
// where d is a decimal position, e an extended position, a leading z lets the
// namespace grow on its first position, r and s are ordering hints with no
// effect here, and a trailing k asks for a check digit.
package template

import (
	"errors"
	"math/big"

	"github.com/standardbeagle/noid/internal/encoding"
	noiderrors "github.com/standardbeagle/noid/internal/errors"
)

// Mask characters
const (
	Random     = 'r'
	Sequential = 's'
	Expanding  = 'z'
	Decimal    = 'd'
	Extended   = 'e'
	CheckChar  = 'k'
)

var (
	ErrInvalidMask = errors.New("invalid mask")
	ErrCorruptMask = errors.New("template mask is corrupt")
)

// Mask rules, in the order they are checked
const (
	ruleEmpty  = "mask is empty"
	ruleFirst  = "first character must be one of 'r', 's', 'z', 'd', 'e'"
	ruleLast   = "last character must be 'k', 'd' or 'e'"
	ruleMiddle = "characters between the first and last must be 'd' or 'e'"
	ruleDigits = "mask needs at least one 'd' or 'e'"
)

// IsGenerator reports whether c is a generator marker (r, s, z).
func IsGenerator(c byte) bool {
	return c == Random || c == Sequential || c == Expanding
}

// IsDigitType reports whether c is a digit-type mask character (d, e).
func IsDigitType(c byte) bool {
	return c == Decimal || c == Extended
}

// RadixOf returns the radix of a digit-type mask character, or 0.
func RadixOf(c byte) int {
	switch c {
	case Decimal:
		return encoding.DecimalBase
	case Extended:
		return encoding.ExtendedBase
	default:
		return 0
	}
}

// Mask is a validated mask.
type Mask struct {
	raw       string
	generator byte
	radices   encoding.Radices
	check     bool
}

// ParseMask validates s and returns its parsed form. Failures are
// *errors.MaskError values wrapping ErrInvalidMask.
func ParseMask(s string) (*Mask, error) {
	if s == "" {
		return nil, noiderrors.NewMaskError(s, -1, ruleEmpty, ErrInvalidMask)
	}

	first, last := 0, len(s)-1
	if !IsGenerator(s[first]) && !IsDigitType(s[first]) {
		return nil, noiderrors.NewMaskError(s, first, ruleFirst, ErrInvalidMask)
	}
	if s[last] != CheckChar && !IsDigitType(s[last]) {
		return nil, noiderrors.NewMaskError(s, last, ruleLast, ErrInvalidMask)
	}
	for i := first + 1; i < last; i++ {
		if !IsDigitType(s[i]) {
			return nil, noiderrors.NewMaskError(s, i, ruleMiddle, ErrInvalidMask)
		}
	}

	m := &Mask{raw: s, check: len(s) > 1 && s[last] == CheckChar}
	body := s
	if IsGenerator(s[first]) {
		m.generator = s[first]
		body = body[1:]
	}
	if m.check {
		body = body[:len(body)-1]
	}
	// "zk" and friends pass the positional rules with nothing left to encode
	if body == "" {
		return nil, noiderrors.NewMaskError(s, -1, ruleDigits, ErrInvalidMask)
	}

	m.radices.Positions = make([]int, len(body))
	for i := 0; i < len(body); i++ {
		m.radices.Positions[i] = RadixOf(body[i])
	}
	if m.generator == Expanding {
		m.radices.Expand = m.radices.Positions[0]
	}
	return m, nil
}

// ValidateMask reports whether s is a well-formed mask.
func ValidateMask(s string) bool {
	_, err := ParseMask(s)
	return err == nil
}

// String returns the mask as written.
func (m *Mask) String() string { return m.raw }

// Generator returns the leading generator marker, or 0 if there is none.
func (m *Mask) Generator() byte { return m.generator }

// Expands reports whether the namespace grows past its capacity.
func (m *Mask) Expands() bool { return m.generator == Expanding }

// HasCheckDigit reports whether identifiers end with a check digit.
func (m *Mask) HasCheckDigit() bool { return m.check }

// Width returns the number of digit-type positions.
func (m *Mask) Width() int { return len(m.radices.Positions) }

// Radices returns a copy of the mask's numeral system.
func (m *Mask) Radices() encoding.Radices {
	return encoding.Radices{
		Positions: append([]int(nil), m.radices.Positions...),
		Expand:    m.radices.Expand,
	}
}

// Capacity returns the number of indexes the mask holds without expanding.
func (m *Mask) Capacity() *big.Int {
	return m.radices.Capacity()
}

// Capacity returns the product of the radices of every digit-type character
// in mask. Any other character is ignored, so an unvalidated mask is fine and
// a mask without digit-type characters has capacity 1.
func Capacity(mask string) *big.Int {
	total := big.NewInt(1)
	for i := 0; i < len(mask); i++ {
		if r := RadixOf(mask[i]); r > 0 {
			total.Mul(total, big.NewInt(int64(r)))
		}
	}
	return total
}
