package encoding

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
)

// Common errors for radix operations
var (
	ErrEmptyString = errors.New("empty encoded string")
	ErrInvalidChar = errors.New("invalid character in encoded string")
	ErrOverflow    = errors.New("value does not fit the namespace")
	ErrNegative    = errors.New("negative value")
	ErrLength      = errors.New("encoded string shorter than its radix list")
)

// Radices describes a mixed-radix numeral system, most significant position first.
// Expand, when non-zero, is the radix used for extra leading positions once the
// fixed positions are exhausted; zero means the system is closed.
type Radices struct {
	Positions []int
	Expand    int
}

// Capacity returns the number of values representable by the fixed positions.
func (r Radices) Capacity() *big.Int {
	total := big.NewInt(1)
	for _, radix := range r.Positions {
		total.Mul(total, big.NewInt(int64(radix)))
	}
	return total
}

// Encode renders value least significant position first and returns the
// symbols most significant first. Fails with ErrOverflow when a closed system
// cannot hold the value.
func (r Radices) Encode(value *big.Int) (string, error) {
	if value.Sign() < 0 {
		return "", ErrNegative
	}

	n := new(big.Int).Set(value)
	rem := new(big.Int)
	buf := make([]byte, 0, len(r.Positions)+4)

	for i := len(r.Positions) - 1; i >= 0; i-- {
		n.QuoRem(n, big.NewInt(int64(r.Positions[i])), rem)
		buf = append(buf, ExtendedDigits[rem.Int64()])
	}

	if r.Expand > 0 {
		div := big.NewInt(int64(r.Expand))
		for n.Sign() > 0 {
			n.QuoRem(n, div, rem)
			buf = append(buf, ExtendedDigits[rem.Int64()])
		}
	}

	if n.Sign() > 0 {
		return "", fmt.Errorf("%w: %s exceeds capacity %s", ErrOverflow, value, r.Capacity())
	}

	slices.Reverse(buf)
	return string(buf), nil
}

// Decode is the inverse of Encode. Leading symbols beyond the fixed positions
// are read in the expansion radix; a closed system requires an exact length.
func (r Radices) Decode(encoded string) (*big.Int, error) {
	if encoded == "" {
		return nil, ErrEmptyString
	}

	symbols := []rune(encoded)
	extra := len(symbols) - len(r.Positions)
	switch {
	case extra < 0:
		return nil, fmt.Errorf("%w: got %d symbols, need %d", ErrLength, len(symbols), len(r.Positions))
	case extra > 0 && r.Expand == 0:
		return nil, fmt.Errorf("%w: got %d symbols, namespace holds %d", ErrOverflow, len(symbols), len(r.Positions))
	}

	value := new(big.Int)
	for i, c := range symbols {
		radix := r.Expand
		if i >= extra {
			radix = r.Positions[i-extra]
		}
		digit := IndexOf(c)
		if digit < 0 || digit >= radix {
			return nil, fmt.Errorf("%w: %q at position %d (radix %d)", ErrInvalidChar, c, i, radix)
		}
		value.Mul(value, big.NewInt(int64(radix)))
		value.Add(value, big.NewInt(int64(digit)))
	}

	return value, nil
}
