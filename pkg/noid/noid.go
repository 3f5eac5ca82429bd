package noid

import (
	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/encoding"
)

// Mint returns the identifier for index n under template, or "" when the
// template is invalid or n does not fit. A negative n mints at random.
func Mint(template string, n int64, scheme, naa string) string {
	logger := debug.For(debug.ComponentMint)
	m, err := NewMinter(template, WithScheme(scheme), WithNAA(naa))
	if err != nil {
		logger.Debug().Err(err).Msg("rejecting template")
		return ""
	}
	id, err := m.Mint(n)
	if err != nil {
		logger.Debug().Err(err).Msg("mint failed")
		return ""
	}
	return id
}

// Validate reports whether the last character of identifier is the check
// digit of everything before it. A leading "xxx:" scheme is ignored.
func Validate(identifier string) bool {
	return encoding.ValidCheckDigit(identifier)
}

// CheckDigit returns the check digit for digits as a one-character string.
func CheckDigit(digits string) string {
	return string(encoding.CheckDigit(digits))
}
