package template

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/encoding"
)

// Encode renders n as the body described by mask. A negative n picks an index
// uniformly at random from rnd (crypto/rand when nil) across the mask's
// capacity, ignoring any leading generator.
//
// Encode works on the raw mask string and does not validate it: characters
// other than d and e are skipped. With a leading z the namespace expands using
// the radix of the character right after it; if that character is not a
// digit type the mask is corrupt and ErrCorruptMask is returned.
func Encode(mask string, n *big.Int, rnd io.Reader) (string, error) {
	if n.Sign() < 0 {
		if mask != "" && IsGenerator(mask[0]) {
			mask = mask[1:]
		}
		drawn, err := Draw(Capacity(mask), rnd)
		if err != nil {
			return "", err
		}
		n = drawn
	}

	var radices encoding.Radices
	for i := 0; i < len(mask); i++ {
		if r := RadixOf(mask[i]); r > 0 {
			radices.Positions = append(radices.Positions, r)
		}
	}

	if len(mask) > 0 && mask[0] == Expanding {
		var next byte
		if len(mask) > 1 {
			next = mask[1]
		}
		radices.Expand = RadixOf(next)
		if radices.Expand == 0 {
			logger := debug.For(debug.ComponentMint)
			logger.Warn().
				Str("mask", mask).
				Msgf("template mask is corrupt; cannot process character: %q", next)
			return "", fmt.Errorf("%w: cannot expand on %q", ErrCorruptMask, next)
		}
	}

	return radices.Encode(n)
}

// Draw returns a uniformly random integer in [0, capacity).
func Draw(capacity *big.Int, rnd io.Reader) (*big.Int, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	n, err := rand.Int(rnd, capacity)
	if err != nil {
		return nil, fmt.Errorf("drawing random index: %w", err)
	}
	return n, nil
}

// Encode renders n for a parsed mask. See the package-level Encode for the
// handling of negative n.
func (m *Mask) Encode(n *big.Int, rnd io.Reader) (string, error) {
	if n.Sign() < 0 {
		drawn, err := Draw(m.Capacity(), rnd)
		if err != nil {
			return "", err
		}
		n = drawn
	}
	return m.radices.Encode(n)
}

// Decode recovers the index encoded in body. body must not carry the check
// digit. In an expanding mask, extra leading symbols use the expansion radix.
func (m *Mask) Decode(body string) (*big.Int, error) {
	return m.radices.Decode(body)
}

// Conforms reports whether body could have been produced by the mask: the
// right number of symbols, each valid for its position.
func (m *Mask) Conforms(body string) bool {
	_, err := m.radices.Decode(body)
	return err == nil
}
