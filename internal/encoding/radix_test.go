package encoding

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	decimal  = Radices{Positions: []int{DecimalBase}}
	extended = Radices{Positions: []int{ExtendedBase}}
)

func TestRadices_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		radices  Radices
		expected int64
	}{
		{"empty", Radices{}, 1},
		{"single decimal", decimal, 10},
		{"single extended", extended, 58},
		{"mixed", Radices{Positions: []int{58, 10, 58}}, 58 * 10 * 58},
		{"expand ignored", Radices{Positions: []int{10, 10}, Expand: 10}, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, big.NewInt(tc.expected), tc.radices.Capacity())
		})
	}
}

func TestRadices_EncodeSingleDigits(t *testing.T) {
	for i := 0; i < DecimalBase; i++ {
		got, err := decimal.Encode(big.NewInt(int64(i)))
		require.NoError(t, err)
		assert.Equal(t, string(Digits[i]), got)
	}
	for i := 0; i < ExtendedBase; i++ {
		got, err := extended.Encode(big.NewInt(int64(i)))
		require.NoError(t, err)
		assert.Equal(t, string(ExtendedDigits[i]), got)
	}
}

func TestRadices_EncodeMultiDigit(t *testing.T) {
	ee := Radices{Positions: []int{ExtendedBase, ExtendedBase}}
	de := Radices{Positions: []int{DecimalBase, ExtendedBase}}

	tests := []struct {
		name     string
		radices  Radices
		value    int64
		expected string
	}{
		{"ee zero pads", ee, 0, "00"},
		{"ee 100", ee, 100, "1H"},  // 1*58 + 42
		{"ee max", ee, 58*58 - 1, "ZZ"},
		{"de 58", de, 58, "10"},
		{"de 59", de, 59, "11"},
		{"de max", de, 10*58 - 1, "9Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.radices.Encode(big.NewInt(tc.value))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRadices_EncodeOverflow(t *testing.T) {
	_, err := decimal.Encode(big.NewInt(10))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = extended.Encode(big.NewInt(58))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestRadices_EncodeExpands(t *testing.T) {
	d := Radices{Positions: []int{DecimalBase}, Expand: DecimalBase}
	got, err := d.Encode(big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	got, err = d.Encode(big.NewInt(12345))
	require.NoError(t, err)
	assert.Equal(t, "12345", got)

	e := Radices{Positions: []int{ExtendedBase}, Expand: ExtendedBase}
	got, err = e.Encode(big.NewInt(58))
	require.NoError(t, err)
	assert.Equal(t, "10", got)
}

func TestRadices_EncodeNegative(t *testing.T) {
	_, err := decimal.Encode(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegative)
}

func TestRadices_EncodeDoesNotMutateInput(t *testing.T) {
	v := big.NewInt(12345)
	_, err := Radices{Positions: []int{10, 10, 10, 10, 10}}.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v.Int64())
}

func TestRadices_DecodeRoundTrip(t *testing.T) {
	systems := []Radices{
		{Positions: []int{10, 58, 58}},
		{Positions: []int{58, 10, 58, 10}},
		{Positions: []int{10}, Expand: 10},
		{Positions: []int{58, 10}, Expand: 58},
	}

	for _, r := range systems {
		for _, v := range []int64{0, 1, 9, 57, 58, 579, 5799, 33639} {
			encoded, err := r.Encode(big.NewInt(v))
			if err != nil {
				assert.ErrorIs(t, err, ErrOverflow)
				continue
			}
			decoded, err := r.Decode(encoded)
			require.NoError(t, err, "decoding %q", encoded)
			assert.Equal(t, v, decoded.Int64(), "round trip through %q", encoded)
		}
	}
}

func TestRadices_DecodeErrors(t *testing.T) {
	dd := Radices{Positions: []int{10, 10}}

	_, err := dd.Decode("")
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = dd.Decode("1")
	assert.ErrorIs(t, err, ErrLength)

	_, err = dd.Decode("123")
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = dd.Decode("1a")
	assert.ErrorIs(t, err, ErrInvalidChar)

	_, err = dd.Decode("1-")
	assert.ErrorIs(t, err, ErrInvalidChar)
}

func TestRadices_LargeValues(t *testing.T) {
	positions := make([]int, 20)
	for i := range positions {
		positions[i] = ExtendedBase
	}
	r := Radices{Positions: positions}

	max := new(big.Int).Sub(r.Capacity(), big.NewInt(1))
	encoded, err := r.Encode(max)
	require.NoError(t, err)
	assert.Equal(t, "ZZZZZZZZZZZZZZZZZZZZ", encoded)

	decoded, err := r.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 0, max.Cmp(decoded))
}
