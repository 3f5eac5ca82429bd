package template

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/noid/internal/encoding"
	noiderrors "github.com/standardbeagle/noid/internal/errors"
)

func TestValidateMask_Valid(t *testing.T) {
	valid := []string{
		"zek", "ze", "zdk", "zd", "zededededdeeddk", "zededededdeedd",
		"rek", "re", "rdk", "rd", "rededededdeeddk", "rededededdeedd",
		"sek", "se", "sdk", "sd", "sededededdeeddk", "sededededdeedd",
		"ek", "e", "dk", "d", "ededededdeeddk", "ededededdeedd",
	}
	for _, mask := range valid {
		t.Run(mask, func(t *testing.T) {
			assert.True(t, ValidateMask(mask))
		})
	}
}

func TestValidateMask_Invalid(t *testing.T) {
	invalid := []string{
		"a", "aa", "zeeedddl", "zeeedtddl", "zeeedtdd", "adddeeew",
		"", "k", "z", "r", "s", "zk", "rk", "sk", "kd", "dz", "ddkd", "zzd", "dkk", "DEK",
	}
	for _, mask := range invalid {
		t.Run(mask, func(t *testing.T) {
			assert.False(t, ValidateMask(mask))
		})
	}
}

func TestParseMask_ReportsRule(t *testing.T) {
	tests := []struct {
		mask     string
		position int
		rule     string
	}{
		{"", -1, ruleEmpty},
		{"adddeeew", 0, ruleFirst},
		{"zeeedddl", 7, ruleLast},
		{"zeeedtdd", 5, ruleMiddle},
		{"zk", -1, ruleDigits},
	}

	for _, tc := range tests {
		t.Run(tc.mask, func(t *testing.T) {
			_, err := ParseMask(tc.mask)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMask)

			var maskErr *noiderrors.MaskError
			require.True(t, errors.As(err, &maskErr))
			assert.Equal(t, tc.position, maskErr.Position)
			assert.Equal(t, tc.rule, maskErr.Rule)
		})
	}
}

func TestParseMask_Fields(t *testing.T) {
	m, err := ParseMask("zedek")
	require.NoError(t, err)
	assert.Equal(t, "zedek", m.String())
	assert.Equal(t, byte('z'), m.Generator())
	assert.True(t, m.Expands())
	assert.True(t, m.HasCheckDigit())
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, []int{58, 10, 58}, m.Radices().Positions)
	assert.Equal(t, 58, m.Radices().Expand)

	m, err = ParseMask("dd")
	require.NoError(t, err)
	assert.Equal(t, byte(0), m.Generator())
	assert.False(t, m.Expands())
	assert.False(t, m.HasCheckDigit())
	assert.Equal(t, 0, m.Radices().Expand)
}

func TestMask_RadicesIsACopy(t *testing.T) {
	m, err := ParseMask("de")
	require.NoError(t, err)
	r := m.Radices()
	r.Positions[0] = 99
	assert.Equal(t, []int{10, 58}, m.Radices().Positions)
}

func TestCapacity(t *testing.T) {
	x := int64(encoding.ExtendedBase)
	d := int64(encoding.DecimalBase)

	tests := []struct {
		mask     string
		expected int64
	}{
		{"zedek", x * x * d},
		{"zddddk", d * d * d * d},
		{"zeeeek", x * x * x * x},
		{"seee", x * x * x},
		{"rddee", d * d * x * x},
		{"zk", 1},
		{"", 1},
	}

	for _, tc := range tests {
		t.Run(tc.mask, func(t *testing.T) {
			assert.Equal(t, big.NewInt(tc.expected), Capacity(tc.mask))
		})
	}
}

func TestCapacity_Multiplicative(t *testing.T) {
	product := new(big.Int).Mul(Capacity("d"), Capacity("e"))
	assert.Equal(t, product, Capacity("de"))
}

func TestCapacity_MatchesParsedMask(t *testing.T) {
	for _, mask := range []string{"zeeddk", "rededededdeeddk", "e"} {
		m, err := ParseMask(mask)
		require.NoError(t, err)
		assert.Equal(t, 0, Capacity(mask).Cmp(m.Capacity()), mask)
	}
}

func TestCapacity_BeyondUint64(t *testing.T) {
	c := Capacity("z" + strings.Repeat("e", 12) + "k")
	assert.False(t, c.IsUint64())
}
