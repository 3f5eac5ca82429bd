package noid

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/noid/internal/encoding"
	noiderrors "github.com/standardbeagle/noid/internal/errors"
	"github.com/standardbeagle/noid/internal/template"
)

func TestNewMinter_InvalidTemplate(t *testing.T) {
	m, err := NewMinter("abcdefg")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, template.ErrInvalidMask)

	var maskErr *noiderrors.MaskError
	assert.True(t, errors.As(err, &maskErr))
}

func TestMinter_Accessors(t *testing.T) {
	m, err := NewMinter("bl.zeedk", WithScheme("ark:/"), WithNAA("13030"))
	require.NoError(t, err)

	assert.Equal(t, "bl.zeedk", m.Template().String())
	assert.Equal(t, "ark:/13030/bl.", m.Prefix())
	assert.Equal(t, big.NewInt(58*58*10), m.Capacity())
}

func TestMinter_NAAAlwaysGetsSlash(t *testing.T) {
	m, err := NewMinter("zek", WithScheme("ark:/"), WithNAA("123/"))
	require.NoError(t, err)
	assert.Equal(t, "ark:/123//", m.Prefix())

	id, err := m.Mint(5)
	require.NoError(t, err)
	assert.Equal(t, "ark:/123//55", id)

	n, err := m.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n.Int64())

	empty, err := NewMinter("zek", WithNAA(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Prefix())
}

func TestMinter_MintMatchesPackageMint(t *testing.T) {
	m, err := NewMinter("x.zeeddk", WithScheme("ark:/"), WithNAA("99999"))
	require.NoError(t, err)

	for _, n := range []int64{0, 1, 999, 336399, 336400, 1 << 30} {
		got, err := m.Mint(n)
		require.NoError(t, err)
		assert.Equal(t, Mint("x.zeeddk", n, "ark:/", "99999"), got)
	}
}

func TestMinter_MintOverflow(t *testing.T) {
	m, err := NewMinter("d")
	require.NoError(t, err)

	id, err := m.Mint(10)
	assert.Empty(t, id)
	assert.ErrorIs(t, err, encoding.ErrOverflow)

	var mintErr *noiderrors.MintError
	require.True(t, errors.As(err, &mintErr))
	assert.Equal(t, "d", mintErr.Template)
	assert.Equal(t, "10", mintErr.Index)
	assert.Contains(t, err.Error(), "(counter = 10)")
}

func TestMinter_MintBig(t *testing.T) {
	m, err := NewMinter("zek")
	require.NoError(t, err)

	n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	id, err := m.MintBig(n)
	require.NoError(t, err)
	assert.True(t, Validate(id))

	back, err := m.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cmp(back))
}

func TestMinter_RandomIsReproducibleWithFixedEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a, 0x01, 0xc3, 0x7e}, 32)

	a, err := NewMinter("reedddk", WithRandom(bytes.NewReader(seed)))
	require.NoError(t, err)
	b, err := NewMinter("reedddk", WithRandom(bytes.NewReader(seed)))
	require.NoError(t, err)

	idA, err := a.Mint(-1)
	require.NoError(t, err)
	idB, err := b.Mint(-1)
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
}

func TestMinter_RandomSourceExhausted(t *testing.T) {
	m, err := NewMinter("reedddk", WithRandom(bytes.NewReader(nil)))
	require.NoError(t, err)

	_, err = m.Mint(-1)
	assert.Error(t, err)
}

func TestMinter_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	m, err := NewMinter("eek", WithLogger(logger))
	require.NoError(t, err)

	_, err = m.Mint(100)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "generating noid")
	assert.Contains(t, buf.String(), `"template":"eek"`)
}

func TestMinter_Parse(t *testing.T) {
	m, err := NewMinter("bl.zeeddk", WithScheme("ark:/"), WithNAA("13030"))
	require.NoError(t, err)

	for _, n := range []int64{0, 42, 336399, 336400, 9999999} {
		id, err := m.Mint(n)
		require.NoError(t, err)

		back, err := m.Parse(id)
		require.NoError(t, err, id)
		assert.Equal(t, n, back.Int64(), id)
	}
}

func TestMinter_ParseWithoutCheckDigit(t *testing.T) {
	m, err := NewMinter("sdde")
	require.NoError(t, err)

	back, err := m.Parse("07z")
	require.NoError(t, err)
	assert.Equal(t, int64(7*58+34), back.Int64())
}

func TestMinter_ParseErrors(t *testing.T) {
	m, err := NewMinter("bl.zeeddk", WithScheme("ark:/"), WithNAA("13030"))
	require.NoError(t, err)

	good, err := m.Mint(1234)
	require.NoError(t, err)
	wrong := "x"
	if good[len(good)-1] == 'x' {
		wrong = "y"
	}

	tests := []struct {
		name string
		id   string
		want error
	}{
		{"other naa", "ark:/99999/bl.00bc13", ErrForeignIdentifier},
		{"prefix only", "ark:/13030/bl.", ErrForeignIdentifier},
		{"empty", "", ErrForeignIdentifier},
		{"bad check digit", good[:len(good)-1] + wrong, ErrCheckDigit},
		{"letter in decimal position", "ark:/13030/bl.00ab" + CheckDigit("00ab"), encoding.ErrInvalidChar},
		{"too short", "ark:/13030/bl.0" + CheckDigit("0"), encoding.ErrLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Parse(tc.id)
			assert.ErrorIs(t, err, tc.want)

			var valErr *noiderrors.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestMinter_MintRange(t *testing.T) {
	m, err := NewMinter("zeek", WithScheme("ark:/"))
	require.NoError(t, err)

	ids, err := m.MintRange(context.Background(), 3300, 200)
	require.NoError(t, err)
	require.Len(t, ids, 200)

	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		want, err := m.Mint(3300 + int64(i))
		require.NoError(t, err)
		assert.Equal(t, want, id)
		assert.False(t, seen[id], "duplicate %q", id)
		seen[id] = true
	}
}

func TestMinter_MintRangeRandom(t *testing.T) {
	m, err := NewMinter("reeddk")
	require.NoError(t, err)

	ids, err := m.MintRange(context.Background(), -1, 50)
	require.NoError(t, err)
	for _, id := range ids {
		_, err := m.Parse(id)
		assert.NoError(t, err, id)
	}
}

func TestMinter_MintRangeOverflow(t *testing.T) {
	m, err := NewMinter("dd")
	require.NoError(t, err)

	ids, err := m.MintRange(context.Background(), 90, 20)
	assert.Nil(t, ids)
	assert.ErrorIs(t, err, encoding.ErrOverflow)
}

func TestMinter_MintRangeCancelled(t *testing.T) {
	m, err := NewMinter("zeeddk")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.MintRange(ctx, 0, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinter_MintRangeEmptyAndNegative(t *testing.T) {
	m, err := NewMinter("zeeddk")
	require.NoError(t, err)

	ids, err := m.MintRange(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = m.MintRange(context.Background(), 0, -1)
	assert.Error(t, err)
}
