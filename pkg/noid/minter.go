// Package noid mints and checks nice opaque identifiers.
//
// An identifier is scheme + naa + "/" + prefix + body [+ check digit], where
// body is an index rendered through the mask of a "prefix.mask" template.
// The package-level Mint, Validate and CheckDigit keep the empty-string
// failure convention of the classic noid tools; the Minter type reports
// failures as errors.
package noid

import (
	"errors"
	"io"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/standardbeagle/noid/internal/debug"
	"github.com/standardbeagle/noid/internal/encoding"
	noiderrors "github.com/standardbeagle/noid/internal/errors"
	"github.com/standardbeagle/noid/internal/template"
)

// Defaults used by the command line and configuration
const (
	DefaultTemplate = "zeeddk"
	DefaultScheme   = "ark:/"
)

var (
	ErrForeignIdentifier = errors.New("identifier was not minted by this template")
	ErrCheckDigit        = errors.New("check digit mismatch")
)

// Minter mints identifiers for one template. It is immutable once built and
// safe for concurrent use.
type Minter struct {
	tmpl   *template.Template
	scheme string
	naa    string
	rnd    io.Reader
	logger zerolog.Logger
}

// Option configures a Minter.
type Option func(*Minter)

// WithScheme sets the scheme prepended to every identifier, e.g. "ark:/".
func WithScheme(scheme string) Option {
	return func(m *Minter) { m.scheme = scheme }
}

// WithNAA sets the name assigning authority. A non-empty naa is always
// followed by '/', even when it already ends in one.
func WithNAA(naa string) Option {
	return func(m *Minter) { m.naa = authority(naa) }
}

// WithRandom sets the entropy source for random minting. Defaults to crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(m *Minter) { m.rnd = r }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Minter) { m.logger = l }
}

// NewMinter parses tmpl and applies opts. An invalid mask is reported as a
// *errors.MaskError wrapping template.ErrInvalidMask.
func NewMinter(tmpl string, opts ...Option) (*Minter, error) {
	t, err := template.Parse(tmpl)
	if err != nil {
		return nil, err
	}

	m := &Minter{
		tmpl:   t,
		logger: debug.For(debug.ComponentMint),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func authority(naa string) string {
	if naa == "" {
		return ""
	}
	return naa + "/"
}

// Template returns the parsed template.
func (m *Minter) Template() *template.Template { return m.tmpl }

// Capacity returns the number of indexes the template holds before it
// expands or overflows.
func (m *Minter) Capacity() *big.Int { return m.tmpl.Mask.Capacity() }

// Prefix returns everything that precedes the body: scheme, naa and template prefix.
func (m *Minter) Prefix() string {
	return m.scheme + m.naa + m.tmpl.Prefix
}

// Mint returns the identifier for index n. A negative n mints a random
// identifier drawn from the template's capacity.
func (m *Minter) Mint(n int64) (string, error) {
	return m.MintBig(big.NewInt(n))
}

// MintBig is Mint for indexes beyond the int64 range.
func (m *Minter) MintBig(n *big.Int) (string, error) {
	m.logger.Debug().
		Str("template", m.tmpl.String()).
		Str("n", n.String()).
		Str("scheme", m.scheme).
		Str("naa", m.naa).
		Msg("generating noid")

	body, err := m.tmpl.Mask.Encode(n, m.rnd)
	if err != nil {
		return "", noiderrors.NewMintError(m.tmpl.String(), n.String(), err)
	}

	var sb strings.Builder
	sb.Grow(len(m.scheme) + len(m.naa) + len(m.tmpl.Prefix) + len(body) + 1)
	sb.WriteString(m.Prefix())
	sb.WriteString(body)
	if m.tmpl.Mask.HasCheckDigit() {
		sb.WriteByte(encoding.CheckDigit(body))
	}
	return sb.String(), nil
}

// Parse recovers the index an identifier was minted from. The identifier must
// carry this minter's scheme, naa and prefix, and a valid check digit when the
// template asks for one.
func (m *Minter) Parse(id string) (*big.Int, error) {
	body, ok := strings.CutPrefix(id, m.Prefix())
	if !ok || body == "" {
		return nil, noiderrors.NewValidationError(id, ErrForeignIdentifier)
	}

	if m.tmpl.Mask.HasCheckDigit() {
		if !encoding.ValidCheckDigit(body) {
			return nil, noiderrors.NewValidationError(id, ErrCheckDigit)
		}
		body = body[:len(body)-1]
	}

	n, err := m.tmpl.Mask.Decode(body)
	if err != nil {
		return nil, noiderrors.NewValidationError(id, err)
	}
	return n, nil
}
