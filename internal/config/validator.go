package config

import (
	"errors"

	noiderrors "github.com/standardbeagle/noid/internal/errors"
	"github.com/standardbeagle/noid/internal/template"
	"github.com/standardbeagle/noid/pkg/noid"
)

// Validator validates configuration and fills in defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults checks that the template parses. An empty template
// or scheme falls back to the default; an empty naa is legal. Every problem
// is reported, as a *errors.MultiError of *errors.ConfigError.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Noid.Template == "" {
		cfg.Noid.Template = noid.DefaultTemplate
	}
	if cfg.Noid.Scheme == "" {
		cfg.Noid.Scheme = noid.DefaultScheme
	}

	var errs []error
	if _, err := template.Parse(cfg.Noid.Template); err != nil {
		errs = append(errs, noiderrors.NewConfigError(Section+"."+KeyTemplate, cfg.Noid.Template, err))
	}
	if err := v.validateNAA(cfg.Noid.NAA); err != nil {
		errs = append(errs, noiderrors.NewConfigError(Section+"."+KeyNAA, cfg.Noid.NAA, err))
	}
	return noiderrors.NewMultiError(errs).ErrorOrNil()
}

// validateNAA rejects authorities that would make the identifier ambiguous.
func (v *Validator) validateNAA(naa string) error {
	for _, c := range naa {
		switch c {
		case ' ', '\t', '\n', '\r':
			return errors.New("naa must not contain whitespace")
		}
	}
	return nil
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
