package template

import "strings"

// Split separates template into its literal prefix and its mask. The split
// happens on the last '.', which stays with the prefix. A template without a
// '.' is all mask.
func Split(template string) (prefix, mask string) {
	i := strings.LastIndexByte(template, '.')
	if i < 0 {
		return "", template
	}
	return template[:i+1], template[i+1:]
}

// Template is a parsed "prefix.mask" template.
type Template struct {
	raw    string
	Prefix string
	Mask   *Mask
}

// Parse splits template and validates its mask.
func Parse(template string) (*Template, error) {
	prefix, mask := Split(template)
	m, err := ParseMask(mask)
	if err != nil {
		return nil, err
	}
	return &Template{raw: template, Prefix: prefix, Mask: m}, nil
}

// MustParse is like Parse but panics on an invalid template.
// Use only with templates known at compile time.
func MustParse(template string) *Template {
	t, err := Parse(template)
	if err != nil {
		panic("template: MustParse: " + err.Error())
	}
	return t
}

// String returns the template as written.
func (t *Template) String() string { return t.raw }

// Info summarises a template for display.
type Info struct {
	Template      string `json:"template"`
	Prefix        string `json:"prefix"`
	Mask          string `json:"mask"`
	Generator     string `json:"generator,omitempty"`
	Width         int    `json:"width"`
	Capacity      string `json:"capacity"`
	Expands       bool   `json:"expands"`
	HasCheckDigit bool   `json:"check_digit"`
}

// Describe returns the Info for t.
func (t *Template) Describe() Info {
	info := Info{
		Template:      t.raw,
		Prefix:        t.Prefix,
		Mask:          t.Mask.String(),
		Width:         t.Mask.Width(),
		Capacity:      t.Mask.Capacity().String(),
		Expands:       t.Mask.Expands(),
		HasCheckDigit: t.Mask.HasCheckDigit(),
	}
	if g := t.Mask.Generator(); g != 0 {
		info.Generator = string(g)
	}
	return info
}
