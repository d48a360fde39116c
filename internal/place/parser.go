// Package place maps comma-separated GEDCOM place values onto structured
// locations using the hierarchy declared by a PLAC.FORM.
package place

import (
	"strings"

	"github.com/mvp-joe/kinship/internal/model"
)

// field returns the location field a FORM label addresses, or nil for a
// label with no matching field.
type field func(*model.Location) *string

var labels = map[string]field{
	"street":       func(l *model.Location) *string { return &l.Street },
	"addr":         func(l *model.Location) *string { return &l.Street },
	"address":      func(l *model.Location) *string { return &l.Street },
	"locality":     func(l *model.Location) *string { return &l.Locality },
	"suburb":       func(l *model.Location) *string { return &l.Locality },
	"neighborhood": func(l *model.Location) *string { return &l.Locality },
	"hamlet":       func(l *model.Location) *string { return &l.Locality },
	"parish":       func(l *model.Location) *string { return &l.Parish },
	"city":         func(l *model.Location) *string { return &l.City },
	"town":         func(l *model.Location) *string { return &l.City },
	"village":      func(l *model.Location) *string { return &l.City },
	"municipality": func(l *model.Location) *string { return &l.City },
	"county":       func(l *model.Location) *string { return &l.County },
	"district":     func(l *model.Location) *string { return &l.County },
	"state":        func(l *model.Location) *string { return &l.State },
	"province":     func(l *model.Location) *string { return &l.State },
	"region":       func(l *model.Location) *string { return &l.State },
	"country":      func(l *model.Location) *string { return &l.Country },
	"nation":       func(l *model.Location) *string { return &l.Country },
	"postal code":  func(l *model.Location) *string { return &l.PostalCode },
	"post code":    func(l *model.Location) *string { return &l.PostalCode },
	"postcode":     func(l *model.Location) *string { return &l.PostalCode },
	"zip":          func(l *model.Location) *string { return &l.PostalCode },
	"zip code":     func(l *model.Location) *string { return &l.PostalCode },
	"phone":        func(l *model.Location) *string { return &l.Phone },
}

// Parser applies one FORM declaration. The zero value has no fields and
// loads nothing.
type Parser struct {
	form   string
	fields []field
}

// NewParser builds the field list for a comma-separated FORM such as
// "City, County, State, Country". Labels are matched case-insensitively;
// unknown labels keep their position but store nothing.
func NewParser(form string) *Parser {
	p := &Parser{form: strings.TrimSpace(form)}
	if p.form == "" {
		return p
	}
	for _, label := range strings.Split(p.form, ",") {
		p.fields = append(p.fields, labels[strings.ToLower(strings.TrimSpace(label))])
	}
	return p
}

// Form returns the declaration the parser was built from.
func (p *Parser) Form() string { return p.form }

// Len returns the number of positions in the form.
func (p *Parser) Len() int { return len(p.fields) }

// Load splits text by comma and stores each part in the field of the same
// position. When the number of parts differs from the form, loc is left
// untouched and Load returns false.
func (p *Parser) Load(loc *model.Location, text string) bool {
	if len(p.fields) == 0 || strings.TrimSpace(text) == "" {
		return false
	}
	parts := strings.Split(text, ",")
	if len(parts) != len(p.fields) {
		return false
	}
	for i, f := range p.fields {
		if f == nil {
			continue
		}
		*f(loc) = strings.TrimSpace(parts[i])
	}
	return true
}

// Format renders loc in form order; the inverse of Load.
func (p *Parser) Format(loc model.Location) string {
	parts := make([]string, len(p.fields))
	for i, f := range p.fields {
		if f != nil {
			parts[i] = *f(&loc)
		}
	}
	return strings.Join(parts, ", ")
}
