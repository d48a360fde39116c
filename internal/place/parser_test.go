package place

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/kinship/internal/model"
)

// Test Plan for Parser:
// - Labels map case-insensitively, unknown labels keep their slot
// - Load fills fields positionally and trims blanks
// - Count mismatch leaves the location untouched
// - Format(Load(x)) round-trips for values produced by Format
// - The zero form loads nothing

func TestParser_Load(t *testing.T) {
	t.Parallel()

	p := NewParser("City, County, State, Country")
	assert.Equal(t, 4, p.Len())

	var loc model.Location
	ok := p.Load(&loc, "Springfield , Sangamon,Illinois, USA")
	assert.True(t, ok)
	assert.Equal(t, model.Location{City: "Springfield", County: "Sangamon", State: "Illinois", Country: "USA"}, loc)
}

func TestParser_UnknownLabel(t *testing.T) {
	t.Parallel()

	p := NewParser("Farm, Town, Country")
	var loc model.Location
	assert.True(t, p.Load(&loc, "Greenacres, Ely, England"))
	assert.Equal(t, model.Location{City: "Ely", Country: "England"}, loc)
	assert.Equal(t, ", Ely, England", p.Format(loc))
}

func TestParser_CountMismatch(t *testing.T) {
	t.Parallel()

	p := NewParser("City, Country")
	loc := model.Location{Street: "keep"}
	assert.False(t, p.Load(&loc, "a, b, c"))
	assert.False(t, p.Load(&loc, "solo"))
	assert.Equal(t, model.Location{Street: "keep"}, loc)
}

func TestParser_RoundTrip(t *testing.T) {
	t.Parallel()

	p := NewParser("Street, Parish, CITY, county, Province, Postal Code, Country")
	in := model.Location{
		Street: "1 High St", Parish: "St Mary", City: "York", County: "Yorkshire",
		State: "North", PostalCode: "YO1", Country: "England",
	}
	text := p.Format(in)

	var out model.Location
	assert.True(t, p.Load(&out, text))
	assert.Equal(t, in, out)
	assert.Equal(t, text, p.Format(out))
}

func TestParser_EmptyForm(t *testing.T) {
	t.Parallel()

	p := NewParser("  ")
	var loc model.Location
	assert.False(t, p.Load(&loc, "a, b"))
	assert.Equal(t, "", p.Form())
}
