package model

// Person is an individual (INDI).
type Person struct {
	Base
	Gender         Gender      `json:"gender"`
	PrimaryName    Name        `json:"primary_name"`
	AlternateNames []Name      `json:"alternate_names,omitempty"`
	EventRefs      []EventRef  `json:"event_refs,omitempty"`
	BirthRefIndex  int         `json:"birth_ref_index"`
	DeathRefIndex  int         `json:"death_ref_index"`
	Families       []Handle    `json:"families,omitempty"`        // FAMS
	ParentFamilies []Handle    `json:"parent_families,omitempty"` // FAMC
	Addresses      []Address   `json:"addresses,omitempty"`
	Attributes     []Attribute `json:"attributes,omitempty"`
	URLs           []URL       `json:"urls,omitempty"`
	Associations   []PersonRef `json:"associations,omitempty"`
	LdsOrds        []LdsOrd    `json:"lds_ords,omitempty"`
}

// NewPerson returns a person with no birth or death reference.
func NewPerson() *Person {
	return &Person{BirthRefIndex: -1, DeathRefIndex: -1}
}

func (p *Person) Kind() Kind { return KindPerson }

func (p *Person) References() []Handle {
	refs := p.baseRefs()
	for _, n := range append([]Name{p.PrimaryName}, p.AlternateNames...) {
		refs = append(refs, n.Notes...)
		refs = append(refs, citationRefs(n.Citations)...)
	}
	for _, er := range p.EventRefs {
		refs = append(refs, er.Ref)
		refs = append(refs, er.Notes...)
		refs = append(refs, citationRefs(er.Citations)...)
	}
	refs = append(refs, p.Families...)
	refs = append(refs, p.ParentFamilies...)
	for _, a := range p.Addresses {
		refs = append(refs, a.Notes...)
		refs = append(refs, citationRefs(a.Citations)...)
	}
	refs = append(refs, attributeRefs(p.Attributes)...)
	for _, a := range p.Associations {
		refs = append(refs, a.Ref)
		refs = append(refs, a.Notes...)
		refs = append(refs, citationRefs(a.Citations)...)
	}
	for _, o := range p.LdsOrds {
		refs = append(refs, o.Place, o.Family)
		refs = append(refs, o.Notes...)
		refs = append(refs, citationRefs(o.Citations)...)
	}
	return compact(refs)
}

// AddFamily records a spouse family.
func (p *Person) AddFamily(h Handle) bool { return addHandle(&p.Families, h) }

// RemoveFamily drops a spouse family.
func (p *Person) RemoveFamily(h Handle) bool { return removeHandle(&p.Families, h) }

// HasFamily reports whether h is one of the spouse families.
func (p *Person) HasFamily(h Handle) bool { return containsHandle(p.Families, h) }

// AddParentFamily records a family the person is a child of.
func (p *Person) AddParentFamily(h Handle) bool { return addHandle(&p.ParentFamilies, h) }

// HasParentFamily reports whether h is one of the parent families.
func (p *Person) HasParentFamily(h Handle) bool { return containsHandle(p.ParentFamilies, h) }

// AddEventRef appends an event reference. The first birth and death events
// with a primary role become the birth and death references.
func (p *Person) AddEventRef(ref EventRef, typ EventType) {
	p.EventRefs = append(p.EventRefs, ref)
	idx := len(p.EventRefs) - 1
	if ref.Role != RolePrimary {
		return
	}
	switch {
	case typ == EventBirth && p.BirthRefIndex < 0:
		p.BirthRefIndex = idx
	case typ == EventDeath && p.DeathRefIndex < 0:
		p.DeathRefIndex = idx
	}
}
