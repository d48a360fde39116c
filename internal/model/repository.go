package model

// Repository holds sources (REPO).
type Repository struct {
	Base
	Name       string      `json:"name"`
	Type       string      `json:"type,omitempty"`
	Addresses  []Address   `json:"addresses,omitempty"`
	URLs       []URL       `json:"urls,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

func (r *Repository) Kind() Kind { return KindRepository }

func (r *Repository) References() []Handle {
	refs := r.baseRefs()
	for _, a := range r.Addresses {
		refs = append(refs, a.Notes...)
		refs = append(refs, citationRefs(a.Citations)...)
	}
	refs = append(refs, attributeRefs(r.Attributes)...)
	return compact(refs)
}
