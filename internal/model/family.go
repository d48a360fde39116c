package model

// FamilyRelType is the relationship between the partners of a family.
type FamilyRelType string

const (
	FamilyMarried    FamilyRelType = "Married"
	FamilyUnmarried  FamilyRelType = "Unmarried"
	FamilyCivilUnion FamilyRelType = "Civil Union"
	FamilyUnknown    FamilyRelType = "Unknown"
)

// Family is a couple and their children (FAM).
type Family struct {
	Base
	Father       Handle        `json:"father,omitempty"`
	Mother       Handle        `json:"mother,omitempty"`
	Children     []ChildRef    `json:"children,omitempty"`
	Relationship FamilyRelType `json:"relationship,omitempty"`
	EventRefs    []EventRef    `json:"event_refs,omitempty"`
	Attributes   []Attribute   `json:"attributes,omitempty"`
	LdsOrds      []LdsOrd      `json:"lds_ords,omitempty"`
}

func (f *Family) Kind() Kind { return KindFamily }

func (f *Family) References() []Handle {
	refs := f.baseRefs()
	refs = append(refs, f.Father, f.Mother)
	for _, c := range f.Children {
		refs = append(refs, c.Ref)
		refs = append(refs, c.Notes...)
		refs = append(refs, citationRefs(c.Citations)...)
	}
	for _, er := range f.EventRefs {
		refs = append(refs, er.Ref)
		refs = append(refs, er.Notes...)
		refs = append(refs, citationRefs(er.Citations)...)
	}
	refs = append(refs, attributeRefs(f.Attributes)...)
	for _, o := range f.LdsOrds {
		refs = append(refs, o.Place)
		refs = append(refs, o.Notes...)
		refs = append(refs, citationRefs(o.Citations)...)
	}
	return compact(refs)
}

// ChildIndex returns the position of the child reference for h, or -1.
func (f *Family) ChildIndex(h Handle) int {
	for i, c := range f.Children {
		if c.Ref == h {
			return i
		}
	}
	return -1
}

// HasChild reports whether h is listed as a child.
func (f *Family) HasChild(h Handle) bool { return f.ChildIndex(h) >= 0 }

// AddChild appends ref unless the child is already listed.
func (f *Family) AddChild(ref ChildRef) bool {
	if ref.Ref.IsZero() || f.HasChild(ref.Ref) {
		return false
	}
	f.Children = append(f.Children, ref)
	return true
}

// HasParent reports whether h is the father or mother.
func (f *Family) HasParent(h Handle) bool {
	return !h.IsZero() && (f.Father == h || f.Mother == h)
}
