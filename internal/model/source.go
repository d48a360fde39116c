package model

// Source is a document or other origin of evidence (SOUR).
type Source struct {
	Base
	Title      string      `json:"title"`
	Author     string      `json:"author,omitempty"`
	PubInfo    string      `json:"pub_info,omitempty"`
	Abbrev     string      `json:"abbrev,omitempty"`
	RepoRefs   []RepoRef   `json:"repo_refs,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

func (s *Source) Kind() Kind { return KindSource }

func (s *Source) References() []Handle {
	refs := s.baseRefs()
	for _, r := range s.RepoRefs {
		refs = append(refs, r.Ref)
		refs = append(refs, r.Notes...)
	}
	refs = append(refs, attributeRefs(s.Attributes)...)
	return compact(refs)
}
