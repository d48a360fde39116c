package model

import "github.com/mvp-joe/kinship/internal/date"

// Gender of a person.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String returns the GEDCOM SEX value.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "M"
	case GenderFemale:
		return "F"
	default:
		return "U"
	}
}

// Confidence is the reliability of a citation.
type Confidence int

const (
	ConfidenceVeryLow Confidence = iota
	ConfidenceLow
	ConfidenceNormal
	ConfidenceHigh
	ConfidenceVeryHigh
)

// ConfidenceFromQuality maps a GEDCOM QUAY value (0-3).
func ConfidenceFromQuality(quay int) Confidence {
	switch quay {
	case 0:
		return ConfidenceVeryLow
	case 1:
		return ConfidenceLow
	case 2:
		return ConfidenceHigh
	case 3:
		return ConfidenceVeryHigh
	default:
		return ConfidenceNormal
	}
}

// NameType classifies a name.
type NameType string

const (
	NameBirth   NameType = "Birth Name"
	NameAKA     NameType = "Also Known As"
	NameMarried NameType = "Married Name"
	NameUnknown NameType = "Unknown"
)

// Surname is one surname of a Name.
type Surname struct {
	Surname   string `json:"surname,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Connector string `json:"connector,omitempty"`
	Origin    string `json:"origin,omitempty"`
	Primary   bool   `json:"primary,omitempty"`
}

// Name is a personal name.
type Name struct {
	Type      NameType   `json:"type,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	Surnames  []Surname  `json:"surnames,omitempty"`
	Suffix    string     `json:"suffix,omitempty"`
	Title     string     `json:"title,omitempty"` // NPFX
	Nick      string     `json:"nick,omitempty"`
	Call      string     `json:"call,omitempty"`
	Date      date.Date  `json:"date,omitempty"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

// PrimarySurname returns the surname flagged primary, or the first one.
func (n *Name) PrimarySurname() *Surname {
	for i := range n.Surnames {
		if n.Surnames[i].Primary {
			return &n.Surnames[i]
		}
	}
	if len(n.Surnames) == 0 {
		return nil
	}
	return &n.Surnames[0]
}

// IsEmpty reports whether the name has no given name and no surname text.
func (n *Name) IsEmpty() bool {
	if n.FirstName != "" {
		return false
	}
	for _, s := range n.Surnames {
		if s.Surname != "" {
			return false
		}
	}
	return true
}

// AttributeType names an attribute. Values outside the constants are custom.
type AttributeType string

const (
	AttrCaste         AttributeType = "Caste"
	AttrDescription   AttributeType = "Description"
	AttrIDNumber      AttributeType = "Identification Number"
	AttrNationality   AttributeType = "National Origin"
	AttrNumChildren   AttributeType = "Number of Children"
	AttrSSN           AttributeType = "Social Security Number"
	AttrNickname      AttributeType = "Nickname"
	AttrCause         AttributeType = "Cause"
	AttrAgency        AttributeType = "Agency"
	AttrAge           AttributeType = "Age"
	AttrFatherAge     AttributeType = "Father's Age"
	AttrMotherAge     AttributeType = "Mother's Age"
	AttrNobilityTitle AttributeType = "Nobility Title"
	AttrOccupation    AttributeType = "Occupation"
	AttrReference     AttributeType = "Reference"
	AttrRestriction   AttributeType = "Restriction"
	AttrUID           AttributeType = "UID"
	AttrAncestralFile AttributeType = "Ancestral File Number"
	AttrRecordFile    AttributeType = "Record File Number"
	AttrRecordID      AttributeType = "Record ID"
	AttrPhone         AttributeType = "Phone"
	AttrEvent         AttributeType = "Event"
)

// Attribute is a typed key/value fact.
type Attribute struct {
	Type      AttributeType `json:"type"`
	Value     string        `json:"value,omitempty"`
	Notes     []Handle      `json:"notes,omitempty"`
	Citations []Citation    `json:"citations,omitempty"`
	Private   bool          `json:"private,omitempty"`
}

// Location holds the structured fields of an address or place.
type Location struct {
	Street     string `json:"street,omitempty"`
	Locality   string `json:"locality,omitempty"`
	Parish     string `json:"parish,omitempty"`
	City       string `json:"city,omitempty"`
	County     string `json:"county,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// IsEmpty reports whether every field is blank.
func (l Location) IsEmpty() bool {
	return l == Location{}
}

// Merge fills empty fields of l from other. It returns true when anything
// was copied.
func (l *Location) Merge(other Location) bool {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&l.Street, other.Street)
	fill(&l.Locality, other.Locality)
	fill(&l.Parish, other.Parish)
	fill(&l.City, other.City)
	fill(&l.County, other.County)
	fill(&l.State, other.State)
	fill(&l.Country, other.Country)
	fill(&l.PostalCode, other.PostalCode)
	fill(&l.Phone, other.Phone)
	return changed
}

// Address is a dated postal address.
type Address struct {
	Location
	Date      date.Date  `json:"date,omitempty"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

// URL is a web or mail link.
type URL struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"` // "E-mail", "Web Home", "Web Search"
}

// Citation points to a source and qualifies the evidence it gives.
type Citation struct {
	Source     Handle     `json:"source"`
	Page       string     `json:"page,omitempty"`
	Confidence Confidence `json:"confidence"`
	Date       date.Date  `json:"date,omitempty"`
	Notes      []Handle   `json:"notes,omitempty"`
	Media      []MediaRef `json:"media,omitempty"`
	Event      string     `json:"event,omitempty"` // EVEN: type of event recorded
	Role       string     `json:"role,omitempty"`
	Private    bool       `json:"private,omitempty"`
}

// EventRole is the part a person or family played in an event.
type EventRole string

const (
	RolePrimary EventRole = "Primary"
	RoleFamily  EventRole = "Family"
	RoleUnknown EventRole = "Unknown"
)

// EventRef links a person or family to an event.
type EventRef struct {
	Ref        Handle      `json:"ref"`
	Role       EventRole   `json:"role"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Notes      []Handle    `json:"notes,omitempty"`
	Citations  []Citation  `json:"citations,omitempty"`
	Private    bool        `json:"private,omitempty"`
}

// ChildRel is the relationship between a child and one parent.
type ChildRel string

const (
	ChildBirth     ChildRel = "Birth"
	ChildAdopted   ChildRel = "Adopted"
	ChildStepchild ChildRel = "Stepchild"
	ChildSponsored ChildRel = "Sponsored"
	ChildFoster    ChildRel = "Foster"
	ChildUnknown   ChildRel = "Unknown"
	ChildNone      ChildRel = "None"
)

// ChildRef links a family to one of its children.
type ChildRef struct {
	Ref       Handle     `json:"ref"`
	FatherRel ChildRel   `json:"father_rel"`
	MotherRel ChildRel   `json:"mother_rel"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

// NewChildRef returns a reference with birth relations to both parents.
func NewChildRef(h Handle) ChildRef {
	return ChildRef{Ref: h, FatherRel: ChildBirth, MotherRel: ChildBirth}
}

// RepoRef links a source to a repository.
type RepoRef struct {
	Ref        Handle   `json:"ref"`
	CallNumber string   `json:"call_number,omitempty"`
	MediaType  string   `json:"media_type,omitempty"`
	Notes      []Handle `json:"notes,omitempty"`
	Private    bool     `json:"private,omitempty"`
}

// MediaRef links any object to a media object.
type MediaRef struct {
	Ref       Handle     `json:"ref"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

// PersonRef is an association with another person (ASSO).
type PersonRef struct {
	Ref       Handle     `json:"ref"`
	Relation  string     `json:"relation,omitempty"`
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

// LdsType identifies an LDS ordinance.
type LdsType string

const (
	LdsBaptism       LdsType = "Baptism"
	LdsEndowment     LdsType = "Endowment"
	LdsSealToParents LdsType = "Sealed to Parents"
	LdsSealToSpouse  LdsType = "Sealed to Spouse"
	LdsConfirmation  LdsType = "Confirmation"
)

// LdsOrd is an LDS ordinance on a person or family.
type LdsOrd struct {
	Type      LdsType    `json:"type"`
	Date      date.Date  `json:"date,omitempty"`
	Temple    string     `json:"temple,omitempty"`
	Place     Handle     `json:"place,omitempty"`
	Status    string     `json:"status,omitempty"`
	Family    Handle     `json:"family,omitempty"` // SLGC: parent family
	Notes     []Handle   `json:"notes,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Private   bool       `json:"private,omitempty"`
}

func citationRefs(cs []Citation) []Handle {
	var out []Handle
	for _, c := range cs {
		out = append(out, c.Source)
		out = append(out, c.Notes...)
		out = append(out, mediaRefs(c.Media)...)
	}
	return out
}

func mediaRefs(ms []MediaRef) []Handle {
	var out []Handle
	for _, m := range ms {
		out = append(out, m.Ref)
		out = append(out, m.Notes...)
		out = append(out, citationRefs(m.Citations)...)
	}
	return out
}

func attributeRefs(as []Attribute) []Handle {
	var out []Handle
	for _, a := range as {
		out = append(out, a.Notes...)
		out = append(out, citationRefs(a.Citations)...)
	}
	return out
}
