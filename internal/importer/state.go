package importer

import (
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/model"
)

// diagnostics collects the recoverable problems of one level-0 record.
type diagnostics struct {
	record string
	msgs   []Message
}

// state is the context of one nesting level. It points at the objects
// the lines of that level populate; a child level gets its own copy with
// level+1 and never changes the level of its parent.
type state struct {
	level int
	diag  *diagnostics

	person   *model.Person
	family   *model.Family
	event    *model.Event
	eventRef *model.EventRef
	source   *model.Source
	citation *model.Citation
	repo     *model.Repository
	repoRef  *model.RepoRef
	media    *model.MediaObject
	note     *model.Note
	name     *model.Name
	address  *model.Address
	location *model.Location
	attr     *model.Attribute
	lds      *model.LdsOrd
	childRef *model.ChildRef
	assoc    *model.PersonRef
	ageType  model.AttributeType

	// Typed results filled by a child level and read by its opener.
	link     *FamilyLinkResult
	place    *placeResult
	adoption *adoptionResult
	inline   *inlineRepo
	placeBy  *string // which of PLAC and ADDR set the event place first

	// Where NOTE, SOUR, OBJE and similar lines of this level attach.
	notes     *[]model.Handle
	citations *[]model.Citation
	mediaRefs *[]model.MediaRef
	attrs     *[]model.Attribute
	urls      *[]model.URL
	changed   *int64
	private   *bool
}

// sub returns the state for the lines one level below st.
func (st *state) sub() *state {
	c := *st
	c.level = st.level + 1
	c.link, c.place, c.adoption, c.inline = nil, nil, nil, nil
	return &c
}

// child returns the state for the lines below an object that collects
// its own notes, citations and media.
func (st *state) child() *state {
	c := st.sub()
	c.notes, c.citations, c.mediaRefs = nil, nil, nil
	c.attrs, c.urls, c.changed, c.private = nil, nil, nil, nil
	return c
}

// targets points the generic attachments at a base object.
func (st *state) targets(b *model.Base) *state {
	st.notes = &b.Notes
	st.citations = &b.Citations
	st.mediaRefs = &b.Media
	st.changed = &b.Changed
	st.private = &b.Private
	return st
}

// FamilyLinkResult is what the lines below a FAMC report back to the
// person record.
type FamilyLinkResult struct {
	FatherRel model.ChildRel
	MotherRel model.ChildRel
	Primary   bool
	Citations []model.Citation
	Notes     []model.Handle
}

func (r FamilyLinkResult) isBirth() bool {
	return r.FatherRel == model.ChildBirth && r.MotherRel == model.ChildBirth
}

// placeResult is what the lines below a PLAC report back to the event.
type placeResult struct {
	form      string
	latitude  string
	longitude string
	notes     []model.Handle
	citations []model.Citation
	media     []model.MediaRef
}

// adoptionResult records FAMC/ADOP below an adoption event.
type adoptionResult struct {
	family model.Handle
	local  string
	by     string // HUSB, WIFE or BOTH
}

// inlineRepo is a repository defined inside a source's REPO line.
type inlineRepo struct {
	repo *model.Repository
}

type lineHandler func(p *parser, line *gedcom.Line, st *state) error
